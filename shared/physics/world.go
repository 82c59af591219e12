package physics

import (
	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/geometry"
)

// updateWorld records which triggers side stands on after its collision
// resolution. Only the down hit activates triggers.
func updateWorld(side gamestate.Side, hits geometry.Nearest, gs *gamestate.GameState, env *Env) {
	var down *geometry.Element
	if hits.Down != nil {
		down = hits.Down.Element
	}

	switch lvl := gs.Level.(type) {
	case *gamestate.PositionLevelState:
		updateDoors(side, down, lvl, env)
		lvl.EndLevel = updateEndLevel(side, down, lvl.EndLevel)
	case *gamestate.SandboxLevelState:
		lvl.EndLevel = updateEndLevel(side, down, lvl.EndLevel)
	}
}

func updateDoors(side gamestate.Side, down *geometry.Element, lvl *gamestate.PositionLevelState, env *Env) {
	active := ""
	if down != nil && down.IsDoorOpener() {
		if _, ok := lvl.Doors[down.DoorKey]; ok {
			active = down.DoorKey
		} else {
			env.logf("[sim] door %q touched by %s has no state entry", down.DoorKey, side)
		}
	}

	for _, key := range lvl.DoorKeys() {
		wasOpen := len(lvl.Doors[key]) > 0
		if key == active {
			lvl.Doors[key] = gamestate.AddSide(lvl.Doors[key], side)
		} else {
			lvl.Doors[key] = gamestate.RemoveSide(lvl.Doors[key], side)
		}

		open := len(lvl.Doors[key]) > 0
		if open != wasOpen && env.Context == ContextServer && env.Doors != nil {
			env.Doors.SetDoorOpen(key, open)
		}
	}
}

func updateEndLevel(side gamestate.Side, down *geometry.Element, set []gamestate.Side) []gamestate.Side {
	if down != nil && down.IsEndLevel() {
		return gamestate.AddSide(set, side)
	}
	return gamestate.RemoveSide(set, side)
}
