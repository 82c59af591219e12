package systems

import (
	"log"

	"github.com/automoto/composite/components"
	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/messages"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// facingThreshold is the horizontal speed below which a player keeps facing
// where it last moved.
const facingThreshold = 0.1

// NewUpdateMatch returns the system that feeds local inputs into the match
// once per tick. now supplies input timestamps in milliseconds.
func NewUpdateMatch(now func() int64) ecs.System {
	return func(e *ecs.ECS) {
		entry, ok := components.Match.First(e.World)
		if !ok {
			return
		}
		data := components.Match.Get(entry)
		if data.Match == nil || data.Err != nil {
			return
		}
		pause := components.Pause.Get(entry)
		if pause.IsPaused && !data.Match.Status().Online {
			return
		}

		inputs := make(map[gamestate.Side]messages.Inputs, len(gamestate.Sides))
		components.PlayerInput.Each(e.World, func(p *donburi.Entry) {
			side := components.Player.Get(p).Side
			if pause.IsPaused {
				inputs[side] = messages.Inputs{}
				return
			}
			inputs[side] = InputsFromActions(components.PlayerInput.Get(p).CurrentInput)
		})

		if err := data.Match.Update(inputs, now()); err != nil {
			log.Printf("[client] match stopped: %v", err)
			data.Err = err
			return
		}
		updateFacing(e, data.Match.State())
	}
}

func updateFacing(e *ecs.ECS, state *gamestate.GameState) {
	components.Player.Each(e.World, func(p *donburi.Entry) {
		player := components.Player.Get(p)
		ps := state.Player(player.Side)
		if ps == nil {
			return
		}
		switch {
		case ps.Velocity.X > facingThreshold:
			player.Direction = 1
		case ps.Velocity.X < -facingThreshold:
			player.Direction = -1
		}
	})
}

// CurrentMatch returns the match component, or nil before the scene set one up.
func CurrentMatch(e *ecs.ECS) *components.MatchData {
	entry, ok := components.Match.First(e.World)
	if !ok {
		return nil
	}
	return components.Match.Get(entry)
}
