package gamestate

import (
	"fmt"
	"reflect"
)

// MovableState is the per-tick contact classification of a player.
type MovableState uint8

const (
	OnFloor MovableState = iota
	InAir
	Inside
	Ascend
	Projected
)

func (m MovableState) String() string {
	switch m {
	case OnFloor:
		return "onFloor"
	case InAir:
		return "inAir"
	case Inside:
		return "inside"
	case Ascend:
		return "ascend"
	case Projected:
		return "projected"
	}
	return fmt.Sprintf("MovableState(%d)", uint8(m))
}

// Vec2 is a y-up world vector.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PlayerState struct {
	Position Vec2         `json:"position"`
	Velocity Vec2         `json:"velocity"`
	State    MovableState `json:"state"`
}

// GameState is the single authoritative value the simulation mutates.
// GameTime counts simulation ticks.
type GameState struct {
	GameTime int64
	Players  map[Side]*PlayerState
	Level    LevelState
}

// New builds the initial state of a level with both players at rest on their spawns.
func New(level LevelState, spawns map[Side]Vec2) *GameState {
	gs := &GameState{
		Players: make(map[Side]*PlayerState, len(Sides)),
		Level:   level,
	}
	for _, side := range Sides {
		gs.Players[side] = &PlayerState{Position: spawns[side], State: OnFloor}
	}
	return gs
}

// Player returns the state of side, or nil when the side is not part of the game.
func (g *GameState) Player(side Side) *PlayerState {
	return g.Players[side]
}

// Clone returns a deep copy sharing no mutable memory with g.
func (g *GameState) Clone() *GameState {
	c := &GameState{
		GameTime: g.GameTime,
		Players:  make(map[Side]*PlayerState, len(g.Players)),
	}
	for side, p := range g.Players {
		cp := *p
		c.Players[side] = &cp
	}
	if g.Level != nil {
		c.Level = g.Level.CloneLevel()
	}
	return c
}

// Equal reports whether both states hold the same values, float bits included.
func (g *GameState) Equal(o *GameState) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.GameTime != o.GameTime || len(g.Players) != len(o.Players) {
		return false
	}
	for side, p := range g.Players {
		q, ok := o.Players[side]
		if !ok || *p != *q {
			return false
		}
	}
	return reflect.DeepEqual(normalizeLevel(g.Level), normalizeLevel(o.Level))
}

// normalizeLevel maps empty side sets to nil so that a set that was emptied
// compares equal to one that never held anything.
func normalizeLevel(l LevelState) LevelState {
	if l == nil {
		return nil
	}
	c := l.CloneLevel()
	switch v := c.(type) {
	case *PositionLevelState:
		for k, set := range v.Doors {
			if len(set) == 0 {
				v.Doors[k] = nil
			}
		}
		if len(v.EndLevel) == 0 {
			v.EndLevel = nil
		}
	case *SandboxLevelState:
		if len(v.EndLevel) == 0 {
			v.EndLevel = nil
		}
	}
	return c
}
