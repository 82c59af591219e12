package components

import (
	"github.com/automoto/composite/shared/gamestate"
	"github.com/yohamta/donburi"
)

// PlayerData links a player entity to its side in the match state.
type PlayerData struct {
	Side      gamestate.Side
	Local     bool
	Direction float64 // Last horizontal facing, -1 or 1
}

var Player = donburi.NewComponentType[PlayerData]()
