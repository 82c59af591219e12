package components

import (
	"github.com/automoto/composite/network"
	"github.com/yohamta/donburi"
)

// MatchData holds the running match driven by the game scene.
type MatchData struct {
	Match network.Match
	Err   error // Set when the match stopped; the scene leaves on it
}

var Match = donburi.NewComponentType[MatchData]()
