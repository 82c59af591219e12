package factory

import (
	"slices"

	"github.com/automoto/composite/archetypes"
	"github.com/automoto/composite/components"
	cfg "github.com/automoto/composite/config"
	"github.com/automoto/composite/network"
	"github.com/automoto/composite/shared/gamestate"
	"github.com/yohamta/donburi/ecs"
)

// CreateMatch spawns the match holder and one entity per side. A single
// local player gets the whole keyboard; two local players split it, LIGHT
// on WASD and SHADOW on the arrows.
func CreateMatch(ecs *ecs.ECS, match network.Match) {
	entry := archetypes.Match.Spawn(ecs)
	components.Match.Set(entry, &components.MatchData{Match: match})

	local := match.LocalSides()
	for _, side := range gamestate.Sides {
		if !slices.Contains(local, side) {
			p := archetypes.Player.Spawn(ecs)
			components.Player.Set(p, &components.PlayerData{Side: side, Direction: 1})
			continue
		}

		p := archetypes.LocalPlayer.Spawn(ecs)
		components.Player.Set(p, &components.PlayerData{Side: side, Local: true, Direction: 1})
		input := &components.PlayerInputData{WholeKeyboard: len(local) == 1}
		if side == gamestate.Light {
			input.ControlScheme = cfg.ControlSchemeWASD
		} else {
			input.ControlScheme = cfg.ControlSchemeArrows
		}
		components.PlayerInput.Set(p, input)
	}
}
