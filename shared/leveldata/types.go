// Package leveldata provides TMX level parsing shared between client and server.
// It has no dependencies on ebitengine or the network stack.
package leveldata

import (
	"fmt"
	"sort"

	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/geometry"
)

// Archetype selects which LevelState variant a level starts with.
type Archetype string

const (
	ArchetypePosition Archetype = "position"
	ArchetypeSandbox  Archetype = "sandbox"
)

// LevelData is everything parsed from one TMX level file. Elements are in
// y-up world coordinates, in file order.
type LevelData struct {
	ID        gamestate.LevelID
	Archetype Archetype
	Elements  []geometry.Element
	Spawns    map[gamestate.Side]gamestate.Vec2
	MapWidth  int
	MapHeight int
}

// DoorKeys returns the sorted keys of every door panel in the level.
func (l *LevelData) DoorKeys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, e := range l.Elements {
		if e.Kind == geometry.KindDoor && !seen[e.DoorKey] {
			seen[e.DoorKey] = true
			keys = append(keys, e.DoorKey)
		}
	}
	sort.Strings(keys)
	return keys
}

// NewGeometry indexes the level's elements for queries.
func (l *LevelData) NewGeometry() *geometry.Geometry {
	return geometry.New(l.Elements)
}

// NewState builds the initial game state: players on their spawns and the
// level variant of the archetype with every door closed.
func (l *LevelData) NewState() (*gamestate.GameState, error) {
	var level gamestate.LevelState
	switch l.Archetype {
	case ArchetypePosition:
		level = gamestate.NewPositionLevelState(l.ID, l.DoorKeys())
	case ArchetypeSandbox:
		level = gamestate.NewSandboxLevelState(l.ID)
	default:
		return nil, fmt.Errorf("level %s: unknown archetype %q", l.ID, l.Archetype)
	}
	return gamestate.New(level, l.Spawns), nil
}
