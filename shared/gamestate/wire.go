package gamestate

import "fmt"

// Wire is the flat form of GameState used on the network and for hashing.
// Exactly one of Position and Sandbox is set.
type Wire struct {
	GameTime int64                `json:"gameTime"`
	Players  map[Side]PlayerState `json:"players"`
	Position *PositionLevelState  `json:"position,omitempty"`
	Sandbox  *SandboxLevelState   `json:"sandbox,omitempty"`
}

// ToWire copies g into its flat form.
func (g *GameState) ToWire() Wire {
	w := Wire{
		GameTime: g.GameTime,
		Players:  make(map[Side]PlayerState, len(g.Players)),
	}
	for side, p := range g.Players {
		w.Players[side] = *p
	}
	switch l := g.Level.(type) {
	case *PositionLevelState:
		w.Position = l.CloneLevel().(*PositionLevelState)
	case *SandboxLevelState:
		w.Sandbox = l.CloneLevel().(*SandboxLevelState)
	}
	return w
}

// FromWire rebuilds a GameState from its flat form.
func FromWire(w Wire) (*GameState, error) {
	g := &GameState{
		GameTime: w.GameTime,
		Players:  make(map[Side]*PlayerState, len(w.Players)),
	}
	for side, p := range w.Players {
		if !side.Valid() {
			return nil, fmt.Errorf("wire state: unknown side %q", side)
		}
		cp := p
		g.Players[side] = &cp
	}
	switch {
	case w.Position != nil && w.Sandbox != nil:
		return nil, fmt.Errorf("wire state: both level variants set")
	case w.Position != nil:
		l := w.Position.CloneLevel().(*PositionLevelState)
		if l.Doors == nil {
			l.Doors = map[string][]Side{}
		}
		g.Level = l
	case w.Sandbox != nil:
		g.Level = w.Sandbox.CloneLevel()
	default:
		return nil, fmt.Errorf("wire state: no level variant")
	}
	return g, nil
}
