package gamestate

import "sort"

// LevelID names an authored level.
type LevelID string

const (
	LevelCrackTheDoor LevelID = "crack_the_door"
	LevelSandbox      LevelID = "sandbox"
)

// LevelState is the per-level mutable data. The set of implementations is
// closed: *PositionLevelState and *SandboxLevelState.
type LevelState interface {
	LevelID() LevelID
	// EndLevelSides returns the sides currently on the end-level trigger.
	EndLevelSides() []Side
	CloneLevel() LevelState
	sealed()
}

// PositionLevelState is the level archetype with door puzzles.
// Doors maps a door key to the sides currently standing on its opener.
type PositionLevelState struct {
	ID       LevelID           `json:"id"`
	Doors    map[string][]Side `json:"doors"`
	EndLevel []Side            `json:"endLevel"`
}

func NewPositionLevelState(id LevelID, doorKeys []string) *PositionLevelState {
	doors := make(map[string][]Side, len(doorKeys))
	for _, k := range doorKeys {
		doors[k] = []Side{}
	}
	return &PositionLevelState{ID: id, Doors: doors, EndLevel: []Side{}}
}

func (p *PositionLevelState) LevelID() LevelID      { return p.ID }
func (p *PositionLevelState) EndLevelSides() []Side { return p.EndLevel }
func (p *PositionLevelState) sealed()               {}

func (p *PositionLevelState) CloneLevel() LevelState {
	c := &PositionLevelState{
		ID:       p.ID,
		Doors:    make(map[string][]Side, len(p.Doors)),
		EndLevel: append([]Side{}, p.EndLevel...),
	}
	for k, set := range p.Doors {
		c.Doors[k] = append([]Side{}, set...)
	}
	return c
}

// DoorKeys returns the door keys in ascending order.
func (p *PositionLevelState) DoorKeys() []string {
	keys := make([]string, 0, len(p.Doors))
	for k := range p.Doors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DoorOpen reports whether at least one side holds the door's opener.
func (p *PositionLevelState) DoorOpen(key string) bool {
	return len(p.Doors[key]) > 0
}

// SandboxLevelState is the free-play archetype. It has no doors.
type SandboxLevelState struct {
	ID       LevelID `json:"id"`
	EndLevel []Side  `json:"endLevel"`
}

func NewSandboxLevelState(id LevelID) *SandboxLevelState {
	return &SandboxLevelState{ID: id, EndLevel: []Side{}}
}

func (s *SandboxLevelState) LevelID() LevelID      { return s.ID }
func (s *SandboxLevelState) EndLevelSides() []Side { return s.EndLevel }
func (s *SandboxLevelState) sealed()               {}

func (s *SandboxLevelState) CloneLevel() LevelState {
	return &SandboxLevelState{ID: s.ID, EndLevel: append([]Side{}, s.EndLevel...)}
}

// LevelCleared reports whether every side stands on the end-level trigger.
func LevelCleared(l LevelState) bool {
	if l == nil {
		return false
	}
	set := l.EndLevelSides()
	for _, side := range Sides {
		if !ContainsSide(set, side) {
			return false
		}
	}
	return true
}
