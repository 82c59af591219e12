package messages

import "github.com/automoto/composite/shared/gamestate"

// DoorView is the presentation state of one door at snapshot time.
// Offset is the panel slide in world units, 0 when fully closed.
type DoorView struct {
	Key    string
	Open   bool
	Offset float64
}

// Snapshot is the authoritative state broadcast after a server tick.
// Cursors hold the last input applied per side; the client replays every
// local input with a higher sequence on top of State.
type Snapshot struct {
	Tick     int64
	State    gamestate.Wire
	Cursors  map[gamestate.Side]GamePlayerInputPayload
	Doors    []DoorView
	Checksum string
}

// Acked returns the last applied sequence for side, 0 when none was applied.
func (s Snapshot) Acked(side gamestate.Side) uint32 {
	if c, ok := s.Cursors[side]; ok {
		return c.Sequence
	}
	return 0
}

// DoorChangedEvent is broadcast when a door opens or closes.
type DoorChangedEvent struct {
	Key  string
	Open bool
	Tick int64
}

// LevelClearedEvent is broadcast once both sides stand on the end-level pad.
type LevelClearedEvent struct {
	Level gamestate.LevelID
	Tick  int64
}

// PlayerLeftEvent is broadcast when a member leaves a session.
type PlayerLeftEvent struct {
	Side gamestate.Side
}
