package messages

import "github.com/automoto/composite/shared/gamestate"

// JoinRequest is sent by a client after connecting to take a side in a session.
type JoinRequest struct {
	Version string
	Session string
	Side    gamestate.Side
	Level   gamestate.LevelID
}

// JoinAccepted is sent by the server when a client's join request is accepted.
type JoinAccepted struct {
	Session  string
	Side     gamestate.Side
	Level    gamestate.LevelID
	TickRate int
	Snapshot Snapshot
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
