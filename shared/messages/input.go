package messages

import "github.com/automoto/composite/shared/gamestate"

// Inputs is the set of directional and jump flags sampled for one tick.
type Inputs struct {
	Left   bool `json:"left"`
	Right  bool `json:"right"`
	Top    bool `json:"top"`
	Bottom bool `json:"bottom"`
	Jump   bool `json:"jump"`
}

// Idle reports whether no flag is set.
func (i Inputs) Idle() bool {
	return i == Inputs{}
}

// GamePlayerInputPayload is one timestamped, sequenced input of one player.
// It is sent client to server every tick and replayed during reconciliation.
type GamePlayerInputPayload struct {
	Time     int64          `json:"time" jsonschema:"description=Client timestamp in Unix milliseconds"`
	Sequence uint32         `json:"sequence" jsonschema:"description=Strictly increasing per player"`
	Player   gamestate.Side `json:"player" jsonschema:"enum=LIGHT,enum=SHADOW"`
	Inputs   Inputs         `json:"inputs"`
}
