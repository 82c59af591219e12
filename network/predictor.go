package network

import (
	"fmt"
	"log"

	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/geometry"
	"github.com/automoto/composite/shared/leveldata"
	"github.com/automoto/composite/shared/messages"
	"github.com/automoto/composite/shared/physics"
)

// Predictor runs the local player's simulation ahead of the server and
// corrects it whenever an authoritative snapshot arrives.
//
// Remote players are extrapolated by re-applying the cursor the server last
// reported for them. Doors follow the server: predicted runs never move door
// geometry, snapshots do.
type Predictor struct {
	side    gamestate.Side
	delta   float64
	geo     *geometry.Geometry
	env     *physics.Env
	state   *gamestate.GameState
	cursors map[gamestate.Side]*messages.GamePlayerInputPayload
	buffer  PredictionBuffer
	seq     uint32
	tick    int64

	lastAcked uint32
	lastError float64
	doors     []messages.DoorView
}

func NewPredictor(level *leveldata.LevelData, side gamestate.Side, delta float64, logger *log.Logger) (*Predictor, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("predictor: unknown side %q", side)
	}
	state, err := level.NewState()
	if err != nil {
		return nil, fmt.Errorf("predictor: %w", err)
	}
	geo := level.NewGeometry()
	return &Predictor{
		side:    side,
		delta:   delta,
		geo:     geo,
		env:     &physics.Env{Obstacles: geo, Context: physics.ContextClient, Logger: logger},
		state:   state,
		cursors: make(map[gamestate.Side]*messages.GamePlayerInputPayload),
	}, nil
}

// Next wraps in into the next sequenced payload, applies it locally for one
// tick and returns it for sending.
func (p *Predictor) Next(in messages.Inputs, nowMillis int64) messages.GamePlayerInputPayload {
	p.seq++
	input := messages.GamePlayerInputPayload{
		Time:     nowMillis,
		Sequence: p.seq,
		Player:   p.side,
		Inputs:   in,
	}
	p.step(p.state, p.cursors, input)
	p.buffer.Store(input, p.state.Player(p.side).Position)
	return input
}

func (p *Predictor) step(gs *gamestate.GameState, cursors map[gamestate.Side]*messages.GamePlayerInputPayload, input messages.GamePlayerInputPayload) {
	batches := map[gamestate.Side][]messages.GamePlayerInputPayload{p.side: {input}}
	physics.AdvanceTick(p.delta, cursors, batches, gs, p.env)
}

// Reconcile replaces the predicted state with the snapshot and replays every
// local input the server has not applied yet. It returns how many inputs
// were replayed.
func (p *Predictor) Reconcile(snap messages.Snapshot) (int, error) {
	gs, err := gamestate.FromWire(snap.State)
	if err != nil {
		return 0, fmt.Errorf("reconcile tick %d: %w", snap.Tick, err)
	}
	if snap.Tick < p.tick {
		return 0, nil
	}
	p.tick = snap.Tick

	for _, d := range snap.Doors {
		p.geo.SetDoorOpen(d.Key, d.Open)
	}
	p.doors = snap.Doors

	cursors := make(map[gamestate.Side]*messages.GamePlayerInputPayload, len(snap.Cursors))
	for side, c := range snap.Cursors {
		cursors[side] = &c
	}

	acked := snap.Acked(p.side)
	if player := gs.Player(p.side); player != nil {
		p.lastError = p.buffer.PredictionError(acked, player.Position)
	}
	p.lastAcked = acked

	pending := p.buffer.GetUnacknowledged(acked)
	for _, rec := range pending {
		p.step(gs, cursors, rec.Input)
		p.buffer.Store(rec.Input, gs.Player(p.side).Position)
	}

	p.state = gs
	p.cursors = cursors
	return len(pending), nil
}

// State is the current predicted state. Callers must not mutate it.
func (p *Predictor) State() *gamestate.GameState { return p.state }

func (p *Predictor) Side() gamestate.Side { return p.side }

// Geometry is the local copy of the level, with doors as last reported by the server.
func (p *Predictor) Geometry() *geometry.Geometry { return p.geo }

// Doors returns the door views of the last applied snapshot.
func (p *Predictor) Doors() []messages.DoorView { return p.doors }

// LastAcked is the last local sequence the server confirmed.
func (p *Predictor) LastAcked() uint32 { return p.lastAcked }

// LastError is the distance between the predicted and authoritative position
// at the last acknowledged input.
func (p *Predictor) LastError() float64 { return p.lastError }
