package network

import (
	"fmt"
	"sync"
	"time"

	"github.com/automoto/composite/server/core"
	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/leveldata"
	"github.com/automoto/composite/shared/messages"
)

// loopbackPeer is an in-process session member; it keeps what the session
// sends it until drained.
type loopbackPeer struct {
	id string

	mu    sync.Mutex
	inbox []any
}

func (p *loopbackPeer) Id() string { return p.id }

func (p *loopbackPeer) SendMessage(msg any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inbox = append(p.inbox, msg)
	return nil
}

func (p *loopbackPeer) drain() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.inbox
	p.inbox = nil
	return out
}

// OfflineMatch hosts a session in process with both sides played locally.
type OfflineMatch struct {
	session *core.Session
	peers   map[gamestate.Side]*loopbackPeer
	seq     uint32
	state   *gamestate.GameState
	doors   []messages.DoorView
	status  MatchStatus
}

// NewOfflineMatch starts a local session on level ticking at tickRate.
func NewOfflineMatch(level *leveldata.LevelData, tickRate int, doorTween time.Duration, dev bool) (*OfflineMatch, error) {
	if tickRate <= 0 {
		return nil, fmt.Errorf("offline match: tick rate must be positive, got %d", tickRate)
	}
	session, err := core.NewSession("LOCAL", level, core.SessionConfig{
		Delta:         1 / float64(tickRate),
		SnapshotEvery: 1,
		InputBuffer:   8,
		Dev:           dev,
	}, core.NewDoorAnimator(level.Elements, doorTween))
	if err != nil {
		return nil, fmt.Errorf("offline match: %w", err)
	}

	m := &OfflineMatch{
		session: session,
		peers:   make(map[gamestate.Side]*loopbackPeer, len(gamestate.Sides)),
		status:  MatchStatus{Session: session.Code(), Level: level.ID},
	}
	for _, side := range gamestate.Sides {
		peer := &loopbackPeer{id: "local-" + string(side)}
		accepted, err := session.Join(peer, side)
		if err != nil {
			return nil, fmt.Errorf("offline match: %w", err)
		}
		if err := m.apply(accepted.Snapshot); err != nil {
			return nil, fmt.Errorf("offline match: %w", err)
		}
		m.peers[side] = peer
	}
	return m, nil
}

// Update submits one input per side and runs one session tick.
func (m *OfflineMatch) Update(inputs map[gamestate.Side]messages.Inputs, nowMillis int64) error {
	m.seq++
	for _, side := range gamestate.Sides {
		in := messages.GamePlayerInputPayload{
			Time:     nowMillis,
			Sequence: m.seq,
			Player:   side,
			Inputs:   inputs[side],
		}
		if err := m.session.Submit(m.peers[side], in); err != nil {
			return fmt.Errorf("submit %s: %w", side, err)
		}
	}
	m.session.Tick()

	// Both peers get the same broadcast; reading one is enough.
	for _, msg := range m.peers[gamestate.Light].drain() {
		switch v := msg.(type) {
		case messages.Snapshot:
			if err := m.apply(v); err != nil {
				return err
			}
		case messages.DoorChangedEvent:
			m.status.LastDoor = &v
		case messages.LevelClearedEvent:
			m.status.Cleared = true
		}
	}
	m.peers[gamestate.Shadow].drain()
	return nil
}

func (m *OfflineMatch) apply(snap messages.Snapshot) error {
	gs, err := gamestate.FromWire(snap.State)
	if err != nil {
		return fmt.Errorf("snapshot %d: %w", snap.Tick, err)
	}
	m.state = gs
	m.doors = snap.Doors
	m.status.Tick = snap.Tick
	m.status.Checksum = snap.Checksum
	return nil
}

func (m *OfflineMatch) State() *gamestate.GameState { return m.state }

func (m *OfflineMatch) Doors() []messages.DoorView { return m.doors }

func (m *OfflineMatch) LocalSides() []gamestate.Side {
	return append([]gamestate.Side(nil), gamestate.Sides...)
}

func (m *OfflineMatch) Status() MatchStatus { return m.status }

func (m *OfflineMatch) Close() {
	for _, peer := range m.peers {
		m.session.Leave(peer)
	}
}
