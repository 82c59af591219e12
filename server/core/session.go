package core

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/geometry"
	"github.com/automoto/composite/shared/leveldata"
	"github.com/automoto/composite/shared/messages"
	"github.com/automoto/composite/shared/physics"
)

var (
	ErrSideTaken   = errors.New("side already taken")
	ErrSessionFull = errors.New("session full")
	ErrUnknownSide = errors.New("unknown side")
	ErrNotJoined   = errors.New("client has not joined a session")
	ErrWrongSide   = errors.New("input for a side the client does not control")
)

// Peer is a connected client as seen by a session. *router.NetworkClient
// satisfies it.
type Peer interface {
	Id() string
	SendMessage(msg any) error
}

// SessionConfig is the per-session subset of Config.
type SessionConfig struct {
	Delta         float64
	SnapshotEvery int
	InputBuffer   int
	Dev           bool
	FreeMovement  bool
}

// Session owns one game: its state, level geometry, door animation and the
// two seats. Tick runs on the session's loop goroutine; Join, Leave and
// Submit may be called from network goroutines.
type Session struct {
	code   string
	level  *leveldata.LevelData
	cfg    SessionConfig
	logger *log.Logger

	buffers map[gamestate.Side]*InputBuffer

	mu      sync.Mutex
	members map[gamestate.Side]Peer
	state   *gamestate.GameState
	geo     *geometry.Geometry
	env     *physics.Env
	cursors map[gamestate.Side]*messages.GamePlayerInputPayload
	doors   *DoorAnimator
	cleared bool
}

func NewSession(code string, level *leveldata.LevelData, cfg SessionConfig, doors *DoorAnimator) (*Session, error) {
	state, err := level.NewState()
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", code, err)
	}
	if cfg.SnapshotEvery < 1 {
		cfg.SnapshotEvery = 1
	}

	logger := log.New(os.Stderr, fmt.Sprintf("[session %s] ", code), log.LstdFlags)
	geo := level.NewGeometry()
	s := &Session{
		code:    code,
		level:   level,
		cfg:     cfg,
		logger:  logger,
		buffers: make(map[gamestate.Side]*InputBuffer, len(gamestate.Sides)),
		members: make(map[gamestate.Side]Peer, len(gamestate.Sides)),
		state:   state,
		geo:     geo,
		cursors: make(map[gamestate.Side]*messages.GamePlayerInputPayload),
		doors:   doors,
	}
	s.env = &physics.Env{
		Obstacles:    geo,
		Context:      physics.ContextServer,
		Doors:        physics.DoorSignalers{geo, doors},
		FreeMovement: cfg.FreeMovement,
		Dev:          cfg.Dev,
		Logger:       logger,
	}
	for _, side := range gamestate.Sides {
		s.buffers[side] = NewInputBuffer(cfg.InputBuffer)
	}
	return s, nil
}

func (s *Session) Code() string { return s.code }

func (s *Session) Level() gamestate.LevelID { return s.level.ID }

// Join seats peer on side, or on the free side when side is empty.
func (s *Session) Join(peer Peer, side gamestate.Side) (messages.JoinAccepted, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if side == "" {
		for _, candidate := range gamestate.Sides {
			if _, taken := s.members[candidate]; !taken {
				side = candidate
				break
			}
		}
		if side == "" {
			return messages.JoinAccepted{}, ErrSessionFull
		}
	}
	if !side.Valid() {
		return messages.JoinAccepted{}, fmt.Errorf("%w: %q", ErrUnknownSide, side)
	}
	if _, taken := s.members[side]; taken {
		return messages.JoinAccepted{}, fmt.Errorf("%w: %s", ErrSideTaken, side)
	}

	s.members[side] = peer
	s.buffers[side].Reset()
	delete(s.cursors, side)
	s.logger.Printf("%s joined as %s", peer.Id(), side)

	return messages.JoinAccepted{
		Session:  s.code,
		Side:     side,
		Level:    s.level.ID,
		Snapshot: s.snapshotLocked(),
	}, nil
}

// Leave frees the peer's seat and reports how many members remain.
func (s *Session) Leave(peer Peer) (gamestate.Side, int) {
	s.mu.Lock()
	var left gamestate.Side
	for side, p := range s.members {
		if p == peer {
			left = side
			delete(s.members, side)
			delete(s.cursors, side)
			s.buffers[side].Reset()
		}
	}
	remaining := len(s.members)
	peers := s.peersLocked()
	s.mu.Unlock()

	if left != "" {
		s.logger.Printf("%s left %s", peer.Id(), left)
		s.broadcast(peers, messages.PlayerLeftEvent{Side: left})
	}
	return left, remaining
}

// Submit stages an input from peer for the next tick.
func (s *Session) Submit(peer Peer, in messages.GamePlayerInputPayload) error {
	s.mu.Lock()
	owner, ok := s.members[in.Player]
	s.mu.Unlock()

	if !in.Player.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSide, in.Player)
	}
	if !ok || owner != peer {
		return fmt.Errorf("%w: %s", ErrWrongSide, in.Player)
	}
	if !s.buffers[in.Player].Push(in) && s.cfg.Dev {
		s.logger.Printf("dropped %s input seq=%d", in.Player, in.Sequence)
	}
	return nil
}

// Tick advances the session by one simulation step and broadcasts the results.
func (s *Session) Tick() {
	batches := make(map[gamestate.Side][]messages.GamePlayerInputPayload, len(s.buffers))
	for side, buf := range s.buffers {
		if batch := buf.Drain(); len(batch) > 0 {
			batches[side] = batch
		}
	}

	s.mu.Lock()
	physics.AdvanceTick(s.cfg.Delta, s.cursors, batches, s.state, s.env)
	s.doors.Update(s.cfg.Delta)

	var out []any
	for _, c := range s.doors.DrainChanges() {
		s.logger.Printf("door %s open=%v at tick %d", c.Key, c.Open, s.state.GameTime)
		out = append(out, messages.DoorChangedEvent{Key: c.Key, Open: c.Open, Tick: s.state.GameTime})
	}
	cleared := gamestate.LevelCleared(s.state.Level)
	if cleared && !s.cleared {
		s.logger.Printf("level %s cleared at tick %d", s.level.ID, s.state.GameTime)
		out = append(out, messages.LevelClearedEvent{Level: s.level.ID, Tick: s.state.GameTime})
	}
	s.cleared = cleared
	if s.state.GameTime%int64(s.cfg.SnapshotEvery) == 0 {
		out = append(out, s.snapshotLocked())
	}
	peers := s.peersLocked()
	s.mu.Unlock()

	s.broadcast(peers, out...)
}

// Snapshot returns the current authoritative snapshot.
func (s *Session) Snapshot() messages.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Members reports how many seats are taken.
func (s *Session) Members() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

func (s *Session) snapshotLocked() messages.Snapshot {
	snap := messages.Snapshot{
		Tick:    s.state.GameTime,
		State:   s.state.ToWire(),
		Cursors: make(map[gamestate.Side]messages.GamePlayerInputPayload, len(s.cursors)),
		Doors:   s.doors.Views(),
	}
	for side, c := range s.cursors {
		snap.Cursors[side] = *c
	}
	sum, err := s.state.Checksum()
	if err != nil {
		s.logger.Printf("checksum: %v", err)
	}
	snap.Checksum = sum
	return snap
}

func (s *Session) peersLocked() []Peer {
	peers := make([]Peer, 0, len(s.members))
	for _, side := range gamestate.Sides {
		if p, ok := s.members[side]; ok {
			peers = append(peers, p)
		}
	}
	return peers
}

func (s *Session) broadcast(peers []Peer, msgs ...any) {
	for _, msg := range msgs {
		for _, p := range peers {
			if err := p.SendMessage(msg); err != nil {
				s.logger.Printf("send %T to %s: %v", msg, p.Id(), err)
			}
		}
	}
}
