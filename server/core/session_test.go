package core

import (
	"errors"
	"sync"
	"testing"

	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/geometry"
	"github.com/automoto/composite/shared/leveldata"
	"github.com/automoto/composite/shared/messages"
)

type fakePeer struct {
	id string

	mu   sync.Mutex
	sent []any
}

func (p *fakePeer) Id() string { return p.id }

func (p *fakePeer) SendMessage(msg any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, msg)
	return nil
}

func (p *fakePeer) messages() []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]any(nil), p.sent...)
}

var (
	testFloor = geometry.NewElement("floor", geometry.Rect{X: -500, Y: 0, W: 1000, H: 20}, false)
	roofPad   = geometry.NewElement(geometry.AreaDoorOpenerName("ROOF"), geometry.Rect{X: 100, Y: 20, W: 40, H: 4}, false)
	roofPanel = geometry.NewElement(geometry.WallDoorName("ROOF"), geometry.Rect{X: 400, Y: 20, W: 20, H: 120}, false)
	endPad    = geometry.NewElement(geometry.EndLevelName, geometry.Rect{X: -300, Y: 20, W: 100, H: 4}, false)
)

func testLevel(light, shadow gamestate.Vec2) *leveldata.LevelData {
	return &leveldata.LevelData{
		ID:        gamestate.LevelCrackTheDoor,
		Archetype: leveldata.ArchetypePosition,
		Elements:  []geometry.Element{testFloor, roofPad, roofPanel, endPad},
		Spawns:    map[gamestate.Side]gamestate.Vec2{gamestate.Light: light, gamestate.Shadow: shadow},
		MapWidth:  1000,
		MapHeight: 400,
	}
}

func newTestSession(t *testing.T, level *leveldata.LevelData) *Session {
	t.Helper()
	s, err := NewSession("T1", level, SessionConfig{
		Delta:         1.0 / 60,
		SnapshotEvery: 1,
		InputBuffer:   8,
	}, NewDoorAnimator(level.Elements, 0))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func idle(side gamestate.Side, seq uint32) messages.GamePlayerInputPayload {
	return messages.GamePlayerInputPayload{Sequence: seq, Player: side}
}

func TestSessionSeatsEachSideOnce(t *testing.T) {
	s := newTestSession(t, testLevel(gamestate.Vec2{X: 0, Y: 40}, gamestate.Vec2{X: 50, Y: 40}))
	a, b, c := &fakePeer{id: "a"}, &fakePeer{id: "b"}, &fakePeer{id: "c"}

	accepted, err := s.Join(a, "")
	if err != nil || accepted.Side != gamestate.Light {
		t.Fatalf("first join = %v, %v", accepted.Side, err)
	}
	if accepted.Session != "T1" || accepted.Level != gamestate.LevelCrackTheDoor || accepted.Snapshot.Checksum == "" {
		t.Fatalf("accepted = %+v", accepted)
	}
	if _, err := s.Join(b, gamestate.Light); !errors.Is(err, ErrSideTaken) {
		t.Fatalf("taken side err = %v", err)
	}
	if _, err := s.Join(b, "PURPLE"); !errors.Is(err, ErrUnknownSide) {
		t.Fatalf("unknown side err = %v", err)
	}
	accepted, err = s.Join(b, "")
	if err != nil || accepted.Side != gamestate.Shadow {
		t.Fatalf("second join = %v, %v", accepted.Side, err)
	}
	if _, err := s.Join(c, ""); !errors.Is(err, ErrSessionFull) {
		t.Fatalf("third join err = %v", err)
	}
	if s.Members() != 2 {
		t.Fatalf("members = %d", s.Members())
	}
}

func TestSessionRejectsInputForOtherSide(t *testing.T) {
	s := newTestSession(t, testLevel(gamestate.Vec2{X: 0, Y: 40}, gamestate.Vec2{X: 50, Y: 40}))
	a, b := &fakePeer{id: "a"}, &fakePeer{id: "b"}
	if _, err := s.Join(a, gamestate.Light); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Join(b, gamestate.Shadow); err != nil {
		t.Fatal(err)
	}

	if err := s.Submit(a, idle(gamestate.Shadow, 1)); !errors.Is(err, ErrWrongSide) {
		t.Fatalf("wrong side err = %v", err)
	}
	if err := s.Submit(a, idle("PURPLE", 1)); !errors.Is(err, ErrUnknownSide) {
		t.Fatalf("unknown side err = %v", err)
	}
	if err := s.Submit(a, idle(gamestate.Light, 1)); err != nil {
		t.Fatalf("own side err = %v", err)
	}
}

func TestSessionTickAdvancesAndBroadcastsSnapshots(t *testing.T) {
	s := newTestSession(t, testLevel(gamestate.Vec2{X: 0, Y: 40}, gamestate.Vec2{X: 50, Y: 40}))
	a := &fakePeer{id: "a"}
	if _, err := s.Join(a, gamestate.Light); err != nil {
		t.Fatal(err)
	}

	in := idle(gamestate.Light, 1)
	in.Inputs.Right = true
	if err := s.Submit(a, in); err != nil {
		t.Fatal(err)
	}
	s.Tick()
	s.Tick()

	var snaps []messages.Snapshot
	for _, msg := range a.messages() {
		if snap, ok := msg.(messages.Snapshot); ok {
			snaps = append(snaps, snap)
		}
	}
	if len(snaps) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(snaps))
	}
	last := snaps[1]
	if last.Tick != 2 || last.Acked(gamestate.Light) != 1 {
		t.Fatalf("snapshot tick %d acked %d", last.Tick, last.Acked(gamestate.Light))
	}
	if light := last.State.Players[gamestate.Light]; light.Position.X <= 0 {
		t.Fatalf("light did not move right: %+v", light)
	}
	if shadow := last.State.Players[gamestate.Shadow]; shadow.Position != (gamestate.Vec2{X: 50, Y: 40}) {
		t.Fatalf("idle shadow moved: %+v", shadow)
	}
}

func TestSessionReportsDoorTransitions(t *testing.T) {
	s := newTestSession(t, testLevel(gamestate.Vec2{X: 120, Y: 44}, gamestate.Vec2{X: 0, Y: 40}))
	a := &fakePeer{id: "a"}
	if _, err := s.Join(a, gamestate.Light); err != nil {
		t.Fatal(err)
	}
	if err := s.Submit(a, idle(gamestate.Light, 1)); err != nil {
		t.Fatal(err)
	}
	s.Tick()

	var opened bool
	for _, msg := range a.messages() {
		if evt, ok := msg.(messages.DoorChangedEvent); ok {
			if evt.Key != "ROOF" || !evt.Open || evt.Tick != 1 {
				t.Fatalf("door event = %+v", evt)
			}
			opened = true
		}
	}
	if !opened {
		t.Fatal("no door event")
	}
	snap := s.Snapshot()
	if len(snap.Doors) != 1 || !snap.Doors[0].Open || snap.Doors[0].Offset != 120 {
		t.Fatalf("door views = %+v", snap.Doors)
	}
}

func TestSessionAnnouncesLevelClearedOnce(t *testing.T) {
	s := newTestSession(t, testLevel(gamestate.Vec2{X: -280, Y: 44}, gamestate.Vec2{X: -220, Y: 44}))
	a, b := &fakePeer{id: "a"}, &fakePeer{id: "b"}
	if _, err := s.Join(a, gamestate.Light); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Join(b, gamestate.Shadow); err != nil {
		t.Fatal(err)
	}
	for seq := uint32(1); seq <= 3; seq++ {
		if err := s.Submit(a, idle(gamestate.Light, seq)); err != nil {
			t.Fatal(err)
		}
		if err := s.Submit(b, idle(gamestate.Shadow, seq)); err != nil {
			t.Fatal(err)
		}
		s.Tick()
	}

	cleared := 0
	for _, msg := range b.messages() {
		if evt, ok := msg.(messages.LevelClearedEvent); ok {
			if evt.Tick != 1 {
				t.Fatalf("cleared at tick %d", evt.Tick)
			}
			cleared++
		}
	}
	if cleared != 1 {
		t.Fatalf("level cleared announced %d times", cleared)
	}
}

func TestSessionLeaveNotifiesRemainingPeer(t *testing.T) {
	s := newTestSession(t, testLevel(gamestate.Vec2{X: 0, Y: 40}, gamestate.Vec2{X: 50, Y: 40}))
	a, b := &fakePeer{id: "a"}, &fakePeer{id: "b"}
	if _, err := s.Join(a, gamestate.Light); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Join(b, gamestate.Shadow); err != nil {
		t.Fatal(err)
	}

	side, remaining := s.Leave(a)
	if side != gamestate.Light || remaining != 1 {
		t.Fatalf("leave = %v, %d", side, remaining)
	}
	msgs := b.messages()
	if len(msgs) != 1 || msgs[0] != (messages.PlayerLeftEvent{Side: gamestate.Light}) {
		t.Fatalf("remaining peer got %v", msgs)
	}
	if err := s.Submit(a, idle(gamestate.Light, 1)); !errors.Is(err, ErrWrongSide) {
		t.Fatalf("submit after leave err = %v", err)
	}

	if _, err := s.Join(&fakePeer{id: "c"}, gamestate.Light); err != nil {
		t.Fatalf("rejoin freed side: %v", err)
	}
}

func TestSessionForgetsInputOfVacatedSeat(t *testing.T) {
	s := newTestSession(t, testLevel(gamestate.Vec2{X: 0, Y: 40}, gamestate.Vec2{X: 50, Y: 40}))
	a := &fakePeer{id: "a"}
	if _, err := s.Join(a, gamestate.Light); err != nil {
		t.Fatal(err)
	}
	in := idle(gamestate.Light, 500)
	in.Inputs.Right = true
	if err := s.Submit(a, in); err != nil {
		t.Fatal(err)
	}
	s.Tick()
	s.Leave(a)

	before := s.Snapshot().State.Players[gamestate.Light].Position
	for i := 0; i < 30; i++ {
		s.Tick()
	}
	if after := s.Snapshot().State.Players[gamestate.Light].Position; after != before {
		t.Fatalf("empty seat kept moving: %+v -> %+v", before, after)
	}

	accepted, err := s.Join(&fakePeer{id: "c"}, gamestate.Light)
	if err != nil {
		t.Fatal(err)
	}
	if acked := accepted.Snapshot.Acked(gamestate.Light); acked != 0 {
		t.Fatalf("new member starts acked at %d, want 0", acked)
	}
}
