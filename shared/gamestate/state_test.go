package gamestate

import "testing"

func newTestState() *GameState {
	level := NewPositionLevelState(LevelCrackTheDoor, []string{"ROOF", "GROUND"})
	return New(level, map[Side]Vec2{Light: {X: 100, Y: 40}, Shadow: {X: 300, Y: 40}})
}

func TestNewPlacesPlayersAtSpawns(t *testing.T) {
	gs := newTestState()
	if got := gs.Player(Light).Position; got != (Vec2{X: 100, Y: 40}) {
		t.Fatalf("light spawn = %+v", got)
	}
	if got := gs.Player(Shadow).State; got != OnFloor {
		t.Fatalf("shadow state = %v, want onFloor", got)
	}
	if gs.Player("NOBODY") != nil {
		t.Fatal("unknown side should have no player")
	}
}

func TestCloneSharesNoMemory(t *testing.T) {
	gs := newTestState()
	c := gs.Clone()
	if !gs.Equal(c) {
		t.Fatal("clone should equal original")
	}

	c.Players[Light].Position.X = 999
	c.Level.(*PositionLevelState).Doors["ROOF"] = AddSide(c.Level.(*PositionLevelState).Doors["ROOF"], Shadow)
	c.Level.(*PositionLevelState).EndLevel = AddSide(c.Level.(*PositionLevelState).EndLevel, Light)

	if gs.Players[Light].Position.X != 100 {
		t.Fatal("player mutated through clone")
	}
	lvl := gs.Level.(*PositionLevelState)
	if len(lvl.Doors["ROOF"]) != 0 || len(lvl.EndLevel) != 0 {
		t.Fatalf("level mutated through clone: %+v", lvl)
	}
	if gs.Equal(c) {
		t.Fatal("diverged clone should not be equal")
	}
}

func TestEqualIgnoresEmptiedSets(t *testing.T) {
	a := newTestState()
	b := a.Clone()
	lvl := b.Level.(*PositionLevelState)
	lvl.EndLevel = RemoveSide(AddSide(lvl.EndLevel, Light), Light)
	if !a.Equal(b) {
		t.Fatal("emptied set should compare equal to an empty one")
	}
}

func TestSideSetsHaveNoDuplicates(t *testing.T) {
	var set []Side
	set = AddSide(set, Light)
	set = AddSide(set, Light)
	set = AddSide(set, Shadow)
	if len(set) != 2 {
		t.Fatalf("set = %v, want two members", set)
	}
	set = RemoveSide(set, Light)
	if len(set) != 1 || set[0] != Shadow {
		t.Fatalf("set after remove = %v", set)
	}
	set = RemoveSide(set, Light)
	if len(set) != 1 {
		t.Fatalf("removing an absent side changed the set: %v", set)
	}
}

func TestRemoveSideLeavesInputIntact(t *testing.T) {
	lvl := NewSandboxLevelState(LevelSandbox)
	lvl.EndLevel = []Side{Light, Shadow}
	held := lvl.EndLevelSides()

	rest := RemoveSide(held, Light)
	if len(rest) != 1 || rest[0] != Shadow {
		t.Fatalf("rest = %v", rest)
	}
	if held[0] != Light || held[1] != Shadow {
		t.Fatalf("caller's slice rewritten: %v", held)
	}
}

func TestDoorKeysSorted(t *testing.T) {
	lvl := NewPositionLevelState(LevelCrackTheDoor, []string{"ROOF", "GROUND", "CELLAR"})
	keys := lvl.DoorKeys()
	want := []string{"CELLAR", "GROUND", "ROOF"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}

func TestLevelCleared(t *testing.T) {
	lvl := NewSandboxLevelState(LevelSandbox)
	if LevelCleared(lvl) {
		t.Fatal("empty end level cleared")
	}
	lvl.EndLevel = AddSide(lvl.EndLevel, Light)
	if LevelCleared(lvl) {
		t.Fatal("one side should not clear the level")
	}
	lvl.EndLevel = AddSide(lvl.EndLevel, Shadow)
	if !LevelCleared(lvl) {
		t.Fatal("both sides should clear the level")
	}
	if LevelCleared(nil) {
		t.Fatal("nil level cleared")
	}
}

func TestChecksumStableAndSensitive(t *testing.T) {
	a := newTestState()
	b := a.Clone()

	sa, err := a.Checksum()
	if err != nil {
		t.Fatalf("checksum: %v", err)
	}
	sb, err := b.Checksum()
	if err != nil {
		t.Fatalf("checksum: %v", err)
	}
	if sa != sb {
		t.Fatalf("equal states hash differently: %s vs %s", sa, sb)
	}

	b.Players[Shadow].Velocity.Y = -0.5
	sc, _ := b.Checksum()
	if sc == sa {
		t.Fatal("checksum ignored a velocity change")
	}
}

func TestChecksumIgnoresMapOrder(t *testing.T) {
	level := NewPositionLevelState(LevelCrackTheDoor, []string{"ROOF", "GROUND", "CELLAR", "ATTIC", "GATE", "VAULT"})
	level.Doors["ROOF"] = []Side{Shadow, Light}
	level.Doors["GATE"] = []Side{Light}
	gs := New(level, map[Side]Vec2{Light: {X: 1, Y: 2}, Shadow: {X: 3, Y: 4}})

	want, err := gs.Checksum()
	if err != nil {
		t.Fatalf("checksum: %v", err)
	}
	for i := 0; i < 50; i++ {
		got, err := gs.Clone().Checksum()
		if err != nil {
			t.Fatalf("checksum: %v", err)
		}
		if got != want {
			t.Fatalf("run %d: checksum %s, want %s", i, got, want)
		}
	}
}

func TestChecksumTreatsEmptiedSetAsEmpty(t *testing.T) {
	a := newTestState()
	b := a.Clone()
	lvl := b.Level.(*PositionLevelState)
	lvl.Doors["ROOF"] = RemoveSide(AddSide(lvl.Doors["ROOF"], Light), Light)

	sa, _ := a.Checksum()
	sb, _ := b.Checksum()
	if sa != sb {
		t.Fatalf("emptied door set changed the checksum: %s vs %s", sa, sb)
	}
}

func TestWireRoundTrip(t *testing.T) {
	gs := newTestState()
	gs.GameTime = 42
	lvl := gs.Level.(*PositionLevelState)
	lvl.Doors["GROUND"] = AddSide(lvl.Doors["GROUND"], Light)

	back, err := FromWire(gs.ToWire())
	if err != nil {
		t.Fatalf("from wire: %v", err)
	}
	if !gs.Equal(back) {
		t.Fatalf("round trip changed state: %+v", back)
	}
}

func TestFromWireRejectsBadVariants(t *testing.T) {
	if _, err := FromWire(Wire{}); err == nil {
		t.Fatal("expected error for missing level")
	}
	w := newTestState().ToWire()
	w.Sandbox = NewSandboxLevelState(LevelSandbox)
	if _, err := FromWire(w); err == nil {
		t.Fatal("expected error for two level variants")
	}
	w = newTestState().ToWire()
	w.Players["PURPLE"] = PlayerState{}
	if _, err := FromWire(w); err == nil {
		t.Fatal("expected error for unknown side")
	}
}
