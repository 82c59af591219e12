package network

import (
	"testing"

	"github.com/automoto/composite/assets"
	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/leveldata"
	"github.com/automoto/composite/shared/messages"
	"github.com/automoto/composite/shared/physics"
)

const tick = 1.0 / 60

func loadLevel(t *testing.T, id gamestate.LevelID) *leveldata.LevelData {
	t.Helper()
	l, err := leveldata.LoadLevel(assets.FS(), assets.LevelsDir+"/"+string(id)+".tmx")
	if err != nil {
		t.Fatalf("load %s: %v", id, err)
	}
	return l
}

// authority replays the given inputs the way a server would, one per tick.
func authority(t *testing.T, l *leveldata.LevelData, inputs []messages.GamePlayerInputPayload) messages.Snapshot {
	t.Helper()
	gs, err := l.NewState()
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	geo := l.NewGeometry()
	env := &physics.Env{Obstacles: geo, Context: physics.ContextServer, Doors: geo}
	cursors := map[gamestate.Side]*messages.GamePlayerInputPayload{}
	for _, in := range inputs {
		physics.AdvanceTick(tick, cursors, map[gamestate.Side][]messages.GamePlayerInputPayload{in.Player: {in}}, gs, env)
	}
	snap := messages.Snapshot{Tick: gs.GameTime, State: gs.ToWire(), Cursors: map[gamestate.Side]messages.GamePlayerInputPayload{}}
	for side, c := range cursors {
		snap.Cursors[side] = *c
	}
	return snap
}

func TestReconcileWithMatchingAuthorityKeepsPrediction(t *testing.T) {
	l := loadLevel(t, gamestate.LevelSandbox)
	p, err := NewPredictor(l, gamestate.Light, tick, nil)
	if err != nil {
		t.Fatalf("predictor: %v", err)
	}

	var sent []messages.GamePlayerInputPayload
	for i := 0; i < 10; i++ {
		sent = append(sent, p.Next(messages.Inputs{Right: true, Jump: i == 2}, int64(i)))
	}
	predicted := p.State().Clone()

	replayed, err := p.Reconcile(authority(t, l, sent[:6]))
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if replayed != 4 {
		t.Fatalf("replayed %d inputs, want 4", replayed)
	}
	if p.LastAcked() != 6 || p.LastError() != 0 {
		t.Fatalf("acked %d, error %v", p.LastAcked(), p.LastError())
	}
	if !p.State().Equal(predicted) {
		t.Fatalf("reconciled state differs:\n%+v\n%+v", p.State().ToWire(), predicted.ToWire())
	}
}

func TestReconcileAdoptsAuthoritativeCorrection(t *testing.T) {
	l := loadLevel(t, gamestate.LevelSandbox)
	p, err := NewPredictor(l, gamestate.Light, tick, nil)
	if err != nil {
		t.Fatalf("predictor: %v", err)
	}
	var sent []messages.GamePlayerInputPayload
	for i := 0; i < 5; i++ {
		sent = append(sent, p.Next(messages.Inputs{Right: true}, int64(i)))
	}

	snap := authority(t, l, sent[:3])
	light := snap.State.Players[gamestate.Light]
	light.Position.X = 500
	snap.State.Players[gamestate.Light] = light

	if _, err := p.Reconcile(snap); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if p.LastError() < 300 {
		t.Fatalf("prediction error = %v, want the correction distance", p.LastError())
	}
	if x := p.State().Player(gamestate.Light).Position.X; x <= 500 {
		t.Fatalf("x = %v, want replayed motion on top of 500", x)
	}
}

func TestReconcileIgnoresStaleSnapshots(t *testing.T) {
	l := loadLevel(t, gamestate.LevelSandbox)
	p, _ := NewPredictor(l, gamestate.Shadow, tick, nil)
	var sent []messages.GamePlayerInputPayload
	for i := 0; i < 4; i++ {
		sent = append(sent, p.Next(messages.Inputs{Left: true}, int64(i)))
	}
	if _, err := p.Reconcile(authority(t, l, sent[:3])); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	before := p.State().Clone()

	if n, err := p.Reconcile(authority(t, l, sent[:1])); err != nil || n != 0 {
		t.Fatalf("stale reconcile = %d, %v", n, err)
	}
	if !p.State().Equal(before) {
		t.Fatal("stale snapshot changed the prediction")
	}
}

func TestReconcileAppliesServerDoors(t *testing.T) {
	l := loadLevel(t, gamestate.LevelCrackTheDoor)
	p, err := NewPredictor(l, gamestate.Shadow, tick, nil)
	if err != nil {
		t.Fatalf("predictor: %v", err)
	}
	snap := authority(t, l, nil)
	snap.Doors = []messages.DoorView{{Key: "GROUND", Open: true, Offset: 12}}

	if _, err := p.Reconcile(snap); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !p.Geometry().DoorOpen("GROUND") || p.Geometry().DoorOpen("ROOF") {
		t.Fatal("door geometry does not follow the snapshot")
	}
	if len(p.Doors()) != 1 {
		t.Fatalf("doors = %+v", p.Doors())
	}
}

func TestNewPredictorRejectsUnknownSide(t *testing.T) {
	if _, err := NewPredictor(loadLevel(t, gamestate.LevelSandbox), "PURPLE", tick, nil); err == nil {
		t.Fatal("expected an error")
	}
}
