package geometry

import (
	"testing"

	"github.com/automoto/composite/shared/gamestate"
)

var reach = Probe{Left: 20, Right: 20, Up: 20, Down: 20}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		key  string
	}{
		{"ground", KindSolid, ""},
		{"WALL_DOOR_ROOF", KindDoor, "ROOF"},
		{"GROUND_AREA_DOOR_OPENER", KindDoorOpener, "GROUND"},
		{"AREA_END_LEVEL", KindEndLevel, ""},
		{"_AREA_DOOR_OPENER", KindSolid, ""},
		{"WALL_DOOR_", KindSolid, ""},
	}
	for _, tt := range tests {
		kind, key := Classify(tt.name)
		if kind != tt.kind || key != tt.key {
			t.Errorf("Classify(%q) = %v, %q; want %v, %q", tt.name, kind, key, tt.kind, tt.key)
		}
	}
}

func TestNamingRoundTrip(t *testing.T) {
	name := AreaDoorOpenerName("GROUND")
	if name != "GROUND_AREA_DOOR_OPENER" {
		t.Fatalf("opener name = %q", name)
	}
	key, ok := DoorKeyFromOpener(name)
	if !ok || key != "GROUND" {
		t.Fatalf("key = %q, %v", key, ok)
	}
	if WallDoorName(key) != "WALL_DOOR_GROUND" {
		t.Fatalf("wall door name = %q", WallDoorName(key))
	}
}

func TestEmptyGeometryHasNoHits(t *testing.T) {
	g := New(nil)
	n := g.Query(gamestate.Vec2{X: 5, Y: 5}, reach)
	if n.Left != nil || n.Right != nil || n.Up != nil || n.Down != nil || n.Inside != nil {
		t.Fatalf("empty geometry reported %+v", n)
	}
}

func TestQueryFindsNearestPerDirection(t *testing.T) {
	g := New([]Element{
		NewElement("ground", Rect{X: 0, Y: 0, W: 400, H: 20}, false),
		NewElement("ceiling", Rect{X: 0, Y: 50, W: 400, H: 10}, false),
		NewElement("wall_left", Rect{X: 80, Y: 0, W: 10, H: 100}, false),
		NewElement("wall_right", Rect{X: 115, Y: 0, W: 10, H: 100}, true),
	})

	n := g.Query(gamestate.Vec2{X: 100, Y: 35}, reach)
	if n.Down == nil || n.Down.Element.Name != "ground" || n.Down.Point.Y != 20 || n.Down.Distance != 15 {
		t.Fatalf("down = %+v", n.Down)
	}
	if n.Up == nil || n.Up.Element.Name != "ceiling" || n.Up.Point.Y != 50 {
		t.Fatalf("up = %+v", n.Up)
	}
	if n.Left == nil || n.Left.Element.Name != "wall_left" || n.Left.Point.X != 90 {
		t.Fatalf("left = %+v", n.Left)
	}
	if n.Right == nil || !n.Right.Element.Bounce || n.Right.Point.X != 115 {
		t.Fatalf("right = %+v", n.Right)
	}
}

func TestQueryRespectsReach(t *testing.T) {
	g := New([]Element{NewElement("ground", Rect{X: 0, Y: 0, W: 100, H: 20}, false)})

	if n := g.Query(gamestate.Vec2{X: 50, Y: 41}, reach); n.Down != nil {
		t.Fatalf("surface 21 away reported: %+v", n.Down)
	}
	if n := g.Query(gamestate.Vec2{X: 50, Y: 40}, reach); n.Down == nil {
		t.Fatal("surface exactly at reach missed")
	}
	if n := g.Query(gamestate.Vec2{X: 50, Y: 41}, Probe{Down: 25}); n.Down == nil {
		t.Fatal("extended reach missed surface")
	}
}

func TestQueryTieBreaksByInsertionOrder(t *testing.T) {
	g := New([]Element{
		NewElement("first", Rect{X: 0, Y: 0, W: 50, H: 20}, false),
		NewElement("second", Rect{X: 40, Y: 0, W: 50, H: 20}, true),
	})
	n := g.Query(gamestate.Vec2{X: 45, Y: 30}, reach)
	if n.Down == nil || n.Down.Element.Name != "first" {
		t.Fatalf("tie resolved to %+v", n.Down)
	}
}

func TestQueryHandlesNegativeCoordinates(t *testing.T) {
	g := New([]Element{NewElement("pit", Rect{X: -500, Y: -300, W: 200, H: 20}, false)})
	n := g.Query(gamestate.Vec2{X: -400, Y: -270}, reach)
	if n.Down == nil || n.Down.Point.Y != -280 {
		t.Fatalf("down = %+v", n.Down)
	}
}

func TestOpenDoorStopsBlocking(t *testing.T) {
	g := New([]Element{
		NewElement("ground", Rect{X: 0, Y: 0, W: 400, H: 20}, false),
		NewElement(WallDoorName("GROUND"), Rect{X: 110, Y: 20, W: 20, H: 200}, false),
	})
	pos := gamestate.Vec2{X: 100, Y: 40}

	if n := g.Query(pos, reach); n.Right == nil || n.Right.Element.Kind != KindDoor {
		t.Fatalf("closed door should block, got %+v", n.Right)
	}
	g.SetDoorOpen("GROUND", true)
	if n := g.Query(pos, reach); n.Right != nil {
		t.Fatalf("open door still blocks: %+v", n.Right)
	}
	g.SetDoorOpen("GROUND", false)
	if n := g.Query(pos, reach); n.Right == nil {
		t.Fatal("closed door should block again")
	}
}

func TestInsideReportsEmbeddingSolid(t *testing.T) {
	g := New([]Element{
		NewElement(EndLevelName, Rect{X: 0, Y: 0, W: 100, H: 100}, false),
		NewElement("rock", Rect{X: 0, Y: 0, W: 100, H: 100}, false),
	})
	n := g.Query(gamestate.Vec2{X: 50, Y: 50}, reach)
	if n.Inside == nil || n.Inside.Name != "rock" {
		t.Fatalf("inside = %+v, want rock (triggers never embed)", n.Inside)
	}
}

func TestDoorKeys(t *testing.T) {
	g := New([]Element{
		NewElement(WallDoorName("ROOF"), Rect{W: 10, H: 10}, false),
		NewElement(WallDoorName("GROUND"), Rect{X: 20, W: 10, H: 10}, false),
		NewElement(WallDoorName("GROUND"), Rect{X: 40, W: 10, H: 10}, false),
		NewElement(AreaDoorOpenerName("ROOF"), Rect{X: 60, W: 10, H: 2}, false),
	})
	keys := g.DoorKeys()
	if len(keys) != 2 || keys[0] != "GROUND" || keys[1] != "ROOF" {
		t.Fatalf("keys = %v", keys)
	}
}

func TestTriggersOnlyAnswerDownward(t *testing.T) {
	g := New([]Element{
		NewElement(AreaDoorOpenerName("ROOF"), Rect{X: 90, Y: 0, W: 40, H: 60}, false),
	})
	// beside the pad: no horizontal hit
	if n := g.Query(gamestate.Vec2{X: 75, Y: 30}, reach); n.Right != nil {
		t.Fatalf("trigger blocked horizontally: %+v", n.Right)
	}
	// under the pad: no ceiling
	if n := g.Query(gamestate.Vec2{X: 100, Y: -10}, reach); n.Up != nil {
		t.Fatalf("trigger blocked upward: %+v", n.Up)
	}
	// above the pad: standing on it
	n := g.Query(gamestate.Vec2{X: 100, Y: 75}, reach)
	if n.Down == nil || !n.Down.Element.IsDoorOpener() || n.Down.Element.DoorKey != "ROOF" {
		t.Fatalf("down = %+v", n.Down)
	}
}
