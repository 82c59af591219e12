package leveldata

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/automoto/composite/assets"
	"github.com/automoto/composite/shared/gamestate"
	"github.com/automoto/composite/shared/geometry"
	"github.com/automoto/composite/shared/messages"
	"github.com/automoto/composite/shared/physics"
)

func loadEmbedded(t *testing.T) map[gamestate.LevelID]*LevelData {
	t.Helper()
	levels, ids, err := LoadAllLevels(assets.FS(), assets.LevelsDir)
	if err != nil {
		t.Fatalf("load levels: %v", err)
	}
	if len(ids) != 2 || ids[0] != gamestate.LevelCrackTheDoor || ids[1] != gamestate.LevelSandbox {
		t.Fatalf("ids = %v", ids)
	}
	return levels
}

func findElement(t *testing.T, l *LevelData, name string) geometry.Element {
	t.Helper()
	for _, e := range l.Elements {
		if e.Name == name {
			return e
		}
	}
	t.Fatalf("level %s has no element %q", l.ID, name)
	return geometry.Element{}
}

func TestCrackTheDoorLoads(t *testing.T) {
	l := loadEmbedded(t)[gamestate.LevelCrackTheDoor]

	if l.Archetype != ArchetypePosition || l.MapWidth != 1600 || l.MapHeight != 800 {
		t.Fatalf("level = %s %dx%d", l.Archetype, l.MapWidth, l.MapHeight)
	}
	if ground := findElement(t, l, "ground"); ground.Bounds != (geometry.Rect{X: 0, Y: 0, W: 1600, H: 20}) {
		t.Fatalf("ground bounds = %+v (y not flipped?)", ground.Bounds)
	}
	if opener := findElement(t, l, "GROUND_AREA_DOOR_OPENER"); opener.Kind != geometry.KindDoorOpener || opener.DoorKey != "GROUND" {
		t.Fatalf("opener = %+v", opener)
	}
	if spring := findElement(t, l, "spring"); !spring.Bounce {
		t.Fatal("spring lost its bounce property")
	}
	if end := findElement(t, l, geometry.EndLevelName); !end.IsEndLevel() {
		t.Fatalf("end level = %+v", end)
	}

	keys := l.DoorKeys()
	if strings.Join(keys, ",") != "GROUND,ROOF" {
		t.Fatalf("door keys = %v", keys)
	}
	if got := l.Spawns[gamestate.Light]; got != (gamestate.Vec2{X: 100, Y: 40}) {
		t.Fatalf("light spawn = %+v", got)
	}
	if got := l.Spawns[gamestate.Shadow]; got != (gamestate.Vec2{X: 300, Y: 40}) {
		t.Fatalf("shadow spawn = %+v", got)
	}

	gs, err := l.NewState()
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	lvl, ok := gs.Level.(*gamestate.PositionLevelState)
	if !ok {
		t.Fatalf("level state = %T", gs.Level)
	}
	if len(lvl.Doors) != 2 || lvl.DoorOpen("GROUND") || lvl.DoorOpen("ROOF") {
		t.Fatalf("doors = %v", lvl.Doors)
	}
}

func TestSandboxLoads(t *testing.T) {
	l := loadEmbedded(t)[gamestate.LevelSandbox]
	gs, err := l.NewState()
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	if _, ok := gs.Level.(*gamestate.SandboxLevelState); !ok {
		t.Fatalf("level state = %T", gs.Level)
	}
	if len(l.DoorKeys()) != 0 {
		t.Fatalf("sandbox has doors: %v", l.DoorKeys())
	}
}

func TestSpawnsRestOnTheGround(t *testing.T) {
	for id, l := range loadEmbedded(t) {
		gs, err := l.NewState()
		if err != nil {
			t.Fatalf("%s: %v", id, err)
		}
		env := &physics.Env{Obstacles: l.NewGeometry(), Context: physics.ContextServer}
		for i := 0; i < 30; i++ {
			for _, side := range gamestate.Sides {
				physics.ApplySingleInput(1.0/60, side, messages.Inputs{}, gs, env)
			}
		}
		for _, side := range gamestate.Sides {
			p := gs.Player(side)
			if p.State != gamestate.OnFloor || p.Position != l.Spawns[side] {
				t.Fatalf("%s %s: %+v, want at rest on spawn %+v", id, side, p, l.Spawns[side])
			}
		}
	}
}

const mapHeader = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="10" height="10" tilewidth="16" tileheight="16" infinite="0">
 <properties>
  <property name="archetype" value="%s"/>
 </properties>
`

func tmx(archetype, body string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(strings.Replace(mapHeader, "%s", archetype, 1) + body + "</map>\n")}
}

func TestLoadLevelRejectsBadFiles(t *testing.T) {
	spawns := ` <objectgroup id="2" name="PlayerSpawn">
  <object id="2" x="10" y="10"><properties><property name="side" value="light"/></properties><point/></object>
  <object id="3" x="30" y="10"><properties><property name="side" value="SHADOW"/></properties><point/></object>
 </objectgroup>
`
	fsys := fstest.MapFS{
		"levels/ok.tmx":        tmx("sandbox", spawns),
		"levels/no_shadow.tmx": tmx("sandbox", ` <objectgroup id="2" name="PlayerSpawn"><object id="2" x="10" y="10"><properties><property name="side" value="LIGHT"/></properties><point/></object></objectgroup>`+"\n"),
		"levels/bad_side.tmx":  tmx("sandbox", ` <objectgroup id="2" name="PlayerSpawn"><object id="2" x="10" y="10"><properties><property name="side" value="PURPLE"/></properties><point/></object></objectgroup>`+"\n"),
		"levels/bad_kind.tmx":  tmx("racetrack", spawns),
		"levels/anonymous.tmx": tmx("sandbox", ` <objectgroup id="1" name="Colliders"><object id="1" x="0" y="0" width="5" height="5"/></objectgroup>`+"\n"+spawns),
	}

	l, err := LoadLevel(fsys, "levels/ok.tmx")
	if err != nil {
		t.Fatalf("ok level: %v", err)
	}
	if l.Spawns[gamestate.Light] != (gamestate.Vec2{X: 10, Y: 150}) {
		t.Fatalf("light spawn = %+v", l.Spawns[gamestate.Light])
	}

	for _, name := range []string{"no_shadow", "bad_side", "bad_kind", "anonymous"} {
		if _, err := LoadLevel(fsys, "levels/"+name+".tmx"); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
	if _, err := LoadLevel(fsys, "levels/missing.tmx"); err == nil {
		t.Error("missing file: expected an error")
	}
}
