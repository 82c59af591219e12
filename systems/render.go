package systems

import (
	"image/color"

	"github.com/automoto/composite/components"
	cfg "github.com/automoto/composite/config"
	"github.com/automoto/composite/fonts"
	"github.com/automoto/composite/shared/geometry"
	"github.com/automoto/composite/shared/messages"
	"github.com/automoto/composite/shared/physics"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // font.Face faces from freetype
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// DrawLevel renders every level element. Door panels slide up by their
// current offset.
func DrawLevel(e *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.Palette.Background)

	cam, ok := cameraPosition(e)
	if !ok {
		return
	}
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry).CurrentLevel
	if level == nil {
		return
	}

	var doors []messages.DoorView
	if match := CurrentMatch(e); match != nil && match.Match != nil {
		doors = match.Match.Doors()
	}

	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	for _, el := range level.Elements {
		bounds := el.Bounds
		if el.Kind == geometry.KindDoor {
			bounds.Y += DoorOffset(doors, el.DoorKey)
		}
		fillWorldRect(screen, cam, bounds, w, h, ElementColor(el))
	}
}

// DrawPlayers renders both sides; local players get an outline.
func DrawPlayers(e *ecs.ECS, screen *ebiten.Image) {
	cam, ok := cameraPosition(e)
	if !ok {
		return
	}
	match := CurrentMatch(e)
	if match == nil || match.Match == nil {
		return
	}
	state := match.Match.State()
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	pw, ph := 2*physics.RangeX, 2*physics.RangeY
	face := fonts.Small.Get()

	components.Player.Each(e.World, func(entry *donburi.Entry) {
		player := components.Player.Get(entry)
		ps := state.Player(player.Side)
		if ps == nil {
			return
		}
		box := geometry.Rect{X: ps.Position.X - pw/2, Y: ps.Position.Y - ph/2, W: pw, H: ph}
		fillWorldRect(screen, cam, box, w, h, cfg.Palette.Sides[player.Side])

		x, y := WorldToScreen(cam, box.X, box.Top(), w, h)
		if player.Local {
			vector.StrokeRect(screen, float32(x), float32(y), float32(pw), float32(ph), 1, cfg.White, false)
		}

		cx, cy := WorldToScreen(cam, ps.Position.X, ps.Position.Y, w, h)
		dir := float32(player.Direction) * 6
		vector.FillRect(screen, float32(cx)+dir-2, float32(cy)-2, 4, 4, cfg.Palette.Background, false)

		label := string(player.Side)
		text.Draw(screen, label, face, int(cx)-len(label)*3, int(y)-4, cfg.White)
	})
}

// ElementColor picks the palette entry for a level element.
func ElementColor(el geometry.Element) color.RGBA {
	switch {
	case el.Kind == geometry.KindDoor:
		return cfg.Palette.Door
	case el.IsDoorOpener():
		return cfg.Palette.DoorOpener
	case el.IsEndLevel():
		return cfg.Palette.EndLevel
	case el.Bounce:
		return cfg.Palette.Bounce
	}
	return cfg.Palette.Solid
}

// DoorOffset returns how far the door's panels have slid open.
func DoorOffset(doors []messages.DoorView, key string) float64 {
	for _, d := range doors {
		if d.Key == key {
			return d.Offset
		}
	}
	return 0
}

func fillWorldRect(screen *ebiten.Image, cam dmath.Vec2, r geometry.Rect, w, h float64, c color.Color) {
	x, y := WorldToScreen(cam, r.X, r.Top(), w, h)
	if x > w || y > h || x+r.W < 0 || y+r.H < 0 {
		return
	}
	vector.FillRect(screen, float32(x), float32(y), float32(r.W), float32(r.H), c, false)
}

func cameraPosition(e *ecs.ECS) (dmath.Vec2, bool) {
	entry, ok := components.Camera.First(e.World)
	if !ok {
		return dmath.Vec2{}, false
	}
	return components.Camera.Get(entry).Position, true
}
