package systems

import (
	"github.com/automoto/composite/components"
	cfg "github.com/automoto/composite/config"
	"github.com/automoto/composite/fonts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // font.Face faces from freetype
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePause toggles the pause overlay. While paused, Q leaves the match.
// This system should run AFTER UpdateInput but BEFORE the match system.
func UpdatePause(e *ecs.ECS) {
	entry, ok := components.Pause.First(e.World)
	if !ok {
		return
	}
	pause := components.Pause.Get(entry)
	input := getOrCreateInput(e)

	if GetAction(input, cfg.ActionPause).JustPressed {
		pause.IsPaused = !pause.IsPaused
	}
	if pause.IsPaused && inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		pause.Leave = true
	}
}

// DrawPause renders the pause overlay.
func DrawPause(e *ecs.ECS, screen *ebiten.Image) {
	entry, ok := components.Pause.First(e.World)
	if !ok || !components.Pause.Get(entry).IsPaused {
		return
	}

	width := screen.Bounds().Dx()
	height := screen.Bounds().Dy()
	vector.FillRect(screen, 0, 0, float32(width), float32(height), cfg.BlackOverlay, false)

	title := "PAUSED"
	text.Draw(screen, title, fonts.Title.Get(), (width-len(title)*16)/2, height/2-8, cfg.White)

	hint := "Esc: Resume   Q: Leave match"
	if match := CurrentMatch(e); match != nil && match.Match != nil && match.Match.Status().Online {
		hint = "Esc: Resume   Q: Leave match   (the match keeps running)"
	}
	text.Draw(screen, hint, fonts.Small.Get(), (width-len(hint)*5)/2, height/2+20, cfg.LightBlue)
}
