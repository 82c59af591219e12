package systems

import (
	"fmt"
	"image/color"
	"strings"

	cfg "github.com/automoto/composite/config"
	"github.com/automoto/composite/fonts"
	"github.com/automoto/composite/network"
	"github.com/automoto/composite/shared/gamestate"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // font.Face faces from freetype
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

// DrawHUD renders match status in the top-left corner and the level
// cleared banner.
func DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	match := CurrentMatch(e)
	if match == nil || match.Match == nil {
		return
	}
	status := match.Match.Status()
	face := fonts.Small.Get()

	for i, line := range HUDLines(status, match.Match.State(), cfg.Debug.Dev) {
		text.Draw(screen, line, face, 4, 12+i*10, cfg.LightGreen)
	}

	width := screen.Bounds().Dx()
	height := screen.Bounds().Dy()
	switch {
	case status.Cleared:
		banner(screen, "LEVEL CLEARED", cfg.Yellow, width, height)
	case status.PartnerLeft:
		banner(screen, "PARTNER LEFT", cfg.Orange, width, height)
	}
}

// HUDLines formats the status block.
func HUDLines(status network.MatchStatus, state *gamestate.GameState, dev bool) []string {
	mode := "Offline"
	if status.Online {
		mode = "Online " + status.Session
	}
	lines := []string{
		fmt.Sprintf("%s - %s - tick %d", mode, status.Level, status.Tick),
	}
	for _, side := range gamestate.Sides {
		if p := state.Player(side); p != nil {
			lines = append(lines, fmt.Sprintf("%-6s %-6s (%.0f, %.0f)", side, p.State, p.Position.X, p.Position.Y))
		}
	}
	if lvl, ok := state.Level.(*gamestate.PositionLevelState); ok {
		var open []string
		for _, key := range lvl.DoorKeys() {
			if lvl.DoorOpen(key) {
				open = append(open, key)
			}
		}
		if len(open) > 0 {
			lines = append(lines, "open: "+strings.Join(open, ", "))
		}
	}
	if status.Online {
		lines = append(lines, fmt.Sprintf("error %.2f replayed %d", status.PredictionError, status.Replayed))
	}
	if dev && len(status.Checksum) >= 12 {
		lines = append(lines, "sum "+status.Checksum[:12])
	}
	return lines
}

func banner(screen *ebiten.Image, msg string, c color.Color, width, height int) {
	vector.FillRect(screen, 0, float32(height)/2-24, float32(width), 40, cfg.BlackOverlay, false)
	face := fonts.Title.Get()
	textWidth := len(msg) * 16
	text.Draw(screen, msg, face, (width-textWidth)/2, height/2+4, c)
}
