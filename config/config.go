package config

import (
	"image/color"
	"time"

	"github.com/automoto/composite/shared/gamestate"
	"github.com/yohamta/donburi/ecs"
)

// Render layers
const (
	Default ecs.LayerID = iota
	HUD
)

// Config holds general game configuration
type Config struct {
	Width  int
	Height int
}

// CameraConfig contains camera follow configuration
type CameraConfig struct {
	FollowSmoothing         float64 // How fast camera follows player (0.0-1.0)
	LookAheadDistanceX      float64 // Max horizontal look-ahead offset in pixels
	LookAheadSmoothing      float64 // How fast look-ahead offset changes (0.0-1.0)
	LookAheadSpeedThreshold float64 // Minimum speed to update look-ahead
}

// NetworkConfig contains connection defaults
type NetworkConfig struct {
	DefaultAddress string
	GameVersion    string
}

// MatchConfig contains local match settings
type MatchConfig struct {
	TickRate     int
	DefaultLevel gamestate.LevelID
	DoorTween    time.Duration
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	SkipMenu bool // Start an offline match without the menu
	Dev      bool // Trace simulation inputs and show checksums
}

// PaletteConfig holds the colors used to draw a level
type PaletteConfig struct {
	Background color.RGBA
	Solid      color.RGBA
	Bounce     color.RGBA
	Door       color.RGBA
	DoorOpener color.RGBA
	EndLevel   color.RGBA
	Sides      map[gamestate.Side]color.RGBA
}

// Global configuration instances
var C *Config
var Camera CameraConfig
var Network NetworkConfig
var Match MatchConfig
var Debug DebugConfig
var Palette PaletteConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
)

func init() {
	C = &Config{
		Width:  640,
		Height: 360,
	}

	Camera = CameraConfig{
		FollowSmoothing:         0.1,
		LookAheadDistanceX:      60.0, // ~10% of 640px screen width
		LookAheadSmoothing:      0.05,
		LookAheadSpeedThreshold: 0.1,
	}

	Network = NetworkConfig{
		DefaultAddress: "localhost:7373",
	}

	Match = MatchConfig{
		TickRate:     60,
		DefaultLevel: gamestate.LevelCrackTheDoor,
		DoorTween:    400 * time.Millisecond,
	}

	Palette = PaletteConfig{
		Background: color.RGBA{R: 20, G: 20, B: 30, A: 255},
		Solid:      color.RGBA{R: 90, G: 90, B: 110, A: 255},
		Bounce:     color.RGBA{R: 255, G: 120, B: 200, A: 255},
		Door:       color.RGBA{R: 160, G: 110, B: 60, A: 255},
		DoorOpener: color.RGBA{R: 255, G: 200, B: 60, A: 255},
		EndLevel:   color.RGBA{R: 60, G: 220, B: 120, A: 255},
		Sides: map[gamestate.Side]color.RGBA{
			gamestate.Light:  {R: 240, G: 240, B: 200, A: 255},
			gamestate.Shadow: {R: 120, G: 80, B: 200, A: 255},
		},
	}
}
