package systems

import (
	"encoding/json"
	"log"

	cfg "github.com/automoto/composite/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	Address         string `json:"address"`
	Session         string `json:"session"`
	Side            string `json:"side"`
	Level           string `json:"level"`
	Fullscreen      bool   `json:"fullscreen"`
	ResolutionIndex int    `json:"resolutionIndex"`
}

// DefaultSettings are used until the player saves their own.
func DefaultSettings() SavedSettings {
	return SavedSettings{
		Address:         cfg.Network.DefaultAddress,
		Level:           string(cfg.Match.DefaultLevel),
		ResolutionIndex: cfg.Settings.DefaultResolutionIndex,
	}
}

var gdataManager *gdata.Manager

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "composite",
	})
	if err != nil {
		return err
	}
	gdataManager = m
	return nil
}

// LoadSettings loads settings from disk, falling back to the defaults.
func LoadSettings() SavedSettings {
	settings := DefaultSettings()
	if gdataManager == nil {
		return settings
	}

	data, err := gdataManager.LoadItem("settings")
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return settings
	}
	if data == nil {
		return settings
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return DefaultSettings()
	}
	return settings
}

// SaveSettings saves settings to disk
func SaveSettings(s SavedSettings) error {
	if gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := gdataManager.SaveItem("settings", data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// ApplyDisplaySettings applies the window settings.
func ApplyDisplaySettings(s SavedSettings) {
	ebiten.SetFullscreen(s.Fullscreen)

	// Apply resolution (only if not fullscreen)
	if !s.Fullscreen && s.ResolutionIndex >= 0 && s.ResolutionIndex < len(cfg.Settings.Resolutions) {
		res := cfg.Settings.Resolutions[s.ResolutionIndex]
		ebiten.SetWindowSize(res.Width, res.Height)
	}
}
