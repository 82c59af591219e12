package config

// Resolution represents a display resolution option
type Resolution struct {
	Width  int
	Height int
	Label  string
}

// SettingsConfig lists the choices the menu offers.
type SettingsConfig struct {
	Resolutions            []Resolution
	DefaultResolutionIndex int
	SideChoices            []string // "" lets the server pick
}

// Settings is the global settings configuration
var Settings SettingsConfig

func init() {
	Settings = SettingsConfig{
		Resolutions: []Resolution{
			{Width: 1280, Height: 720, Label: "1280 x 720"},
			{Width: 1600, Height: 900, Label: "1600 x 900"},
			{Width: 1920, Height: 1080, Label: "1920 x 1080"},
		},
		DefaultResolutionIndex: 0,
		SideChoices:            []string{"", "LIGHT", "SHADOW"},
	}
}
