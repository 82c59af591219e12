package components

import (
	cfg "github.com/automoto/composite/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
)

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// InputData stores the current and previous frame's pressed state for all actions.
// Used for global input where all devices are merged.
type InputData struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool
}

var Input = donburi.NewComponentType[InputData]()

// PlayerInputData stores the input of one locally controlled player.
type PlayerInputData struct {
	CurrentInput   [cfg.ActionCount]bool
	PreviousInput  [cfg.ActionCount]bool
	BoundGamepadID *ebiten.GamepadID   // nil = keyboard
	ControlScheme  cfg.ControlSchemeID // Keyboard half in local two-player matches
	WholeKeyboard  bool                // Single local player: use cfg.Input bindings
}

var PlayerInput = donburi.NewComponentType[PlayerInputData]()
