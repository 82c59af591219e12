package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionJump
	ActionPause
	ActionCount // Must be last - used for array sizing
)

// InputBinding represents a single key or button binding for an action
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// ControlSchemeID selects a keyboard half for local two-player matches.
type ControlSchemeID int

const (
	ControlSchemeArrows ControlSchemeID = iota // Arrows + right shift
	ControlSchemeWASD                          // WASD + space
)

// InputConfig holds all input mappings
type InputConfig struct {
	Bindings map[ActionID]InputBinding
	// Deadzone for analog stick input (0.0 to 1.0)
	AnalogDeadzone float64
}

// Input is the global input configuration, used when one player has the
// whole keyboard.
var Input InputConfig

// ControlSchemeBindings splits the keyboard between two local players.
var ControlSchemeBindings []map[ActionID][]ebiten.Key

func init() {
	Input = InputConfig{
		AnalogDeadzone: 0.25,
		Bindings: map[ActionID]InputBinding{
			ActionMoveLeft: {
				Keys: []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftLeft,
				},
			},
			ActionMoveRight: {
				Keys: []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftRight,
				},
			},
			ActionMoveUp: {
				Keys: []ebiten.Key{ebiten.KeyUp, ebiten.KeyW},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftTop,
				},
			},
			ActionMoveDown: {
				Keys: []ebiten.Key{ebiten.KeyDown, ebiten.KeyS},
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonLeftBottom,
				},
			},
			ActionJump: {
				Keys: []ebiten.Key{ebiten.KeySpace, ebiten.KeyX},
				// A / Cross button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonRightBottom,
				},
			},
			ActionPause: {
				Keys: []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP},
				// Start / Options button
				StandardGamepadButtons: []ebiten.StandardGamepadButton{
					ebiten.StandardGamepadButtonCenterRight,
				},
			},
		},
	}

	ControlSchemeBindings = []map[ActionID][]ebiten.Key{
		ControlSchemeArrows: {
			ActionMoveLeft:  {ebiten.KeyLeft},
			ActionMoveRight: {ebiten.KeyRight},
			ActionMoveUp:    {ebiten.KeyUp},
			ActionMoveDown:  {ebiten.KeyDown},
			ActionJump:      {ebiten.KeyShiftRight, ebiten.KeyEnter},
		},
		ControlSchemeWASD: {
			ActionMoveLeft:  {ebiten.KeyA},
			ActionMoveRight: {ebiten.KeyD},
			ActionMoveUp:    {ebiten.KeyW},
			ActionMoveDown:  {ebiten.KeyS},
			ActionJump:      {ebiten.KeySpace},
		},
	}
}
