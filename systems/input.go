package systems

import (
	"github.com/automoto/composite/components"
	cfg "github.com/automoto/composite/config"
	"github.com/automoto/composite/shared/messages"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// UpdateInput polls raw input into the global Input component. Only
// scene-level actions such as pause read it.
func UpdateInput(ecs *ecs.ECS) {
	input := getOrCreateInput(ecs)

	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				input.Current[actionID] = true
			}
		}
		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					input.Current[actionID] = true
				}
			}
		}
	}
}

// UpdatePlayerInput polls input for every locally controlled player.
// Must run AFTER UpdateInput.
func UpdatePlayerInput(ecs *ecs.ECS) {
	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	components.PlayerInput.Each(ecs.World, func(entry *donburi.Entry) {
		input := components.PlayerInput.Get(entry)
		input.PreviousInput = input.CurrentInput
		input.CurrentInput = [cfg.ActionCount]bool{}

		switch {
		case input.BoundGamepadID != nil:
			pollGamepadForPlayer(input, *input.BoundGamepadID)
		case input.WholeKeyboard:
			pollWholeKeyboard(input)
		case int(input.ControlScheme) < len(cfg.ControlSchemeBindings):
			pollControlSchemeForPlayer(input, input.ControlScheme)
		}
	})
}

func pollWholeKeyboard(input *components.PlayerInputData) {
	for actionID, binding := range cfg.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				input.CurrentInput[actionID] = true
			}
		}
	}
	// A lone player may still use any pad.
	for _, gpID := range gamepadIDs {
		pollGamepadForPlayer(input, gpID)
	}
}

// pollGamepadForPlayer reads input from a specific gamepad into PlayerInputData.
func pollGamepadForPlayer(input *components.PlayerInputData, gpID ebiten.GamepadID) {
	if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
		return
	}

	for actionID, binding := range cfg.Input.Bindings {
		for _, btn := range binding.StandardGamepadButtons {
			if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
				input.CurrentInput[actionID] = true
			}
		}
	}

	deadzone := cfg.Input.AnalogDeadzone
	horizontal := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
	vertical := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)

	if horizontal < -deadzone {
		input.CurrentInput[cfg.ActionMoveLeft] = true
	}
	if horizontal > deadzone {
		input.CurrentInput[cfg.ActionMoveRight] = true
	}
	if vertical < -deadzone {
		input.CurrentInput[cfg.ActionMoveUp] = true
	}
	if vertical > deadzone {
		input.CurrentInput[cfg.ActionMoveDown] = true
	}
}

// pollControlSchemeForPlayer reads input from a control scheme into PlayerInputData.
func pollControlSchemeForPlayer(input *components.PlayerInputData, scheme cfg.ControlSchemeID) {
	for actionID, keys := range cfg.ControlSchemeBindings[scheme] {
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				input.CurrentInput[actionID] = true
			}
		}
	}
}

// InputsFromActions maps the held actions to the simulation's input flags.
func InputsFromActions(actions [cfg.ActionCount]bool) messages.Inputs {
	return messages.Inputs{
		Left:   actions[cfg.ActionMoveLeft],
		Right:  actions[cfg.ActionMoveRight],
		Top:    actions[cfg.ActionMoveUp],
		Bottom: actions[cfg.ActionMoveDown],
		Jump:   actions[cfg.ActionJump],
	}
}

// getOrCreateInput returns the singleton Input component, creating if needed
func getOrCreateInput(ecs *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(components.Input))
	}
	return components.Input.Get(entry)
}

// GetAction returns the full ActionState for an action ID.
// JustPressed/JustReleased are derived from current vs previous frame.
func GetAction(input *components.InputData, id cfg.ActionID) components.ActionState {
	curr := input.Current[id]
	prev := input.Previous[id]
	return components.ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}
