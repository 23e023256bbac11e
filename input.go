package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/atmterminated/Pixel-Arena/arena"
)

// Input polls the keyboard, mouse, and first gamepad once per frame and
// dispatches press/release edges to the character's input handlers. The
// character only ever sees logical actions, never devices, and all dispatch
// happens before the tick reads the input state.
type Input struct {
	prevDir     [len(arena.Directions)]bool
	prevAttack  bool
	prevAbility bool
}

func NewInput() *Input {
	return &Input{}
}

// Update performs edge detection and forwards changes to the character.
func (i *Input) Update(c *arena.Character) {
	if c == nil {
		return
	}

	for _, d := range arena.Directions {
		held := directionHeld(d)
		if held != i.prevDir[d] {
			c.SetDirectionalInput(d, held)
			i.prevDir[d] = held
		}
	}

	attack := ebiten.IsKeyPressed(ebiten.KeyJ) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		gamepadPressed(ebiten.StandardGamepadButtonRightBottom)
	if attack != i.prevAttack {
		c.SetAttackInput(attack)
		i.prevAttack = attack
	}

	ability := ebiten.IsKeyPressed(ebiten.KeyK) ||
		ebiten.IsKeyPressed(ebiten.KeyShiftLeft) ||
		gamepadPressed(ebiten.StandardGamepadButtonRightRight)
	if ability != i.prevAbility {
		c.SetAbilityInput(ability)
		i.prevAbility = ability
	}
}

// Reset clears the tracked edges and re-derives the character's input from
// the live key state. Used when the simulation is reset and release events
// may have been missed.
func (i *Input) Reset(c *arena.Character) {
	if c == nil {
		return
	}
	c.ResetInput(directionHeld)
	for _, d := range arena.Directions {
		i.prevDir[d] = directionHeld(d)
	}
	i.prevAttack = false
	i.prevAbility = false
}

func directionHeld(d arena.Direction) bool {
	switch d {
	case arena.North:
		return ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) ||
			gamepadPressed(ebiten.StandardGamepadButtonLeftTop)
	case arena.East:
		return ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) ||
			gamepadPressed(ebiten.StandardGamepadButtonLeftRight)
	case arena.South:
		return ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) ||
			gamepadPressed(ebiten.StandardGamepadButtonLeftBottom)
	case arena.West:
		return ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) ||
			gamepadPressed(ebiten.StandardGamepadButtonLeftLeft)
	default:
		return false
	}
}

func gamepadPressed(button ebiten.StandardGamepadButton) bool {
	ids := ebiten.GamepadIDs()
	if len(ids) == 0 {
		return false
	}
	return ebiten.IsStandardGamepadButtonPressed(ids[0], button)
}
