package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/sentry/ecs"
	"github.com/milk9111/sentry/ecs/component"
)

type InputSystem struct {
	input *component.Input
}

func NewInputSystem(input *component.Input) *InputSystem {
	return &InputSystem{input: input}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil || i.input == nil {
		return
	}

	const stickDeadzone = 0.2

	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)
	up := ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	down := ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	resetPressed := inpututil.IsKeyJustPressed(ebiten.KeyR)
	nextPressed := inpututil.IsKeyJustPressed(ebiten.KeyN)
	debugPressed := inpututil.IsKeyJustPressed(ebiten.KeyF1)

	moveX := 0.0
	moveZ := 0.0
	if left {
		moveX -= 1
	}
	if right {
		moveX += 1
	}
	// screen up is +Z
	if up {
		moveZ += 1
	}
	if down {
		moveZ -= 1
	}

	if gamepads := ebiten.GamepadIDs(); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			moveX = lx
			moveZ = -ly
		}
		resetPressed = resetPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
		nextPressed = nextPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
	}

	i.input.MoveX = moveX
	i.input.MoveZ = moveZ
	i.input.ResetPressed = resetPressed
	i.input.NextLevelPressed = nextPressed
	i.input.DebugPressed = debugPressed
}
