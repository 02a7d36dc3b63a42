package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/sentry/ecs/system"
)

// Player is the drawable side of the target the guard hunts.
type Player struct {
	body   *system.TargetBody
	radius float64
	color  color.Color
}

func (p *Player) Draw(screen *ebiten.Image, cam camera) {
	pos := cam.project(p.body.Position())
	vector.FillCircle(screen, pos[0], pos[1], cam.length(p.radius), p.color, true)
}
