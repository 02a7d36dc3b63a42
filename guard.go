package main

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/sentry/ecs/component"
	"github.com/milk9111/sentry/ecs/system"
)

type Guard struct {
	agent     *system.NavAgent
	cfg       component.AI
	radius    float64
	color     color.Color
	coneColor color.Color
}

func (g *Guard) Draw(screen *ebiten.Image, cam camera, debug bool) {
	pos := g.agent.Position()
	p := cam.project(pos)

	g.drawCone(screen, cam, pos)

	if debug {
		prev := p
		for _, corner := range g.agent.Path() {
			c := cam.project(corner)
			vector.StrokeLine(screen, prev[0], prev[1], c[0], c[1], 1, colornames.Lightgreen, true)
			prev = c
		}
		vector.StrokeCircle(screen, p[0], p[1], cam.length(g.cfg.DetectionRange), 1, colornames.Gold, true)
		vector.StrokeCircle(screen, p[0], p[1], cam.length(g.cfg.AttackRange), 1, colornames.Orangered, true)
	}

	vector.FillCircle(screen, p[0], p[1], cam.length(g.radius), g.color, true)
	tip := cam.project(pos.Add(g.agent.Forward().Mul(g.radius * 1.6)))
	vector.StrokeLine(screen, p[0], p[1], tip[0], tip[1], 2, colornames.White, true)
}

// drawCone outlines the view cone out to the detection range.
func (g *Guard) drawCone(screen *ebiten.Image, cam camera, pos mgl64.Vec3) {
	const segments = 16

	fwd := g.agent.Forward()
	heading := math.Atan2(fwd.X(), fwd.Z())
	half := mgl64.DegToRad(g.cfg.ViewAngle / 2)
	r := g.cfg.DetectionRange

	origin := cam.project(pos)
	prev := origin
	for i := 0; i <= segments; i++ {
		a := heading - half + 2*half*float64(i)/segments
		pt := cam.project(pos.Add(mgl64.Vec3{math.Sin(a) * r, 0, math.Cos(a) * r}))
		vector.StrokeLine(screen, prev[0], prev[1], pt[0], pt[1], 1, g.coneColor, true)
		prev = pt
	}
	vector.StrokeLine(screen, prev[0], prev[1], origin[0], origin[1], 1, g.coneColor, true)
}
