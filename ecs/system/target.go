package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/sentry/common"
	"github.com/milk9111/sentry/ecs"
	"github.com/milk9111/sentry/ecs/component"
)

// TargetBody is the player-controlled actor the guard watches for.
type TargetBody struct {
	entity   ecs.Entity
	position mgl64.Vec3
	speed    float64
}

func NewTargetBody(e ecs.Entity, pos mgl64.Vec3, speed float64) *TargetBody {
	return &TargetBody{entity: e, position: pos, speed: speed}
}

func (t *TargetBody) Entity() ecs.Entity {
	return t.entity
}

func (t *TargetBody) Position() mgl64.Vec3 {
	return t.position
}

func (t *TargetBody) SetPosition(p mgl64.Vec3) {
	t.position = p
}

// TargetControlSystem moves the target from input, sliding along blocked
// cells of the nav grid instead of entering them.
type TargetControlSystem struct {
	body  *TargetBody
	input *component.Input
	grid  *NavGrid
}

func NewTargetControlSystem(body *TargetBody, input *component.Input, grid *NavGrid) *TargetControlSystem {
	return &TargetControlSystem{body: body, input: input, grid: grid}
}

func (s *TargetControlSystem) Update(w *ecs.World) {
	if w == nil || s.body == nil || s.input == nil {
		return
	}
	dir, ok := common.SafeNormalize(mgl64.Vec3{s.input.MoveX, 0, s.input.MoveZ})
	if !ok {
		return
	}
	step := dir.Mul(s.body.speed * w.DeltaTime())
	from := s.body.position

	to := from.Add(step)
	if !s.walkable(to) {
		// try each axis alone
		switch {
		case s.walkable(from.Add(mgl64.Vec3{step.X(), 0, 0})):
			to = from.Add(mgl64.Vec3{step.X(), 0, 0})
		case s.walkable(from.Add(mgl64.Vec3{0, 0, step.Z()})):
			to = from.Add(mgl64.Vec3{0, 0, step.Z()})
		default:
			return
		}
	}
	s.body.position = to

	if pw := w.PhysicsWorld(); pw != nil {
		pw.MoveBody(s.body.entity, to)
	}
}

func (s *TargetControlSystem) walkable(p mgl64.Vec3) bool {
	if s.grid == nil {
		return true
	}
	return s.grid.inside(p) && s.grid.Walkable(p)
}
