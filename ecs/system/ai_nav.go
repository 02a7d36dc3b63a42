package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/sentry/common"
	"github.com/milk9111/sentry/ecs"
)

// NavAgent moves one actor across a NavGrid. A destination request is
// planned lazily on the next Step, so PathPending stays true for the rest of
// the tick it was issued in.
type NavAgent struct {
	grid  *NavGrid
	speed float64

	position mgl64.Vec3
	forward  mgl64.Vec3
	velocity mgl64.Vec3

	destination mgl64.Vec3
	hasDest     bool
	pending     bool
	stopped     bool
	path        []mgl64.Vec3
}

// NewNavAgent places an agent at pos facing forward. A zero forward faces +Z.
func NewNavAgent(grid *NavGrid, pos, forward mgl64.Vec3, speed float64) *NavAgent {
	f, ok := common.SafeNormalize(common.Flatten(forward))
	if !ok {
		f = mgl64.Vec3{0, 0, 1}
	}
	return &NavAgent{
		grid:     grid,
		speed:    speed,
		position: pos,
		forward:  f,
	}
}

func (a *NavAgent) SetDestination(p mgl64.Vec3) {
	a.destination = p
	a.hasDest = true
	a.pending = true
}

func (a *NavAgent) PathPending() bool {
	return a.pending
}

// RemainingDistance is the length of the path still to walk. It is
// meaningless while a path is pending and reports +Inf then.
func (a *NavAgent) RemainingDistance() float64 {
	if !a.hasDest {
		return 0
	}
	if a.pending {
		return math.Inf(1)
	}
	total := 0.0
	prev := a.position
	for _, p := range a.path {
		total += common.Distance(common.Flatten(prev), common.Flatten(p))
		prev = p
	}
	return total
}

func (a *NavAgent) Velocity() mgl64.Vec3 {
	return a.velocity
}

func (a *NavAgent) SetStopped(stopped bool) {
	a.stopped = stopped
	if stopped {
		a.velocity = mgl64.Vec3{}
	}
}

func (a *NavAgent) Stopped() bool {
	return a.stopped
}

func (a *NavAgent) Position() mgl64.Vec3 {
	return a.position
}

// Forward is the heading of the last movement.
func (a *NavAgent) Forward() mgl64.Vec3 {
	return a.forward
}

// Destination returns the last requested destination.
func (a *NavAgent) Destination() (mgl64.Vec3, bool) {
	return a.destination, a.hasDest
}

// Path returns the corners still ahead of the agent.
func (a *NavAgent) Path() []mgl64.Vec3 {
	return a.path
}

// Warp teleports the agent and drops its current path.
func (a *NavAgent) Warp(p mgl64.Vec3) {
	a.position = p
	a.path = nil
	a.velocity = mgl64.Vec3{}
	if a.hasDest {
		a.pending = true
	}
}

// Step plans any pending destination and advances along the path.
func (a *NavAgent) Step(dt float64) {
	if a.pending {
		a.plan()
	}
	if a.stopped || dt <= 0 || len(a.path) == 0 {
		a.velocity = mgl64.Vec3{}
		return
	}

	prev := a.position
	budget := a.speed * dt
	for budget > 0 && len(a.path) > 0 {
		next := a.path[0]
		delta := common.Flatten(next.Sub(a.position))
		dist := delta.Len()
		if dist <= budget {
			a.position = mgl64.Vec3{next.X(), a.position.Y(), next.Z()}
			a.path = a.path[1:]
			budget -= dist
			continue
		}
		a.position = a.position.Add(delta.Mul(budget / dist))
		budget = 0
	}

	a.velocity = a.position.Sub(prev).Mul(1 / dt)
	if f, ok := common.SafeNormalize(common.Flatten(a.velocity)); ok {
		a.forward = f
	}
}

func (a *NavAgent) plan() {
	a.pending = false
	if path, ok := a.grid.FindPath(a.position, a.destination); ok {
		a.path = path
		return
	}
	// unreachable or off-grid goal: head straight for it
	a.path = []mgl64.Vec3{a.destination}
}

// NavigationSystem steps every registered agent once per tick and mirrors
// its position into the physics world.
type NavigationSystem struct {
	agents   []*NavAgent
	entities []ecs.Entity
}

func NewNavigationSystem() *NavigationSystem {
	return &NavigationSystem{}
}

// Add registers an agent owned by entity e.
func (s *NavigationSystem) Add(e ecs.Entity, agent *NavAgent) {
	if agent == nil {
		return
	}
	s.agents = append(s.agents, agent)
	s.entities = append(s.entities, e)
}

func (s *NavigationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()
	for i, agent := range s.agents {
		agent.Step(w.DeltaTime())
		if pw != nil {
			pw.MoveBody(s.entities[i], agent.Position())
		}
	}
}
