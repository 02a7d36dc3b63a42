package system

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/sentry/ecs"
)

type fakeBody struct {
	pos, fwd mgl64.Vec3
}

func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }
func (b *fakeBody) Forward() mgl64.Vec3  { return b.fwd }

type fakeTarget struct {
	ent ecs.Entity
	pos mgl64.Vec3
}

func (t *fakeTarget) Entity() ecs.Entity   { return t.ent }
func (t *fakeTarget) Position() mgl64.Vec3 { return t.pos }

type fakeNav struct {
	destinations []mgl64.Vec3
	pending      bool
	remaining    float64
	velocity     mgl64.Vec3
	stopped      bool
	stopCalls    []bool
}

func (n *fakeNav) SetDestination(p mgl64.Vec3) { n.destinations = append(n.destinations, p) }
func (n *fakeNav) PathPending() bool           { return n.pending }
func (n *fakeNav) RemainingDistance() float64  { return n.remaining }
func (n *fakeNav) Velocity() mgl64.Vec3        { return n.velocity }
func (n *fakeNav) SetStopped(stopped bool) {
	n.stopped = stopped
	n.stopCalls = append(n.stopCalls, stopped)
}

func (n *fakeNav) last() mgl64.Vec3 {
	if len(n.destinations) == 0 {
		return mgl64.Vec3{}
	}
	return n.destinations[len(n.destinations)-1]
}

// fakeRay reports hit/ok for every cast and counts casts.
type fakeRay struct {
	hit   ecs.Entity
	ok    bool
	calls int
}

func (r *fakeRay) Raycast(origin, dir mgl64.Vec3, maxDistance float64) (ecs.Entity, bool) {
	r.calls++
	return r.hit, r.ok
}

type fakeAnim struct {
	values map[string]bool
	sets   int
}

func (a *fakeAnim) SetBool(name string, value bool) {
	if a.values == nil {
		a.values = map[string]bool{}
	}
	a.values[name] = value
	a.sets++
}

type fakeResetter struct {
	calls int
}

func (r *fakeResetter) ResetCurrentLevel() { r.calls++ }

type rig struct {
	body   *fakeBody
	target *fakeTarget
	nav    *fakeNav
	ray    *fakeRay
	anim   *fakeAnim
	reset  *fakeResetter
	timers *ecs.Scheduler
}

func newRig() *rig {
	return &rig{
		body:   &fakeBody{fwd: mgl64.Vec3{0, 0, 1}},
		target: &fakeTarget{ent: ecs.Entity(7), pos: mgl64.Vec3{0, 0, 100}},
		nav:    &fakeNav{pending: true},
		ray:    &fakeRay{},
		anim:   &fakeAnim{},
		reset:  &fakeResetter{},
		timers: ecs.NewScheduler(),
	}
}

func (r *rig) deps() ControllerDeps {
	return ControllerDeps{
		Agent:  r.body,
		Target: r.target,
		Nav:    r.nav,
		Ray:    r.ray,
		Anim:   r.anim,
		Reset:  r.reset,
		Timers: r.timers,
		Logger: log.New(io.Discard),
	}
}

// tick advances deferred tasks then ticks c, the order the world uses.
func (r *rig) tick(c *Controller, dt float64) {
	r.timers.Advance(dt)
	c.Tick(dt)
}
