package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/sentry/common"
	"github.com/milk9111/sentry/ecs/component"
)

// PatrolRouter walks an agent around a fixed, ordered loop of waypoints,
// pausing at each one. An empty loop never issues a destination.
type PatrolRouter struct {
	waypoints []mgl64.Vec3
	nav       Navigator
	timers    Deferrer

	waitTime float64
	stopAt   float64

	state    component.Patrol
	dwellSeq uint64
}

func NewPatrolRouter(waypoints []mgl64.Vec3, nav Navigator, timers Deferrer, waitTime, stopAt float64) *PatrolRouter {
	return &PatrolRouter{
		waypoints: append([]mgl64.Vec3(nil), waypoints...),
		nav:       nav,
		timers:    timers,
		waitTime:  waitTime,
		stopAt:    stopAt,
	}
}

func (p *PatrolRouter) Len() int {
	return len(p.waypoints)
}

// Index is the cursor: the waypoint the next AdvanceToNext will head for.
func (p *PatrolRouter) Index() int {
	return p.state.Index
}

func (p *PatrolRouter) Waiting() bool {
	return p.state.Waiting
}

func (p *PatrolRouter) Waypoints() []mgl64.Vec3 {
	return append([]mgl64.Vec3(nil), p.waypoints...)
}

// AdvanceToNext heads for the waypoint under the cursor, then moves the
// cursor on, wrapping at the end.
func (p *PatrolRouter) AdvanceToNext() {
	if len(p.waypoints) == 0 {
		return
	}
	p.nav.SetDestination(p.waypoints[p.state.Index])
	p.state.Index = (p.state.Index + 1) % len(p.waypoints)
}

// Arrived is true once the path is planned and the agent is within the
// stopping distance of it.
func (p *PatrolRouter) Arrived() bool {
	return !p.nav.PathPending() && p.nav.RemainingDistance() <= p.stopAt
}

// Update starts a dwell on arrival. The agent is halted and a resume is
// scheduled waitTime seconds out; further arrivals are ignored until it
// fires.
func (p *PatrolRouter) Update() {
	if len(p.waypoints) == 0 || p.state.Waiting {
		return
	}
	if !p.Arrived() {
		return
	}

	p.state.Waiting = true
	p.nav.SetStopped(true)
	seq := p.dwellSeq
	p.timers.After(p.waitTime, func() {
		if seq != p.dwellSeq || !p.state.Waiting {
			return
		}
		p.nav.SetStopped(false)
		p.AdvanceToNext()
		p.state.Waiting = false
	})
}

// CancelDwell abandons a dwell in progress; its scheduled resume becomes a
// no-op and the agent is released.
func (p *PatrolRouter) CancelDwell() {
	if !p.state.Waiting {
		return
	}
	p.dwellSeq++
	p.state.Waiting = false
	p.nav.SetStopped(false)
}

// RetargetToNearest points the cursor at the waypoint closest to from and
// heads there at once. Unlike AdvanceToNext the cursor is not moved on.
func (p *PatrolRouter) RetargetToNearest(from mgl64.Vec3) int {
	idx := NearestIndex(p.waypoints, from)
	if idx < 0 {
		return idx
	}
	p.state.Index = idx
	p.nav.SetDestination(p.waypoints[idx])
	return idx
}

// NearestIndex returns the index of the point closest to from, preferring
// the lowest index on ties, or -1 for an empty slice.
func NearestIndex(points []mgl64.Vec3, from mgl64.Vec3) int {
	best := -1
	bestDist := math.Inf(1)
	for i, pt := range points {
		if d := common.Distance(from, pt); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
