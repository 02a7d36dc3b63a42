package system

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/sentry/common"
	"github.com/milk9111/sentry/ecs"
)

// Perception answers whether an observer can see a single target: the
// target must sit inside the view cone and be the first thing a ray toward
// it strikes.
type Perception struct {
	// ViewAngle is the full cone width in degrees.
	ViewAngle float64
	Ray       Raycaster
}

// CanSee is Facing AND LineOfSight.
func (p Perception) CanSee(origin, forward, targetPos mgl64.Vec3, target ecs.Entity) bool {
	return p.Facing(forward, targetPos.Sub(origin)) && p.LineOfSight(origin, targetPos, target)
}

// Facing reports whether toTarget lies within ViewAngle/2 of forward. A
// target on top of the observer is always faced; an observer with no
// forward direction only faces anything with a full 360 degree cone.
func (p Perception) Facing(forward, toTarget mgl64.Vec3) bool {
	dir, ok := common.SafeNormalize(toTarget)
	if !ok {
		return true
	}
	fwd, ok := common.SafeNormalize(forward)
	if !ok {
		return p.ViewAngle >= 360
	}
	return common.AngleBetween(fwd, dir) <= p.ViewAngle/2
}

// LineOfSight casts a ray from origin toward targetPos, exactly as long as
// the ground-plane gap between them. Nothing hit means nothing is in the way.
func (p Perception) LineOfSight(origin, targetPos mgl64.Vec3, target ecs.Entity) bool {
	delta := common.Flatten(targetPos.Sub(origin))
	dir, ok := common.SafeNormalize(delta)
	if !ok || p.Ray == nil {
		return true
	}
	hit, ok := p.Ray.Raycast(origin, dir, delta.Len())
	if !ok {
		return true
	}
	return hit == target
}

// CanSeeTarget runs perception from the agent's current pose.
func (c *Controller) CanSeeTarget() bool {
	return c.perception.CanSee(c.agent.Position(), c.agent.Forward(), c.target.Position(), c.target.Entity())
}

// DistanceToTarget is the straight-line distance from agent to target.
func (c *Controller) DistanceToTarget() float64 {
	return common.Distance(c.agent.Position(), c.target.Position())
}

// detectsTarget is the patrol trigger: the cheap range check runs before
// perception.
func (c *Controller) detectsTarget() bool {
	return c.DistanceToTarget() <= c.cfg.DetectionRange && c.CanSeeTarget()
}
