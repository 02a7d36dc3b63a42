package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"

	"github.com/milk9111/sentry/common"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeActor
)

// PhysicsWorld owns the Chipmunk space for a level. The space lies on the
// ground plane: world X maps to cp X and world Z maps to cp Y. Height is
// ignored for collision and line of sight.
type PhysicsWorld struct {
	space *cp.Space

	bodies        map[Entity]*cp.Body
	shapeToEntity map[*cp.Shape]Entity
}

// NewPhysicsWorld creates an empty physics world with no gravity.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	return &PhysicsWorld{
		space:         space,
		bodies:        make(map[Entity]*cp.Body),
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddObstacle adds a static box spanning min..max on the ground plane. The
// entity may be zero for anonymous level geometry.
func (pw *PhysicsWorld) AddObstacle(e Entity, min, max mgl64.Vec3) {
	if pw == nil || pw.space == nil {
		return
	}
	bb := cp.BB{L: min.X(), B: min.Z(), R: max.X(), T: max.Z()}
	if bb.L > bb.R {
		bb.L, bb.R = bb.R, bb.L
	}
	if bb.B > bb.T {
		bb.B, bb.T = bb.T, bb.B
	}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetCollisionType(collisionTypeSolid)
	shape.UserData = e
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e
}

// AddBody creates a kinematic circle for an actor entity. The shape is put in
// its own filter group so rays cast by the same entity pass through it.
func (pw *PhysicsWorld) AddBody(e Entity, pos mgl64.Vec3, radius float64) {
	if pw == nil || pw.space == nil || !e.Valid() {
		return
	}
	if _, ok := pw.bodies[e]; ok {
		pw.MoveBody(e, pos)
		return
	}
	if radius <= 0 {
		radius = 0.5
	}
	body := cp.NewKinematicBody()
	body.SetPosition(toCP(pos))
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetCollisionType(collisionTypeActor)
	shape.SetFilter(cp.NewShapeFilter(uint(e), cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	shape.UserData = e

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.bodies[e] = body
	pw.shapeToEntity[shape] = e
}

// MoveBody teleports an actor body. Its shape is re-indexed on the next Step.
func (pw *PhysicsWorld) MoveBody(e Entity, pos mgl64.Vec3) {
	if pw == nil {
		return
	}
	body, ok := pw.bodies[e]
	if !ok {
		return
	}
	body.SetPosition(toCP(pos))
}

// BodyPosition returns the ground-plane position of an actor body.
func (pw *PhysicsWorld) BodyPosition(e Entity) (mgl64.Vec3, bool) {
	if pw == nil {
		return mgl64.Vec3{}, false
	}
	body, ok := pw.bodies[e]
	if !ok {
		return mgl64.Vec3{}, false
	}
	return fromCP(body.Position()), true
}

// Step advances the space, refreshing the spatial index of moved bodies.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// Raycast returns the first entity struck by a ray from origin along dir,
// up to maxDistance. Shapes owned by ignore are skipped. Anonymous level
// geometry reports the zero entity with ok set.
func (pw *PhysicsWorld) Raycast(ignore Entity, origin, dir mgl64.Vec3, maxDistance float64) (Entity, bool) {
	if pw == nil || pw.space == nil || maxDistance <= 0 {
		return 0, false
	}
	n, ok := common.SafeNormalize(common.Flatten(dir))
	if !ok {
		return 0, false
	}
	start := toCP(origin)
	end := toCP(origin.Add(n.Mul(maxDistance)))

	filter := cp.SHAPE_FILTER_ALL
	if ignore.Valid() {
		filter = cp.NewShapeFilter(uint(ignore), cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
	}
	info := pw.space.SegmentQueryFirst(start, end, 0, filter)
	if info.Shape == nil {
		return 0, false
	}
	return pw.shapeToEntity[info.Shape], true
}

// Caster returns a raycaster bound to one entity, skipping that entity's
// own shapes.
func (pw *PhysicsWorld) Caster(owner Entity) *Caster {
	return &Caster{pw: pw, owner: owner}
}

// Caster casts rays on behalf of a single entity.
type Caster struct {
	pw    *PhysicsWorld
	owner Entity
}

func (c *Caster) Raycast(origin, dir mgl64.Vec3, maxDistance float64) (Entity, bool) {
	if c == nil {
		return 0, false
	}
	return c.pw.Raycast(c.owner, origin, dir, maxDistance)
}

func toCP(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Z()}
}

func fromCP(v cp.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, 0, v.Y}
}
