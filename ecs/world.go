package ecs

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// World owns entities, system order, the deferred task scheduler and the
// physics space for one loaded level.
type World struct {
	entities  entityStore
	systems   []System
	events    EventQueue
	scheduler *Scheduler

	dt      float64
	elapsed float64

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{scheduler: NewScheduler()}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity marks an entity as dead. It reports whether the handle was
// alive.
func (w *World) DestroyEntity(e Entity) bool {
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.entities.count()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs one tick of dt seconds. Events from the previous tick are
// dropped, due deferred tasks fire, then systems run in order.
func (w *World) Update(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.events.flush()
	w.dt = dt
	w.elapsed += dt
	w.Scheduler().Advance(dt)
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
	if w.physicsWorld != nil {
		w.physicsWorld.Step(dt)
	}
}

// DeltaTime returns the length of the tick being processed.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Elapsed returns the total simulated time.
func (w *World) Elapsed() float64 {
	if w == nil {
		return 0
	}
	return w.elapsed
}

// Scheduler returns the deferred task scheduler.
func (w *World) Scheduler() *Scheduler {
	if w == nil {
		return nil
	}
	if w.scheduler == nil {
		w.scheduler = NewScheduler()
	}
	return w.scheduler
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}
