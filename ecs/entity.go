package ecs

import "strconv"

// Entity is a generational handle: the low 32 bits hold the slot id (1-based,
// so the zero Entity is never alive) and the high 32 bits hold the slot's
// generation. Destroying an entity bumps its slot generation, so stale
// handles kept by systems or physics shapes stop matching.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint64(e) >> entityIDBits)
}

// String prints the handle as id:generation, which is what shows up in the
// guard's log lines.
func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + ":" + strconv.FormatUint(uint64(e.generation()), 10)
}

// Valid reports whether e could name an entity at all. Liveness is the
// world's call; see World.IsAlive.
func (e Entity) Valid() bool {
	return e.id() != 0
}
