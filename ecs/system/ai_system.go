package system

import (
	"github.com/google/uuid"

	"github.com/milk9111/sentry/ecs"
	"github.com/milk9111/sentry/ecs/component"
)

// AIStateChange is the payload of ecs.EventAIStateChanged.
type AIStateChange struct {
	Entity ecs.Entity
	RunID  uuid.UUID
	From   component.StateID
	To     component.StateID
}

// AISystem ticks one guard controller per world update and reports state
// changes on the world's event queue.
type AISystem struct {
	entity     ecs.Entity
	controller *Controller
}

func NewAISystem(e ecs.Entity, c *Controller) *AISystem {
	return &AISystem{entity: e, controller: c}
}

func (s *AISystem) Controller() *Controller {
	return s.controller
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil || s.controller == nil {
		return
	}
	if !w.IsAlive(s.entity) {
		return
	}

	before := s.controller.State()
	s.controller.Tick(w.DeltaTime())
	after := s.controller.State()
	if before == after {
		return
	}

	w.Events().Push(ecs.Event{
		Type: ecs.EventAIStateChanged,
		Data: AIStateChange{
			Entity: s.entity,
			RunID:  s.controller.RunID(),
			From:   before,
			To:     after,
		},
	})
}
