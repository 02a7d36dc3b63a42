package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			require.Equal(t, c.create, w.EntityCount())
			for _, e := range ents {
				assert.True(t, e.Valid())
				assert.True(t, w.IsAlive(e))
			}
			if c.destroyIndex >= 0 {
				require.True(t, w.DestroyEntity(ents[c.destroyIndex]), "DestroyEntity should return true for alive entity")
				assert.False(t, w.IsAlive(ents[c.destroyIndex]))
				assert.False(t, w.DestroyEntity(ents[c.destroyIndex]), "double destroy must be rejected")
				assert.Equal(t, c.create-1, w.EntityCount())
			}
		})
	}
}

func TestWorldEntityReuseBumpsGeneration(t *testing.T) {
	w := NewWorld()
	first := w.CreateEntity()
	require.True(t, w.DestroyEntity(first))

	second := w.CreateEntity()
	assert.Equal(t, first.id(), second.id())
	assert.NotEqual(t, first, second)
	assert.False(t, w.IsAlive(first))
	assert.True(t, w.IsAlive(second))
	assert.Equal(t, "1:0", first.String())
	assert.Equal(t, "1:1", second.String())
}

func TestEntityHandleBits(t *testing.T) {
	e := makeEntity(5, 3)
	assert.Equal(t, entityID(5), e.id())
	assert.Equal(t, generation(3), e.generation())
	assert.True(t, e.Valid())
	assert.False(t, Entity(0).Valid())
	assert.False(t, makeEntity(0, 2).Valid())
}

type recordingSystem struct {
	name  string
	log   *[]string
	dts   []float64
	onRun func(w *World)
}

func (s *recordingSystem) Update(w *World) {
	*s.log = append(*s.log, s.name)
	s.dts = append(s.dts, w.DeltaTime())
	if s.onRun != nil {
		s.onRun(w)
	}
}

func TestWorldUpdateOrder(t *testing.T) {
	var order []string
	w := NewWorld()
	w.AddSystem(nil)
	a := &recordingSystem{name: "a", log: &order}
	b := &recordingSystem{name: "b", log: &order}
	w.AddSystem(a)
	w.AddSystem(b)

	w.Scheduler().After(0.5, func() { order = append(order, "task") })

	w.Update(0.25)
	w.Update(0.25)

	assert.Equal(t, []string{"a", "b", "task", "a", "b"}, order)
	assert.Equal(t, []float64{0.25, 0.25}, a.dts)
	assert.InDelta(t, 0.5, w.Elapsed(), 1e-12)
}

func TestWorldEventsLiveForOneTick(t *testing.T) {
	var order []string
	w := NewWorld()
	emit := true
	w.AddSystem(&recordingSystem{name: "emit", log: &order, onRun: func(w *World) {
		if emit {
			w.Events().Push(Event{Type: EventAIStateChanged})
		}
	}})

	w.Update(0.1)
	require.Equal(t, 1, w.Events().Len())

	emit = false
	w.Update(0.1)
	assert.Nil(t, w.Events().Drain())
}
