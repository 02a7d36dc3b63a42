package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerFiresOnceAtExpiry(t *testing.T) {
	s := NewScheduler()
	fired := 0
	s.After(1.0, func() { fired++ })

	for i := 0; i < 9; i++ {
		s.Advance(0.1)
	}
	assert.Equal(t, 0, fired)
	require.Equal(t, 1, s.Pending())

	s.Advance(0.1)
	assert.Equal(t, 1, fired)

	for i := 0; i < 100; i++ {
		s.Advance(0.1)
	}
	assert.Equal(t, 1, fired)
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerFiresOnDeadlineTickAt60Hz(t *testing.T) {
	const dt = 1.0 / 60

	for _, offset := range []int{0, 1, 7, 100, 1000} {
		s := NewScheduler()
		for i := 0; i < offset; i++ {
			s.Advance(dt)
		}

		fired := 0
		s.After(2, func() { fired++ })
		ticks := 0
		for fired == 0 && ticks < 200 {
			s.Advance(dt)
			ticks++
		}
		assert.Equal(t, 120, ticks, "armed after %d ticks", offset)
	}
}

func TestSchedulerOrdering(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.After(2, func() { got = append(got, "late") })
	s.After(1, func() { got = append(got, "first") })
	s.After(1, func() { got = append(got, "second") })

	s.Advance(5)
	assert.Equal(t, []string{"first", "second", "late"}, got)
}

func TestSchedulerNestedTaskDueNow(t *testing.T) {
	s := NewScheduler()
	var got []string
	s.After(1, func() {
		got = append(got, "outer")
		s.After(0, func() { got = append(got, "inner") })
		s.After(1, func() { got = append(got, "later") })
	})

	s.Advance(1)
	assert.Equal(t, []string{"outer", "inner"}, got)
	s.Advance(1)
	assert.Equal(t, []string{"outer", "inner", "later"}, got)
}

func TestSchedulerIgnoresNilAndNegative(t *testing.T) {
	var nilSched *Scheduler
	nilSched.After(1, func() {})
	nilSched.Advance(1)
	assert.Equal(t, 0, nilSched.Pending())

	s := NewScheduler()
	s.After(1, nil)
	assert.Equal(t, 0, s.Pending())

	fired := false
	s.After(-3, func() { fired = true })
	assert.False(t, fired)
	s.Advance(0)
	assert.True(t, fired)
	assert.Equal(t, 0.0, s.Now())
}
