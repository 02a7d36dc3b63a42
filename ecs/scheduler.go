package ecs

import (
	"container/heap"

	"github.com/milk9111/sentry/common"
)

// Scheduler runs one-shot tasks at an absolute time on the tick thread.
// Time only moves when Advance is called, so a task never races with the
// systems of the tick that follows it.
type Scheduler struct {
	now   float64
	seq   uint64
	tasks taskQueue
}

type task struct {
	due float64
	seq uint64
	fn  func()
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the scheduler clock in seconds.
func (s *Scheduler) Now() float64 {
	if s == nil {
		return 0
	}
	return s.now
}

// After schedules fn to run once, delay seconds from now. Negative delays
// are treated as zero; the task still waits for the next Advance.
func (s *Scheduler) After(delay float64, fn func()) {
	if s == nil || fn == nil {
		return
	}
	if delay < 0 {
		delay = 0
	}
	s.seq++
	heap.Push(&s.tasks, &task{due: s.now + delay, seq: s.seq, fn: fn})
}

// Advance moves the clock forward by dt seconds and runs every task that has
// come due, earliest first. Tasks sharing a due time run in the order they
// were scheduled.
func (s *Scheduler) Advance(dt float64) {
	if s == nil {
		return
	}
	if dt > 0 {
		s.now += dt
	}
	// summed float ticks land a hair short of an exact deadline
	for s.tasks.Len() > 0 && s.tasks[0].due <= s.now+common.Epsilon {
		t := heap.Pop(&s.tasks).(*task)
		t.fn()
	}
}

// Pending reports how many tasks are still waiting.
func (s *Scheduler) Pending() int {
	if s == nil {
		return 0
	}
	return s.tasks.Len()
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) {
	*q = append(*q, x.(*task))
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
