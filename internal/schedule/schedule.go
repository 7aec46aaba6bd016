package schedule

import (
	"sort"
	"time"
)

// Timer is a pending callback in a Queue.
type Timer struct {
	due     time.Time
	fn      func()
	seq     uint64
	stopped bool
	fired   bool
}

// Stop cancels the timer. It returns false if the timer already fired or was stopped.
func (t *Timer) Stop() bool {
	if t == nil || t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// Queue runs delayed callbacks on the goroutine that calls Advance (the render loop).
// It replaces fire-and-forget timers so every callback runs on the same thread as the
// rest of the scene state. Not safe for concurrent use.
type Queue struct {
	now     time.Time
	pending []*Timer
	seq     uint64
}

// NewQueue returns a queue whose clock starts at now.
func NewQueue(now time.Time) *Queue {
	return &Queue{now: now}
}

// After schedules fn to run on the first Advance at or past now+d.
func (q *Queue) After(d time.Duration, fn func()) *Timer {
	q.seq++
	t := &Timer{due: q.now.Add(d), fn: fn, seq: q.seq}
	q.pending = append(q.pending, t)
	return t
}

// Advance moves the clock to now and runs every due, unstopped callback in due order.
// Callbacks may schedule further timers; those run in a later Advance.
func (q *Queue) Advance(now time.Time) {
	if now.After(q.now) {
		q.now = now
	}
	var due, rest []*Timer
	for _, t := range q.pending {
		switch {
		case t.stopped:
		case !t.due.After(q.now):
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	q.pending = rest
	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	for _, t := range due {
		if t.stopped {
			continue
		}
		t.fired = true
		t.fn()
	}
}

// Len returns the number of timers still waiting to fire.
func (q *Queue) Len() int {
	n := 0
	for _, t := range q.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}
