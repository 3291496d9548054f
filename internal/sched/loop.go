// Package sched is a single-threaded cooperative scheduler. Callbacks never
// run concurrently: the host drives the loop by calling RunUntil from one
// goroutine (the Bubble Tea update loop) and every task runs to completion
// before the next one starts.
package sched

import (
	"container/heap"
	"time"
)

// Task is a scheduled callback. A non-nil error aborts the current run and
// is returned to whoever is driving the loop.
type Task func(now time.Time) error

// Handle identifies a scheduled task for cancellation. The zero Handle is
// never issued, so it can be used as "nothing scheduled".
type Handle uint64

// Scheduler is the subset of Loop the game code depends on.
type Scheduler interface {
	Now() time.Time
	NextFrame(t Task) Handle
	After(d time.Duration, t Task) Handle
	Every(d time.Duration, t Task) Handle
	Cancel(h Handle)
}

// DefaultFrameInterval is the animation frame cadence used when none is given.
const DefaultFrameInterval = time.Second / 120

type entry struct {
	id        Handle
	due       time.Time
	seq       uint64
	period    time.Duration
	task      Task
	cancelled bool
}

type taskHeap []*entry

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].due.Equal(h[j].due) {
		return h[i].seq < h[j].seq
	}
	return h[i].due.Before(h[j].due)
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(*entry))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Loop is a cooperative scheduler with virtual time. Time only moves when
// the host calls RunUntil or Advance.
type Loop struct {
	now    time.Time
	frame  time.Duration
	nextID Handle
	seq    uint64
	queue  taskHeap
	live   map[Handle]*entry
}

// New creates a loop whose clock starts at start. frame is the spacing of
// NextFrame callbacks; non-positive values use DefaultFrameInterval.
func New(start time.Time, frame time.Duration) *Loop {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return &Loop{
		now:   start,
		frame: frame,
		live:  make(map[Handle]*entry),
	}
}

// Now returns the loop's current time.
func (l *Loop) Now() time.Time {
	return l.now
}

// FrameInterval returns the NextFrame spacing.
func (l *Loop) FrameInterval() time.Duration {
	return l.frame
}

// Pending returns the number of tasks still scheduled.
func (l *Loop) Pending() int {
	return len(l.live)
}

// NextFrame schedules t once, one frame interval from now.
func (l *Loop) NextFrame(t Task) Handle {
	return l.schedule(l.frame, 0, t)
}

// After schedules t once, d from now.
func (l *Loop) After(d time.Duration, t Task) Handle {
	return l.schedule(d, 0, t)
}

// Every schedules t every d, starting d from now. Periods missed while the
// host was not pumping are dropped rather than replayed.
func (l *Loop) Every(d time.Duration, t Task) Handle {
	if d <= 0 {
		d = l.frame
	}
	return l.schedule(d, d, t)
}

// Cancel removes a scheduled task. Unknown or already finished handles are
// ignored.
func (l *Loop) Cancel(h Handle) {
	if e, ok := l.live[h]; ok {
		e.cancelled = true
		delete(l.live, h)
	}
}

func (l *Loop) schedule(d, period time.Duration, t Task) Handle {
	if d < 0 {
		d = 0
	}
	l.nextID++
	l.seq++
	e := &entry{
		id:     l.nextID,
		due:    l.now.Add(d),
		seq:    l.seq,
		period: period,
		task:   t,
	}
	heap.Push(&l.queue, e)
	l.live[e.id] = e
	return e.id
}

// RunUntil runs every task due at or before t, all observing t as the
// current time. Tasks scheduled while the run is in progress wait for the
// next call, even when already due, so a self-re-arming chain advances at
// most one link per call. The first task error stops the run and is
// returned; tasks not yet run stay queued.
func (l *Loop) RunUntil(t time.Time) error {
	if t.After(l.now) {
		l.now = t
	}
	barrier := l.seq

	for l.queue.Len() > 0 {
		e := l.queue[0]
		if e.due.After(l.now) || e.seq > barrier {
			break
		}
		heap.Pop(&l.queue)
		if e.cancelled {
			continue
		}

		if e.period > 0 {
			next := e.due.Add(e.period)
			if !next.After(l.now) {
				next = l.now.Add(e.period)
			}
			e.due = next
			l.seq++
			e.seq = l.seq
			heap.Push(&l.queue, e)
		} else {
			delete(l.live, e.id)
		}

		if err := e.task(l.now); err != nil {
			return err
		}
	}
	return nil
}

// Advance moves virtual time forward by d, stopping at every due time on
// the way so each task observes its own due time. Used by tests and
// headless runs.
func (l *Loop) Advance(d time.Duration) error {
	target := l.now.Add(d)
	for {
		next, ok := l.nextDue()
		if !ok || next.After(target) {
			break
		}
		if err := l.RunUntil(next); err != nil {
			return err
		}
	}
	l.now = target
	return nil
}

func (l *Loop) nextDue() (time.Time, bool) {
	for l.queue.Len() > 0 {
		e := l.queue[0]
		if !e.cancelled {
			return e.due, true
		}
		heap.Pop(&l.queue)
	}
	return time.Time{}, false
}
