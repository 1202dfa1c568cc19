// Package clock schedules callbacks against frame time. Nothing runs on its own
// goroutine: due callbacks fire inside Advance, on the caller's goroutine.
package clock

import (
	"sort"
	"time"
)

// Handle identifies a scheduled timer. The zero Handle is never valid.
type Handle struct {
	id  uint64
	gen uint64
}

type timer struct {
	handle   Handle
	due      time.Duration
	interval time.Duration // zero for one-shot timers
	fn       func()
}

// Scheduler holds one-shot and repeating timers. Reset invalidates every handle
// it has issued, so a callback captured before a teardown can never fire after it.
type Scheduler struct {
	now    time.Duration
	gen    uint64
	nextID uint64
	timers map[uint64]*timer
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		gen:    1,
		timers: make(map[uint64]*timer),
	}
}

// Now returns the time of the latest Advance.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once, d after the current time.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	return s.add(d, 0, fn)
}

// Every runs fn each interval, starting one interval from now.
func (s *Scheduler) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return s.add(interval, interval, fn)
}

func (s *Scheduler) add(d, interval time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	s.nextID++
	h := Handle{id: s.nextID, gen: s.gen}
	s.timers[h.id] = &timer{handle: h, due: s.now + d, interval: interval, fn: fn}
	return h
}

// Cancel stops the timer. Cancelling an expired, cancelled or stale handle is a no-op.
func (s *Scheduler) Cancel(h Handle) {
	if t, ok := s.timers[h.id]; ok && t.handle == h {
		delete(s.timers, h.id)
	}
}

// Active reports whether h still refers to a pending timer.
func (s *Scheduler) Active(h Handle) bool {
	t, ok := s.timers[h.id]
	return ok && t.handle == h
}

func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Reset cancels everything and bumps the generation.
func (s *Scheduler) Reset() {
	s.timers = make(map[uint64]*timer)
	s.gen++
}

// Advance moves time to now and fires every timer that came due, in due order.
// A repeating timer that fell several intervals behind fires once per missed
// interval. Callbacks may schedule or cancel timers; new timers due at or
// before now fire in the same Advance.
func (s *Scheduler) Advance(now time.Duration) {
	if now < s.now {
		return
	}
	for {
		t := s.nextDue(now)
		if t == nil {
			break
		}
		s.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			delete(s.timers, t.handle.id)
		}
		t.fn()
	}
	s.now = now
}

func (s *Scheduler) nextDue(now time.Duration) *timer {
	var due []*timer
	for _, t := range s.timers {
		if t.due <= now {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].handle.id < due[j].handle.id
	})
	return due[0]
}
