package clock

import (
	"testing"
	"time"
)

func TestAfterFiresOnce(t *testing.T) {
	s := NewScheduler()
	fired := 0
	h := s.After(100*time.Millisecond, func() { fired++ })

	s.Advance(99 * time.Millisecond)
	if fired != 0 {
		t.Error("Timer fired early")
	}
	s.Advance(100 * time.Millisecond)
	s.Advance(time.Second)
	if fired != 1 {
		t.Errorf("Expected 1 firing, got %d", fired)
	}
	if s.Active(h) {
		t.Error("Expired one-shot should not be active")
	}
}

func TestEveryCatchesUp(t *testing.T) {
	s := NewScheduler()
	var at []time.Duration
	s.Every(3*time.Second, func() { at = append(at, s.Now()) })

	s.Advance(10 * time.Second)

	want := []time.Duration{3 * time.Second, 6 * time.Second, 9 * time.Second}
	if len(at) != len(want) {
		t.Fatalf("Expected %v, got %v", want, at)
	}
	for i := range want {
		if at[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, at)
		}
	}
}

func TestDueOrder(t *testing.T) {
	s := NewScheduler()
	var order []int
	s.After(300*time.Millisecond, func() { order = append(order, 3) })
	s.After(100*time.Millisecond, func() { order = append(order, 1) })
	s.After(200*time.Millisecond, func() { order = append(order, 2) })

	s.Advance(time.Second)

	for i, v := range []int{1, 2, 3} {
		if order[i] != v {
			t.Fatalf("Expected due order 1,2,3 got %v", order)
		}
	}
}

func TestCancelFromCallback(t *testing.T) {
	s := NewScheduler()
	fired := 0
	var h Handle
	h = s.Every(time.Second, func() {
		fired++
		if fired == 2 {
			s.Cancel(h)
		}
	})
	s.Advance(10 * time.Second)
	if fired != 2 {
		t.Errorf("Expected self-cancel after 2 firings, got %d", fired)
	}
	if s.Pending() != 0 {
		t.Errorf("Expected no pending timers, got %d", s.Pending())
	}
}

func TestResetInvalidatesHandles(t *testing.T) {
	s := NewScheduler()
	fired := false
	h := s.After(time.Second, func() { fired = true })

	s.Reset()
	s.Advance(5 * time.Second)

	if fired {
		t.Error("Timer fired after Reset")
	}
	if s.Active(h) {
		t.Error("Handle should be stale after Reset")
	}

	// New timers keep working and a stale handle cannot cancel them.
	fresh := false
	s.After(time.Second, func() { fresh = true })
	s.Cancel(h)
	s.Advance(6 * time.Second)
	if !fresh {
		t.Error("Timer scheduled after Reset should fire")
	}
}

func TestCallbackSchedulesRelativeToDueTime(t *testing.T) {
	s := NewScheduler()
	var second time.Duration
	s.After(100*time.Millisecond, func() {
		s.After(100*time.Millisecond, func() { second = s.Now() })
	})
	s.Advance(time.Second)
	if second != 200*time.Millisecond {
		t.Errorf("Expected chained timer at 200ms, got %v", second)
	}
}

func TestAdvanceIgnoresTimeGoingBackwards(t *testing.T) {
	s := NewScheduler()
	s.Advance(time.Second)
	s.Advance(500 * time.Millisecond)
	if s.Now() != time.Second {
		t.Errorf("Expected clock to stay at 1s, got %v", s.Now())
	}
}
