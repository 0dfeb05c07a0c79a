package sim

import (
	"reflect"
	"testing"
	"time"
)

func TestSchedulerOrdering(t *testing.T) {
	s := NewScheduler()
	var order []string
	record := func(name string) func() {
		return func() { order = append(order, name) }
	}

	s.After("c", 30*time.Millisecond, record("c"))
	s.After("a", 10*time.Millisecond, record("a"))
	s.After("b1", 20*time.Millisecond, record("b1"))
	s.After("b2", 20*time.Millisecond, record("b2")) // same due time, scheduled later

	if n := s.Advance(25 * time.Millisecond); n != 3 {
		t.Errorf("Advance() fired %d, want 3", n)
	}
	if want := []string{"a", "b1", "b2"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if s.Now() != 25*time.Millisecond {
		t.Errorf("Now() = %v, want 25ms", s.Now())
	}

	s.Advance(5 * time.Millisecond)
	if len(order) != 4 || order[3] != "c" {
		t.Errorf("order = %v, want c last", order)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after one-shots fired", s.Len())
	}
}

func TestSchedulerPeriodic(t *testing.T) {
	s := NewScheduler()
	ticks, spawns := 0, 0
	s.Every("tick", 16*time.Millisecond, func() { ticks++ })
	s.Every("spawn", 1500*time.Millisecond, func() { spawns++ })

	for i := 0; i < 12; i++ {
		s.Advance(250 * time.Millisecond)
	}

	// 3000ms of virtual time
	if ticks != 187 {
		t.Errorf("ticks = %d, want 187", ticks)
	}
	if spawns != 2 {
		t.Errorf("spawns = %d, want 2", spawns)
	}
}

func TestSchedulerReplaceKey(t *testing.T) {
	s := NewScheduler()
	fired := ""
	s.After("shield", 100*time.Millisecond, func() { fired = "old" })
	s.Advance(60 * time.Millisecond)
	s.After("shield", 100*time.Millisecond, func() { fired = "new" })

	s.Advance(60 * time.Millisecond)
	if fired != "" {
		t.Errorf("replaced timer fired: %q", fired)
	}
	if left, ok := s.Pending("shield"); !ok || left != 40*time.Millisecond {
		t.Errorf("Pending() = %v, %v; want 40ms", left, ok)
	}
	s.Advance(40 * time.Millisecond)
	if fired != "new" {
		t.Errorf("fired = %q, want new", fired)
	}
}

func TestSchedulerCancelDuringAdvance(t *testing.T) {
	s := NewScheduler()
	later := false
	s.After("stop", 10*time.Millisecond, func() { s.CancelAll() })
	s.Every("tick", 20*time.Millisecond, func() { later = true })

	s.Advance(time.Second)
	if later {
		t.Error("timer cancelled by an earlier callback still fired")
	}

	s.Every("tick", 10*time.Millisecond, func() {})
	s.Cancel("tick")
	s.Cancel("missing")
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestSchedulerCallbackReschedules(t *testing.T) {
	s := NewScheduler()
	count := 0
	var arm func()
	arm = func() {
		s.After("chain", 100*time.Millisecond, func() {
			count++
			arm()
		})
	}
	arm()

	s.Advance(450 * time.Millisecond)
	if count != 4 {
		t.Errorf("chained callback ran %d times, want 4", count)
	}
}
