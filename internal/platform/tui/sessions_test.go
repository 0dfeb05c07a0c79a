package tui

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSessionRegistryLimit(t *testing.T) {
	r := NewSessionRegistry(2)

	if err := r.Register("a", SessionInfo{Pilot: "ana"}); err != nil {
		t.Fatalf("Register(a) failed: %v", err)
	}
	if err := r.Register("b", SessionInfo{Pilot: "bo"}); err != nil {
		t.Fatalf("Register(b) failed: %v", err)
	}
	if err := r.Register("c", SessionInfo{Pilot: "cy"}); !errors.Is(err, ErrServerFull) {
		t.Errorf("Register(c) = %v, want ErrServerFull", err)
	}
	// Re-registering a known session is not a new slot
	if err := r.Register("a", SessionInfo{Pilot: "ana", Remote: "1.2.3.4"}); err != nil {
		t.Errorf("re-Register(a) failed: %v", err)
	}

	r.Unregister("b")
	if err := r.Register("c", SessionInfo{Pilot: "cy"}); err != nil {
		t.Errorf("Register(c) after a slot freed failed: %v", err)
	}
	if got := r.Count(); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
}

func TestSessionRegistryPilots(t *testing.T) {
	r := NewSessionRegistry(0)
	now := time.Now()
	for i, p := range []string{"cy", "ana", "cy", "bo"} {
		if err := r.Register(SessionID(fmt.Sprint(i)), SessionInfo{Pilot: p, Started: now}); err != nil {
			t.Fatalf("Register() failed: %v", err)
		}
	}

	if r.Count() != 4 {
		t.Errorf("Count() = %d, want 4", r.Count())
	}
	got := r.Pilots()
	want := []string{"ana", "bo", "cy"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Pilots() = %v, want %v", got, want)
	}
}

func TestSessionRegistryConcurrent(t *testing.T) {
	r := NewSessionRegistry(0)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := SessionID(fmt.Sprint(i))
			r.Register(id, SessionInfo{Pilot: "p"})
			r.Count()
			r.Unregister(id)
		}()
	}
	wg.Wait()
	if r.Count() != 0 {
		t.Errorf("Count() = %d after every session left", r.Count())
	}
}
