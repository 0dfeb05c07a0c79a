package sim

import "time"

// TimerKey names a scheduled callback. Scheduling a key that is already
// pending replaces it, so effects re-arm instead of stacking.
type TimerKey string

const (
	timerTick            TimerKey = "tick"
	timerHazardSpawn     TimerKey = "hazard-spawn"
	timerPickupSpawn     TimerKey = "pickup-spawn"
	timerInvulnerability TimerKey = "invulnerability"
	timerShield          TimerKey = "shield"
	timerSlow            TimerKey = "slow"
)

type timer struct {
	key    TimerKey
	due    time.Duration
	period time.Duration // Zero for one-shot timers
	seq    uint64
	fn     func()
}

// Scheduler runs periodic and one-shot callbacks against a virtual clock.
// Nothing fires until Advance is called; callbacks run one at a time, in due
// order, with ties broken by the order they were scheduled.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers map[TimerKey]*timer
}

// NewScheduler creates an empty scheduler at virtual time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[TimerKey]*timer)}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Every schedules fn to run each period, first at now+period.
func (s *Scheduler) Every(key TimerKey, period time.Duration, fn func()) {
	if period <= 0 {
		return
	}
	s.put(&timer{key: key, due: s.now + period, period: period, fn: fn})
}

// After schedules fn to run once, delay from now.
func (s *Scheduler) After(key TimerKey, delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	s.put(&timer{key: key, due: s.now + delay, fn: fn})
}

func (s *Scheduler) put(t *timer) {
	s.seq++
	t.seq = s.seq
	s.timers[t.key] = t
}

// Cancel removes a pending timer. Cancelling an unknown key is a no-op.
func (s *Scheduler) Cancel(key TimerKey) {
	delete(s.timers, key)
}

// CancelAll removes every pending timer.
func (s *Scheduler) CancelAll() {
	clear(s.timers)
}

// Pending reports how long until key next fires.
func (s *Scheduler) Pending(key TimerKey) (time.Duration, bool) {
	t, ok := s.timers[key]
	if !ok {
		return 0, false
	}
	return t.due - s.now, true
}

// Len returns the number of pending timers.
func (s *Scheduler) Len() int {
	return len(s.timers)
}

// Advance moves virtual time forward by dt, running every callback that
// comes due. Callbacks may schedule or cancel timers; a timer cancelled by an
// earlier callback in the same Advance does not fire. Returns the number of
// callbacks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	fired := 0

	for {
		t := s.next(target)
		if t == nil {
			break
		}
		s.now = t.due
		if t.period > 0 {
			t.due += t.period
			s.seq++
			t.seq = s.seq
		} else {
			delete(s.timers, t.key)
		}
		t.fn()
		fired++
	}

	s.now = target
	return fired
}

// next returns the earliest timer due at or before target.
func (s *Scheduler) next(target time.Duration) *timer {
	var best *timer
	for _, t := range s.timers {
		if t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}
