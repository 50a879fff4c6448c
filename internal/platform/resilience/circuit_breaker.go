package resilience

import (
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var ErrCircuitOpen = crerr.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc observes breaker transitions. It runs outside the lock.
type StateChangeFunc func(name string, from, to CircuitState)

// CircuitBreaker guards one provider API. Only transient failures should be
// recorded; validation problems in a payload never trip it.
type CircuitBreaker struct {
	mu sync.Mutex

	name     string
	cfg      CircuitBreakerConfig
	onChange StateChangeFunc
	now      func() time.Time

	state    CircuitState
	failures int
	openedAt time.Time
	// half-open bookkeeping
	probes    int
	successes int
}

func NewCircuitBreaker(name string, cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		name:     name,
		cfg:      cfg.withDefaults(),
		onChange: cfg.OnStateChange,
		now:      time.Now,
		state:    CircuitStateClosed,
	}
}

func (b *CircuitBreaker) Name() string {
	return b.name
}

// Allow reports whether a call may proceed. A nil breaker always allows.
func (b *CircuitBreaker) Allow() error {
	if b == nil {
		return nil
	}

	b.mu.Lock()
	var notify func()
	if b.state == CircuitStateOpen && b.cooledDown() {
		notify = b.transition(CircuitStateHalfOpen)
	}
	err := b.admit()
	b.mu.Unlock()

	if notify != nil {
		notify()
	}
	return err
}

func (b *CircuitBreaker) admit() error {
	switch b.state {
	case CircuitStateOpen:
		return crerr.Wrapf(ErrCircuitOpen, "%s", b.name)
	case CircuitStateHalfOpen:
		if b.probes >= b.cfg.HalfOpenMaxReq {
			return crerr.Wrapf(ErrCircuitOpen, "%s half-open probes exhausted", b.name)
		}
		b.probes++
	}
	return nil
}

// Record settles a call allowed by Allow: failure when transient is true.
func (b *CircuitBreaker) Record(transient bool) {
	if transient {
		b.RecordFailure()
		return
	}
	b.RecordSuccess()
}

func (b *CircuitBreaker) RecordSuccess() {
	b.settle(func() func() {
		switch b.state {
		case CircuitStateClosed:
			b.failures = 0
		case CircuitStateHalfOpen:
			if b.probes > 0 {
				b.probes--
			}
			b.successes++
			if b.successes >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
				return b.transition(CircuitStateClosed)
			}
		}
		return nil
	})
}

func (b *CircuitBreaker) RecordFailure() {
	b.settle(func() func() {
		switch b.state {
		case CircuitStateClosed:
			b.failures++
			if b.failures >= b.cfg.FailureThreshold {
				return b.transition(CircuitStateOpen)
			}
		case CircuitStateHalfOpen:
			return b.transition(CircuitStateOpen)
		case CircuitStateOpen:
			b.openedAt = b.now()
		}
		return nil
	})
}

// settle runs update under the lock and fires its notification afterwards.
func (b *CircuitBreaker) settle(update func() func()) {
	if b == nil {
		return
	}
	b.mu.Lock()
	notify := update()
	b.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// State reports an expired open breaker as half-open.
func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.cooledDown() {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) cooledDown() bool {
	return b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout
}

// transition moves to state, clears counters and returns the pending hook
// call, if any. Callers hold the lock.
func (b *CircuitBreaker) transition(to CircuitState) func() {
	from := b.state
	b.state = to
	b.failures, b.probes, b.successes = 0, 0, 0
	switch to {
	case CircuitStateOpen:
		b.openedAt = b.now()
	case CircuitStateClosed:
		b.openedAt = time.Time{}
	}

	if b.onChange == nil || from == to {
		return nil
	}
	hook, name := b.onChange, b.name
	return func() { hook(name, from, to) }
}
