package resilience

import "time"

// Breaker defaults applied to unset CircuitBreakerConfig fields.
const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 30 * time.Second
	defaultHalfOpenMaxReq   = 1
)

// CircuitBreakerConfig tunes the breaker in front of one provider API.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
	// OnStateChange, when set, is called after every transition.
	OnStateChange StateChangeFunc
}

func (c CircuitBreakerConfig) withDefaults() CircuitBreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaultFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultOpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaultHalfOpenMaxReq
	}
	return c
}

// Build returns the breaker for name, or nil when the breaker is disabled.
// A nil *CircuitBreaker allows every call.
func (c CircuitBreakerConfig) Build(name string) *CircuitBreaker {
	if !c.Enabled {
		return nil
	}
	return NewCircuitBreaker(name, c)
}
