package usecase

import (
	"context"
	"errors"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrAuthentication        = errors.New("provider authentication failed")
	ErrTimeoutExceeded       = errors.New("pass timeout exceeded")
	ErrNoTournaments         = errors.New("no tournaments configured")
	ErrNothingToAnalyze      = errors.New("nothing to analyze")
)

// IsRetryable reports whether a failed pass may succeed when rerun as is.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrTimeoutExceeded), errors.Is(err, ErrDependencyUnavailable):
		return true
	default:
		return false
	}
}

// passError maps a context deadline hit during a pass to ErrTimeoutExceeded.
func passError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrTimeoutExceeded) {
		return errors.Join(ErrTimeoutExceeded, err)
	}
	return err
}
