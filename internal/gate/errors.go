package gate

import "errors"

// ErrCancelled is returned by a gated operation once the run's cancellation
// token is set. Callers treat it as normal termination.
var ErrCancelled = errors.New("gate: run cancelled")

// IsCancelled reports whether err is, or wraps, ErrCancelled.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
