package errors

import "errors"

// TransientError marks an infrastructure failure worth retrying:
// deadlocks, lock timeouts, serialization failures. The ledger store
// adapter decides what is transient; the executor only asks
// IsTransient, so vendor error codes never leak into the engine.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// Transient wraps err as retryable.
func Transient(err error) error {
	return &TransientError{Err: err}
}

func IsTransient(err error) bool {
	var t *TransientError
	return errors.As(err, &t)
}
