package repository

import (
	"context"
	"errors"

	"github.com/lib/pq"

	apperrors "banking-service/internal/core/errors"
)

// Postgres error codes of the lock/deadlock/timeout class.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// classify tags transient infrastructure errors so the executor can
// retry them without ever looking at vendor error codes itself.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
			return apperrors.Transient(err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Transient(err)
	}

	return err
}
