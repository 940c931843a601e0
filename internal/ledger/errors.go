package ledger

import (
	"errors"

	"github.com/lib/pq"
)

// The five error classes of spec.md §7. Callers outside this package
// should compare with errors.Is against these sentinels, never against
// the wrapped message.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrIdempotencyConflict = errors.New("idempotency conflict")
	ErrTransient         = errors.New("transient failure")
	ErrInternal          = errors.New("internal error")
)

// classifyPGError maps a lock/statement timeout, deadlock, or
// serialization failure raised by the store into ErrTransient, per
// spec.md §5 ("Cancellation & timeouts") and §7. A unique violation
// (23505) is wrapped as ErrIdempotencyConflict. Anything else is
// wrapped as ErrInternal: an invariant the engine did not expect to
// see broken.
func classifyPGError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", // serialization_failure
			"40P01", // deadlock_detected
			"55P03", // lock_not_available
			"57014": // query_canceled (statement_timeout)
			return joinf(ErrTransient, err)
		case "23505": // unique_violation: lost the idempotency-key race after the gate
			return joinf(ErrIdempotencyConflict, err)
		}
	}
	return joinf(ErrInternal, err)
}

func joinf(sentinel, cause error) error {
	return &classifiedError{sentinel: sentinel, cause: cause}
}

type classifiedError struct {
	sentinel error
	cause    error
}

func (e *classifiedError) Error() string {
	return e.sentinel.Error() + ": " + e.cause.Error()
}

func (e *classifiedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *classifiedError) Unwrap() error {
	return e.cause
}
