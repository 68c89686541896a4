package deal

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("deal not found")
	ErrInvalidStage       = errors.New("unknown stage")
	ErrInvalidTransition  = errors.New("invalid stage transition")
	ErrPreconditionNotMet = errors.New("stage precondition not met")
)

// TransitionError is returned by ValidateTransition. It unwraps to either
// ErrInvalidTransition or ErrPreconditionNotMet so callers can branch with
// errors.Is, and carries a human-readable reason plus an optional machine
// hint for what the caller must do before retrying.
type TransitionError struct {
	From           Stage
	To             Stage
	Reason         string
	RequiresAction string

	kind error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s -> %s: %s", e.From, e.To, e.Reason)
}

func (e *TransitionError) Unwrap() error { return e.kind }

func invalidTransition(from, to Stage) *TransitionError {
	return &TransitionError{
		From:   from,
		To:     to,
		Reason: fmt.Sprintf("cannot transition from %s to %s", from, to),
		kind:   ErrInvalidTransition,
	}
}

func preconditionNotMet(from, to Stage, reason, action string) *TransitionError {
	return &TransitionError{
		From:           from,
		To:             to,
		Reason:         reason,
		RequiresAction: action,
		kind:           ErrPreconditionNotMet,
	}
}
