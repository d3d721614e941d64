package codetool

import (
	"errors"
	"fmt"
)

type Outcome int

const (
	OutcomeOk Outcome = iota
	OutcomeEmpty
	OutcomeInvalid
	OutcomeAccessError
	OutcomeConflict
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOk:
		return "ok"
	case OutcomeEmpty:
		return "empty"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeAccessError:
		return "access_error"
	case OutcomeConflict:
		return "conflict"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidIdentifier  = fmt.Errorf("%w: invalid deal identifier", ErrInvalidInput)
	ErrInvalidQuantity    = fmt.Errorf("%w: quantity out of range", ErrInvalidInput)
	ErrInvalidCode        = fmt.Errorf("%w: empty code", ErrInvalidInput)
	ErrOperatorRequired   = fmt.Errorf("%w: operator required", ErrInvalidInput)
	ErrWipeDisabled       = fmt.Errorf("%w: global wipe is disabled", ErrInvalidInput)
	ErrAccess             = errors.New("store access error")
	ErrNoCodesAvailable   = errors.New("no codes available")
	ErrNoCodesFound       = errors.New("no codes found")
	ErrRaceRetryExhausted = fmt.Errorf("%w: lost every redemption race", ErrNoCodesAvailable)
	ErrCodeNotFound       = errors.New("code not found")
	ErrCodeAlreadyUsed    = errors.New("code already used")
	ErrCodeNotUsed        = errors.New("code is not used")
	ErrCodeStateChanged   = errors.New("code state changed concurrently")
	ErrGenerateInProgress = errors.New("generation already in progress for deal")
)

type Result[T any] struct {
	Outcome Outcome
	Value   T
	Err     error
}

func (r Result[T]) Ok() bool {
	return r.Outcome == OutcomeOk
}

func (r Result[T]) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %s", r.Outcome, r.Err.Error())
	}
	return r.Outcome.String()
}

func ok[T any](v T) Result[T] {
	return Result[T]{Outcome: OutcomeOk, Value: v}
}

func fail[T any](o Outcome, err error) Result[T] {
	return Result[T]{Outcome: o, Err: err}
}
