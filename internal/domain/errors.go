package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyRoute            = errors.New("carrier route must contain at least one point")
	ErrZeroDurationWindow    = errors.New("time window has zero duration")
	ErrInvalidClock          = errors.New("time must be formatted as HH:MM")
	ErrCoordinateOutOfRange  = errors.New("coordinate out of range")
	ErrNoTrainingExamples    = errors.New("training set is empty")
	ErrSingleClassLabels     = errors.New("training set must contain both successful and failed matches")
	ErrProbabilityOutOfRange = errors.New("classifier returned a probability outside [0, 1]")
	ErrUnknownModelFormat    = errors.New("unknown model format")
)

// FailureKind groups failures for callers that want richer diagnostics than the
// single error message exposed on the wire.
type FailureKind string

const (
	KindValidation FailureKind = "validation"
	KindGeometry   FailureKind = "geometry"
	KindModelIO    FailureKind = "model_io"
	KindTraining   FailureKind = "training"
	KindInternal   FailureKind = "internal"
)

// OperationFailure is the one error type returned by predict and train.
// Error() is the message reported at the outer boundary.
type OperationFailure struct {
	Op   string
	Kind FailureKind
	Err  error
}

func (e *OperationFailure) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s failure", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationFailure) Unwrap() error { return e.Err }

// Fail wraps err as an OperationFailure of the given kind. An error that is
// already an OperationFailure keeps its original kind and op.
func Fail(op string, kind FailureKind, err error) error {
	var f *OperationFailure
	if errors.As(err, &f) {
		return err
	}
	return &OperationFailure{Op: op, Kind: kind, Err: err}
}

// KindOf reports the failure kind of err, or KindInternal for foreign errors.
func KindOf(err error) FailureKind {
	var f *OperationFailure
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindInternal
}

// ClassifyKind maps well-known sentinels to a kind. Used when wrapping errors
// that crossed a boundary without a kind attached.
func ClassifyKind(err error) FailureKind {
	switch {
	case errors.Is(err, ErrEmptyRoute), errors.Is(err, ErrCoordinateOutOfRange):
		return KindGeometry
	case errors.Is(err, ErrZeroDurationWindow), errors.Is(err, ErrInvalidClock):
		return KindValidation
	case errors.Is(err, ErrNoTrainingExamples), errors.Is(err, ErrSingleClassLabels):
		return KindTraining
	case errors.Is(err, ErrProbabilityOutOfRange), errors.Is(err, ErrUnknownModelFormat):
		return KindModelIO
	}
	return KindInternal
}
