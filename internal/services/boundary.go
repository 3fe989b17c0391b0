package services

import (
	"carrier-match-service/internal/domain"
	"fmt"
)

// RunOperation is the failure boundary for predict and train.
//
// Errors returned by fn come back as *domain.OperationFailure (kind inferred
// from known sentinels when fn did not attach one) and a panic inside fn is
// recovered into an internal failure instead of crashing the process.
func RunOperation(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.OperationFailure{Op: op, Kind: domain.KindInternal, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := fn(); err != nil {
		return domain.Fail(op, domain.ClassifyKind(err), err)
	}
	return nil
}
