package usecases

import (
	"errors"
	"fmt"
	"strings"

	"dcops-server/internal/workorder/domain"
)

// maxReportedIdentifiers caps how many missing identifiers a NotFoundError
// carries. Anything beyond the cap is summarized with an ellipsis.
const maxReportedIdentifiers = 10

var (
	ErrWorkOrderNotFound = errors.New("work order not found")
	errUnknown           = errors.New("unknown error")
)

// ValidationError aggregates every validation failure found in a request so
// the caller sees all of them at once.
type ValidationError struct {
	OperationType domain.OperationType
	Reasons       []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s work order: %s", e.OperationType, strings.Join(e.Reasons, "; "))
}

// NotFoundError reports identifiers that could not be resolved. Identifiers
// beyond the cap are dropped and Truncated is set.
type NotFoundError struct {
	Resource    string
	Identifiers []string
	Truncated   bool
}

func NewNotFoundError(resource string, identifiers []string) *NotFoundError {
	err := &NotFoundError{Resource: resource, Identifiers: identifiers}
	if len(identifiers) > maxReportedIdentifiers {
		err.Identifiers = identifiers[:maxReportedIdentifiers]
		err.Truncated = true
	}
	return err
}

func (e *NotFoundError) Error() string {
	listed := strings.Join(e.Identifiers, ", ")
	if e.Truncated {
		listed += ", ..."
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, listed)
}

// ExternalSystemError wraps a failure from an external dependency. During
// creation it forces a total rollback of the open transaction.
type ExternalSystemError struct {
	System string
	Err    error
}

func (e *ExternalSystemError) Error() string {
	return fmt.Sprintf("external system %s: %v", e.System, e.Err)
}

func (e *ExternalSystemError) Unwrap() error {
	return e.Err
}

// ConflictError reports an operation attempted against a work order in a
// state that forbids it, e.g. completing an already completed order.
type ConflictError struct {
	BatchID string
	Reason  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("work order %s: %s", e.BatchID, e.Reason)
}
