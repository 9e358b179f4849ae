package reconcile

import (
	"errors"
	"fmt"
)

const (
	// SourceExisting marks the stored record set.
	SourceExisting = "existing"
	// SourceIncoming marks the snapshot record set.
	SourceIncoming = "incoming"
)

// ErrDuplicateIdentity matches any *DuplicateIdentityError via errors.Is.
var ErrDuplicateIdentity = errors.New("duplicate identity")

// DuplicateIdentityError reports a key that occurs more than once in a record set.
type DuplicateIdentityError struct {
	Source string
	Key    string
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("duplicate identity %q in %s records", e.Key, e.Source)
}

func (e *DuplicateIdentityError) Is(target error) bool {
	return target == ErrDuplicateIdentity
}

// OperationError reports a single failed store mutation.
type OperationError struct {
	Action ActionType
	Key    string
	Err    error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Action, e.Key, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
