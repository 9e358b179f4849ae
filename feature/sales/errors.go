package sales

import (
	"errors"
	"fmt"

	"sales-sync/core/snapshot"
)

var (
	// ErrEmptySnapshot means a snapshot with no usable rows would wipe a non-empty store.
	ErrEmptySnapshot = errors.New("snapshot has no valid records")
	// ErrSaleNotFound means no stored sale has the requested identity.
	ErrSaleNotFound = errors.New("sale not found")
)

// MalformedRecordError reports a snapshot row that could not be normalized.
type MalformedRecordError struct {
	Field string
	Value string
	Raw   snapshot.RawRecord
	Err   error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: %s %q: %v", e.Raw.Line, e.Field, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}
