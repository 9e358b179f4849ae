package snapshot

import (
	"errors"
	"fmt"
)

var (
	// ErrEntryNotFound means the archive lacks the expected tabular entry.
	ErrEntryNotFound = errors.New("tabular entry not found in archive")
	// ErrAmbiguousEntry means more than one entry matches.
	ErrAmbiguousEntry = errors.New("archive contains more than one matching tabular entry")
	// ErrNoHeader means the tabular entry is empty.
	ErrNoHeader = errors.New("tabular entry has no header row")
	// ErrLocatorNotAllowed means a confined loader refused a local locator.
	ErrLocatorNotAllowed = errors.New("snapshot locator not allowed")
)

// InputError reports a snapshot that could not be obtained or decoded.
type InputError struct {
	Locator string
	Err     error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("snapshot %s unreadable: %v", e.Locator, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
