package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrClearInProgress  = errors.New("cache clear already in progress")
	ErrCacheClearFailed = errors.New("cache clear failed")
	ErrClosed           = errors.New("closed")
)

// CacheClearFailedMessage is the only failure text shown to the user.
// The underlying error is logged, never displayed.
const CacheClearFailedMessage = "Failed to clear cache"

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SelectionError represents a rejected mirror selection
type SelectionError struct {
	IndexerID string
	Index     int
	Reason    string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("cannot select mirror %d of %s: %s", e.Index, e.IndexerID, e.Reason)
}

func (e *SelectionError) Is(target error) bool {
	return target == ErrInvalidOperation
}
