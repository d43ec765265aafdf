package store

import (
	"errors"
	"fmt"

	"github.com/BuiltByShivam/smart-inventory/internal/client/client"
	"github.com/BuiltByShivam/smart-inventory/internal/common"
)

// ErrClosed is returned by calls that complete after Close; their results
// are not applied.
var ErrClosed = errors.New("product store closed")

// ValidationError reports a product draft or patch rejected before any
// network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return common.ErrorValidation
}

// RemoteServiceError is a failed product service call, carrying the
// user-facing message: the server's own message when it sent one, otherwise
// a generic fallback.
type RemoteServiceError struct {
	Op      string
	Message string
	Err     error
}

func (e *RemoteServiceError) Error() string {
	return e.Message
}

func (e *RemoteServiceError) Unwrap() error {
	return e.Err
}

// Fallback messages per operation.
const (
	msgLoad   = "Failed to fetch products."
	msgGet    = "Failed to fetch product."
	msgCreate = "Failed to add product. Try again."
	msgUpdate = "Failed to update product. Try again."
	msgDelete = "Failed to delete product. Try again."
)

func remoteFailure(op, fallback string, err error) *RemoteServiceError {
	msg := fallback
	var re *client.RemoteError
	if errors.As(err, &re) && re.Message != "" {
		msg = re.Message
	}
	return &RemoteServiceError{Op: op, Message: msg, Err: err}
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
