package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/BuiltByShivam/smart-inventory/internal/common"
)

var ErrUnavailable = errors.New("product service unavailable")

// RemoteError is a non-2xx answer from the product service. Message is the
// "message" field of the response payload when the server sent one.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("product service: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("product service: %d %s", e.Status, http.StatusText(e.Status))
}

// Is lets callers match a 404 with common.ErrorNotFound.
func (e *RemoteError) Is(target error) bool {
	return target == common.ErrorNotFound && e.Status == http.StatusNotFound
}
