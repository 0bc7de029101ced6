package mundipagg

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/mundipagg/gateway-core/internal/shared/errors"
)

// ErrInvalidPayload is returned when a webhook body cannot be decoded.
var ErrInvalidPayload = errors.New("invalid mundipagg payload")

// APIError is a request the gateway answered with an error status.
type APIError struct {
	StatusCode int
	Message    string
	Errors     map[string][]string
}

// Error returns the gateway's reason, followed by the field errors it listed.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("mundipagg returned status %d", e.StatusCode)
	}
	if len(e.Errors) == 0 {
		return msg
	}

	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, field+": "+strings.Join(e.Errors[field], ", "))
	}
	return msg + " (" + strings.Join(details, "; ") + ")"
}

// Unwrap lets callers map gateway rejections to a 502.
func (e *APIError) Unwrap() error {
	return apperrors.ErrGateway
}
