package upstream

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrorCategory is the normalized upstream failure taxonomy.
type ErrorCategory string

const (
	// CategoryUnreachable: transport failure or the relay could not reach the host.
	CategoryUnreachable ErrorCategory = "unreachable"

	// CategoryHTTP: the upstream answered with a non-2xx status.
	CategoryHTTP ErrorCategory = "http_error"

	// CategoryProtocol: the body was not the structured JSON envelope
	// (typically an HTML login or error page behind a misconfigured base URL).
	CategoryProtocol ErrorCategory = "protocol"

	// CategoryRejected: a JSON envelope with type "error".
	CategoryRejected ErrorCategory = "rejected"

	// CategoryInternal: request could not be built.
	CategoryInternal ErrorCategory = "internal"
)

const maxBodyExcerpt = 300

// Error wraps upstream failures with a normalized category.
type Error struct {
	Category   ErrorCategory
	Resource   Resource
	Status     int
	Body       string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *Error) Error() string {
	prefix := fmt.Sprintf("upstream %s [%s]", e.Resource, e.Category)
	if e.Status != 0 {
		prefix = fmt.Sprintf("%s status %d", prefix, e.Status)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Underlying)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s: %s: %s", prefix, e.Message, e.Body)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// NewError creates a categorized upstream error. Unreachable errors and 5xx
// statuses are retryable.
func NewError(category ErrorCategory, resource Resource, message string, underlying error) *Error {
	return &Error{
		Category:   category,
		Resource:   resource,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == CategoryUnreachable,
	}
}

func newHTTPError(resource Resource, status int, body []byte) *Error {
	category := CategoryHTTP
	if status == 502 || status == 503 || status == 504 {
		category = CategoryUnreachable
	}
	e := NewError(category, resource, "unexpected status", nil)
	e.Status = status
	e.Body = excerpt(body)
	e.Retryable = status >= 500
	return e
}

func excerpt(body []byte) string {
	s := string(body)
	if len(s) <= maxBodyExcerpt {
		return s
	}
	cut := maxBodyExcerpt
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error.
func GetCategory(err error) ErrorCategory {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Category
	}
	return CategoryInternal
}

// IsProtocolError reports whether the upstream returned something other than JSON.
func IsProtocolError(err error) bool {
	return GetCategory(err) == CategoryProtocol
}

// IsUnreachable reports a connectivity failure.
func IsUnreachable(err error) bool {
	return GetCategory(err) == CategoryUnreachable
}
