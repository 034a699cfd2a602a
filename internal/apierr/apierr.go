// Package apierr classifies failures surfaced by the graph transport or by
// local validation into a small taxonomy, attaching the original diagnostic
// payload. It never swallows: every classified error is returned to the
// caller for propagation.
package apierr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adstack/meta-ads-agent/internal/graph"
)

// Kind is the classification assigned to a failure.
type Kind string

const (
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindAPIError           Kind = "API_ERROR"
	KindRateLimit          Kind = "RATE_LIMIT"
	KindValidation         Kind = "VALIDATION_ERROR"
	KindNetwork            Kind = "NETWORK_ERROR"
)

// Diagnostics carries the remote error payload for observability. Nil when
// the failure never produced a structured remote error.
type Diagnostics struct {
	Code       int    `json:"fb_code,omitempty"`
	Subcode    int    `json:"fb_subcode,omitempty"`
	HTTPStatus int    `json:"http_status,omitempty"`
	FBTraceID  string `json:"fbtrace_id,omitempty"`
	Hint       string `json:"hint,omitempty"`
}

// Error is the uniform classified error. Message is prefixed with the failed
// operation's description; Cause preserves the original error chain.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Diag    *Diagnostics
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Cause }

// Validation builds a VALIDATION_ERROR raised locally before any network
// call.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// InvalidCredentials is raised only at facade construction.
func InvalidCredentials(message string) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: message}
}

// Classify wraps err with an operation description and a taxonomy kind.
// Already-classified errors only gain the operation prefix. It returns nil
// for a nil err.
func Classify(operation string, err error) error {
	if err == nil {
		return nil
	}

	var already *Error
	if errors.As(err, &already) {
		return &Error{
			Kind:    already.Kind,
			Message: operation + ": " + already.Message,
			Cause:   err,
			Diag:    already.Diag,
		}
	}

	var gerr *graph.Error
	if errors.As(err, &gerr) {
		return &Error{
			Kind:    KindAPIError,
			Message: operation + ": " + gerr.Message,
			Cause:   err,
			Diag: &Diagnostics{
				Code:       gerr.Code,
				Subcode:    gerr.Subcode,
				HTTPStatus: gerr.HTTPStatus,
				FBTraceID:  gerr.FBTraceID,
				Hint:       HintForCode(gerr.Code),
			},
		}
	}

	return &Error{
		Kind:    kindFromMessage(err.Error()),
		Message: operation + ": " + err.Error(),
		Cause:   err,
	}
}

// kindFromMessage classifies unstructured errors by vocabulary, in priority
// order: rate limiting, network failure, validation, then the API_ERROR
// default.
func kindFromMessage(msg string) Kind {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "rate limit") || strings.Contains(lower, "too many requests"):
		return KindRateLimit
	case strings.Contains(lower, "network") ||
		strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "timeout"):
		return KindNetwork
	case strings.Contains(lower, "missing") ||
		strings.Contains(lower, "invalid") ||
		strings.Contains(lower, "must be") ||
		strings.Contains(lower, "required"):
		return KindValidation
	default:
		return KindAPIError
	}
}
