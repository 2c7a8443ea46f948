package scholar

import (
	"errors"
	"fmt"
)

// ValidationError reports bad user input caught before any external call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TransportError wraps a failure of the collaborator call itself.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means the collaborator answered but the payload could not be
// normalized into records.
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return "malformed response: " + e.Reason
}

// ErrorKind buckets errors for the UI.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindTransport
	KindMalformed
)

// Classify maps err onto one of the user-facing error kinds. Unknown errors are treated as
// transport failures so they still get a retry action.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return KindValidation
	}
	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		return KindMalformed
	}
	return KindTransport
}

// UserMessage renders err the way the result banner shows it.
func UserMessage(err error, subject string) string {
	switch Classify(err) {
	case KindNone:
		return ""
	case KindValidation:
		var validation *ValidationError
		errors.As(err, &validation)
		return validation.Message
	case KindMalformed:
		return "The search completed, but the model returned " + subject + " in an unexpected format."
	default:
		return "Failed to fetch " + subject + ". Check your connection or filters, then try again."
	}
}
