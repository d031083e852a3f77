package errors

import (
	"fmt"
)

// Pipeline error kinds. Callers match these with errors.Is; constructors
// below attach context while keeping the kind in the chain.
var (
	// ErrFileAccess covers upload spooling, temp files and weights I/O.
	ErrFileAccess = New("file access failed")

	// ErrUnsupportedFormat is returned for inputs outside mp3/wav/m4a.
	ErrUnsupportedFormat = New("unsupported audio format")

	// ErrModelLoad is returned when whisper weights cannot be loaded.
	ErrModelLoad = New("model load failed")

	// ErrAnalysisUnavailable is returned when no analysis candidate produced
	// a response, or no credential is configured.
	ErrAnalysisUnavailable = New("analysis unavailable")

	// ErrMalformedResponse is returned when a candidate answered but the
	// payload did not decode into the expected schema.
	ErrMalformedResponse = New("malformed analysis response")

	// Configuration errors
	ErrMissingAPIKey = New("API key is required")
	ErrInvalidAPIKey = New("invalid API key format")
	ErrInvalidConfig = New("invalid configuration")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Kind attaches a sentinel kind to err while keeping err in the chain.
// errors.Is(Kind(k, err), k) holds, as does errors.Is against err itself.
func Kind(kind *Error, err error) error {
	if err == nil {
		return kind
	}
	return &Error{message: kind.message, cause: err}
}

// FileAccess marks an I/O failure on path.
func FileAccess(err error, path string) error {
	return Kind(ErrFileAccess, Wrapf(err, "file %s", path))
}

// UnsupportedFormat reports an input whose container format is not accepted.
func UnsupportedFormat(format string, allowed []string) error {
	return Kind(ErrUnsupportedFormat, Newf("format %q not in %v", format, allowed))
}

// ModelLoad marks a whisper weights failure for the given model size.
func ModelLoad(err error, size string) error {
	return Kind(ErrModelLoad, Wrapf(err, "whisper model %s", size))
}

// AnalysisUnavailable reports that analysis could not be performed at all.
func AnalysisUnavailable(err error) error {
	return Kind(ErrAnalysisUnavailable, err)
}

// MalformedResponse reports an analysis payload outside the schema.
func MalformedResponse(err error, model string) error {
	return Kind(ErrMalformedResponse, Wrapf(err, "model %s", model))
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// Helper functions for common patterns

// RequiredField returns an error for missing required fields
func RequiredField(field string) error {
	return Newf("%s is required", field)
}

// InvalidField returns an error for invalid field values
func InvalidField(field string, reason string) error {
	return Newf("%s is invalid: %s", field, reason)
}

// NotFound returns an error for items that were not found
func NotFound(itemType string, identifier string) error {
	return Newf("%s not found: %s", itemType, identifier)
}

// Timeout returns a timeout error
func Timeout(operation string, duration string) error {
	return Newf("%s timeout after %s", operation, duration)
}
