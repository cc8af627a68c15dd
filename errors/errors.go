package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad  Phase = "load"  // native module compilation/instantiation
	PhaseBind  Phase = "bind"  // capability binding onto the facade
	PhaseFetch Phase = "fetch" // remote asset retrieval
	PhaseParse Phase = "parse" // asset content parsing
	PhaseStore Phase = "store" // native storage writes
	PhaseCall  Phase = "call"  // delegated native calls
)

// Kind categorizes the error
type Kind string

const (
	KindNotInitialized  Kind = "not_initialized"
	KindNotFound        Kind = "not_found"
	KindFetchFailed     Kind = "fetch_failed"
	KindParseFailed     Kind = "parse_failed"
	KindNativeCall      Kind = "native_call"
	KindInvalidInput    Kind = "invalid_input"
	KindVersionMismatch Kind = "version_mismatch"
	KindSizeExceeded    Kind = "size_exceeded"
	KindStoreFailed     Kind = "store_failed"
)

// Error is the structured error type used throughout the adapter.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   string // storage path or locator, when one is involved
	Status int    // transport status for fetch failures, 0 otherwise
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.Status != 0 {
		fmt.Fprintf(&b, " (status %d)", e.Status)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error on phase and kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for common error patterns

// NotInitialized reports a delegated call made before the facade was bound.
func NotInitialized(component string) *Error {
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound reports a named export missing from the native call surface.
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// FetchFailed reports a remote transport failure. status is the transport
// status indicator (HTTP status code), or 0 when the request never completed.
func FetchFailed(locator string, status int, cause error) *Error {
	return &Error{
		Phase:  PhaseFetch,
		Kind:   KindFetchFailed,
		Path:   locator,
		Status: status,
		Cause:  cause,
	}
}

// ParseFailed reports unusable asset content.
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindParseFailed,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// StoreFailed reports a failed write into native storage.
func StoreFailed(path string, cause error) *Error {
	return &Error{
		Phase: PhaseStore,
		Kind:  KindStoreFailed,
		Path:  path,
		Cause: cause,
	}
}

// NativeCall reports a native entry point signalling failure, either by
// trapping or by returning a negative code.
func NativeCall(name string, code int32, cause error) *Error {
	detail := name
	if code != 0 {
		detail = fmt.Sprintf("%s returned %d", name, code)
	}
	return &Error{
		Phase:  PhaseCall,
		Kind:   KindNativeCall,
		Detail: detail,
		Cause:  cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// VersionMismatch reports a native module outside the supported ABI range.
func VersionMismatch(got, want string) *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindVersionMismatch,
		Detail: fmt.Sprintf("native module version %s outside supported range %s", got, want),
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// SizeExceeded reports an asset larger than the configured fetch limit.
func SizeExceeded(locator string, limit int64) *Error {
	return &Error{
		Phase:  PhaseFetch,
		Kind:   KindSizeExceeded,
		Path:   locator,
		Detail: fmt.Sprintf("response exceeds %d byte limit", limit),
	}
}
