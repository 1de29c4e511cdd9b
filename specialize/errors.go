package specialize

import "fmt"

// ErrorKind categorizes precondition failures detected before the driver
// is called.
type ErrorKind uint8

const (
	// ErrNoContext indicates a nil glapi.Context.
	ErrNoContext ErrorKind = iota

	// ErrEmptyBinary indicates a zero-length module.
	ErrEmptyBinary

	// ErrEmptyEntryPoint indicates an empty entry point name.
	ErrEmptyEntryPoint
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrNoContext:
		return "NoContext"
	case ErrEmptyBinary:
		return "EmptyBinary"
	case ErrEmptyEntryPoint:
		return "EmptyEntryPoint"
	default:
		return "Unknown"
	}
}

// Error is returned by Specialize when a precondition does not hold.
// Driver-side rejection is never reported this way.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("specialize %s: %s", e.Kind, e.Message)
}

// NewError creates a new specialize error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}
