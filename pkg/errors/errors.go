package errors

import "fmt"

// resolution error codes
const (
	ErrModuleNotFound = 1
	ErrSymbolNotFound = 2
	ErrBadImage       = 3
	ErrCallFailed     = 4
)

type ResolveError struct {
	Code uint32
}

func (e *ResolveError) Error() string {
	switch e.Code {
	case ErrModuleNotFound:
		return "module not found"
	case ErrSymbolNotFound:
		return "symbol not found"
	case ErrBadImage:
		return "bad image"
	case ErrCallFailed:
		return "call failed"
	}
	return fmt.Sprintf("%d", e.Code)
}

// New creates a new ResolveError
func New(code uint32) error {
	return &ResolveError{Code: code}
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code uint32) bool {
	if rErr, ok := err.(*ResolveError); ok {
		return rErr.Code == code
	}
	return false
}
