package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConfiguration indicates that an operation was invoked against a collection agency
// or client that does not exist or that do not belong together.
var ErrConfiguration = errors.New("configuration error")

// ErrImport indicates that a CSV import failed for a reason other than validation.
// The import transaction has been rolled back when this is returned.
var ErrImport = errors.New("import error")

// KindError is an error with a client-facing message classified by one of the
// sentinel errors above. errors.Is(err, kind) reports true for its kind.
type KindError struct {
	kind error
	msg  string
}

// Newf builds a KindError whose Error() is exactly the formatted message.
func Newf(kind error, format string, args ...any) error {
	return &KindError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *KindError) Error() string { return e.msg }

func (e *KindError) Unwrap() error { return e.kind }

// AppError carries an HTTP-style status code alongside a message and the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }
