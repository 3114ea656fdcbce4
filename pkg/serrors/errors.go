package serrors

import "fmt"

// BaseError is a structured error carried across service boundaries. Code is a
// stable machine-readable identifier, Message is the human-readable reason.
type BaseError struct {
	Code    string
	Message string
}

func (e *BaseError) Error() string {
	return e.Message
}

func NewError(code, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
	}
}

// NewErrorf formats the message like fmt.Sprintf.
func NewErrorf(code, format string, args ...any) *BaseError {
	return NewError(code, fmt.Sprintf(format, args...))
}

func NewFieldRequiredError(field string) *BaseError {
	return &BaseError{
		Code:    "FIELD_REQUIRED",
		Message: fmt.Sprintf("Missing %s", field),
	}
}

// ValidationErrors maps a field name to its validation error.
type ValidationErrors map[string]*BaseError
