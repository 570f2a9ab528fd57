package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// BaseError is an error carrying a stable machine-readable code alongside the
// human-readable message. Codes are what API clients switch on.
type BaseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

func NewFieldRequiredError(field string) *BaseError {
	return &BaseError{
		Code:    "FIELD_REQUIRED",
		Message: fmt.Sprintf("field %q is required", field),
	}
}

func NewInvalidFieldError(field, reason string) *BaseError {
	return &BaseError{
		Code:    "FIELD_INVALID",
		Message: fmt.Sprintf("field %q is invalid: %s", field, reason),
	}
}

type ValidationErrors map[string]*BaseError

// ProcessValidatorErrors maps go-playground validator failures onto coded
// errors keyed by struct field name.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fieldErr := range errs {
		switch fieldErr.Tag() {
		case "required":
			out[fieldErr.Field()] = NewFieldRequiredError(fieldErr.Field())
		default:
			out[fieldErr.Field()] = NewInvalidFieldError(fieldErr.Field(), fieldErr.Tag())
		}
	}
	return out
}

// Messages flattens validation errors to plain strings for API payloads.
func (v ValidationErrors) Messages() map[string]string {
	out := make(map[string]string, len(v))
	for field, err := range v {
		out[field] = err.Message
	}
	return out
}
