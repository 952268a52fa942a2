package common

import (
	"fmt"
	"strings"
)

// ValidationError carries field level messages back to the HTTP layer.
type ValidationError struct {
	Errors map[string]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError keeps the first message recorded for a field.
func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required records "must be provided" when value is empty or only whitespace.
func (v *Validator) Required(value, field string) {
	v.Check(strings.TrimSpace(value) != "", field, "must be provided")
}

func (v *Validator) MaxBytes(value string, max int, field string) {
	v.Check(len(value) <= max, field, fmt.Sprintf("must not be more than %d bytes long", max))
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}
