// internal/models/errors.go
package models

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrUnknownPeriod       = errors.New("unknown period")
)

// Reason names the validation rule an input broke.
type Reason string

const (
	ReasonMissingData Reason = "missing_data"
	ReasonWrongType   Reason = "wrong_type"
	ReasonNotANumber  Reason = "not_a_number"
	ReasonNonPositive Reason = "non_positive"
	ReasonNoItems     Reason = "no_items"
)

// Fields referenced by ValidationError.
const (
	FieldName     = "name"
	FieldCalories = "calories"
	FieldWeight   = "weight"
	FieldDate     = "date"
	FieldDays     = "days"
	FieldItems    = "items"
)

// ValidationError reports bad user input.
type ValidationError struct {
	Field  string
	Reason Reason
	Value  string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is matches another *ValidationError on Field and Reason; empty fields
// in the target act as wildcards.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return (t.Field == "" || t.Field == e.Field) && (t.Reason == "" || t.Reason == e.Reason)
}

var (
	ErrInvalidWeight     = &ValidationError{Field: FieldWeight, Reason: ReasonNotANumber}
	ErrNonPositiveWeight = &ValidationError{Field: FieldWeight, Reason: ReasonNonPositive}
)

// NotFoundError is a lookup miss.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// IOError wraps a failed disk read or write.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// PeriodError carries the period string that matched no known Period.
type PeriodError struct {
	Period string
}

func (e *PeriodError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownPeriod, e.Period)
}

func (e *PeriodError) Unwrap() error { return ErrUnknownPeriod }
