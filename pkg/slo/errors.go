package slo

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	MalformedRecord      ErrorKind = "MALFORMED_RECORD"
	MissingTemplateField ErrorKind = "MISSING_TEMPLATE_FIELD"
	EmptyResult          ErrorKind = "EMPTY_RESULT"
)

// Error is returned by the conversion engine
type Error struct {
	Kind    ErrorKind
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewMalformedRecord(name string, reason string) *Error {
	return &Error{
		Kind:    MalformedRecord,
		Message: fmt.Sprintf("SLO %q is malformed: %s", name, reason),
		Details: map[string]any{"name": name},
	}
}

func NewMissingTemplateField(template string, field string) *Error {
	return &Error{
		Kind:    MissingTemplateField,
		Message: fmt.Sprintf("template %s references unknown field %q", template, field),
		Details: map[string]any{"template": template, "field": field},
	}
}

func NewEmptyResult() *Error {
	return &Error{
		Kind:    EmptyResult,
		Message: "no SLO matching the configuration was found",
	}
}

// IsKind checks if err is (or wraps) an engine error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var sloErr *Error
	if errors.As(err, &sloErr) {
		return sloErr.Kind == kind
	}
	return false
}
