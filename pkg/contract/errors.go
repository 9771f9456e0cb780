package contract

import (
	"fmt"
	"strings"
)

// UnsupportedTestTypeError is returned when TEST_TYPE does not match any
// registered test type. No further field checks are performed.
type UnsupportedTestTypeError struct {
	TestType string
}

func (e *UnsupportedTestTypeError) Error() string {
	return fmt.Sprintf("unsupported test type %q (supported: %s)",
		e.TestType, strings.Join(SupportedTestTypes(), ", "))
}

// MissingParameterError is returned when a group or field required by the
// selected test type is absent. Path is the wire-format field path,
// e.g. "MATERIAL.poisson_ratio".
type MissingParameterError struct {
	Path string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %s", e.Path)
}

// InvalidValueError is returned when a field is present but has the wrong
// type or is outside its physical bounds.
type InvalidValueError struct {
	Path   string
	Reason string
}

func (e *InvalidValueError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}
