package api

import (
	"errors"
	"fmt"
)

// Severity is the display priority of a Failure.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
	SeverityFatal   Severity = "fatal"
)

// NetworkErrorMessage is reported when the backend could not be reached at all.
const NetworkErrorMessage = "network error: the API could not be reached"

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeveritySuccess, SeverityFatal:
		return true
	}
	return false
}

// Failure is the uniform shape every failed Gateway call resolves to.
// It is either fully present or absent: Message and Severity are always set
// by the constructors in this package.
type Failure struct {
	Message  string   `json:"message" yaml:"message"`
	Severity Severity `json:"severity" yaml:"severity"`

	// Status is the HTTP status the backend answered with, 0 when the
	// request never got a response.
	Status int `json:"-" yaml:"-"`

	cause error
}

func (f *Failure) Error() string {
	if f.Status > 0 {
		return fmt.Sprintf("%s (%d): %s", f.Severity, f.Status, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Severity, f.Message)
}

func (f *Failure) Unwrap() error { return f.cause }

// IsNetwork reports whether the failure happened before any response arrived.
func (f *Failure) IsNetwork() bool {
	return f.Status == 0 && f.Severity == SeverityFatal
}

// NetworkFailure wraps a transport error.
func NetworkFailure(cause error) *Failure {
	return &Failure{
		Message:  NetworkErrorMessage,
		Severity: SeverityFatal,
		cause:    cause,
	}
}

// ServerFailure builds a failure for a non-success status.
// An unknown severity falls back to SeverityError.
func ServerFailure(status int, message string, severity Severity) *Failure {
	if !severity.Valid() {
		severity = SeverityError
	}
	return &Failure{
		Message:  message,
		Severity: severity,
		Status:   status,
	}
}

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
