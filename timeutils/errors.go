package timeutils

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors matched with errors.Is against the typed errors below.
var (
	ErrUnreachable           = errors.New("time service unreachable")
	ErrUnexpectedStatus      = errors.New("unexpected HTTP status")
	ErrMalformedJSON         = errors.New("malformed JSON")
	ErrMalformedDateTime     = errors.New("malformed datetime")
	ErrInvalidNumericField   = errors.New("invalid numeric field")
	ErrUnsupportedOffsetSign = errors.New("unsupported UTC offset sign")
	ErrClockSetFailed        = errors.New("failed to set local time")
	ErrUnsupportedPlatform   = errors.New("unsupported platform")
)

// FetchError is returned by Fetcher.Fetch.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: %v: %d", e.URL, ErrUnexpectedStatus, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v: %v", e.URL, ErrUnreachable, e.Err)
}

// Unwrap exposes the transport error so both it and the sentinel can be matched.
func (e *FetchError) Unwrap() []error {
	if e.StatusCode != 0 {
		return []error{ErrUnexpectedStatus}
	}
	return []error{ErrUnreachable, e.Err}
}

// ParseError describes why a response body could not be turned into a LocalTime.
// Kind is one of the Err* parse sentinels.
type ParseError struct {
	Kind  error
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg += fmt.Sprintf(" (%s=%q)", e.Field, e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func parseErr(kind error, field, value string) error {
	return &ParseError{Kind: kind, Field: field, Value: value}
}

// OSError carries the platform error code reported by the clock primitive.
// Code is errno on unix, GetLastError on windows and the exit status for the
// command based setter. It is -1 only when the failure has no platform code.
type OSError struct {
	Code int
	Err  error
}

func (e *OSError) Error() string {
	return fmt.Sprintf("%v (code %d): %v", ErrClockSetFailed, e.Code, e.Err)
}

func (e *OSError) Unwrap() []error {
	return []error{ErrClockSetFailed, e.Err}
}

// Stage names a step of the sync pipeline.
type Stage string

const (
	StageFetching Stage = "fetching"
	StageParsing  Stage = "parsing"
	StageApplying Stage = "applying"
)

// StageError records which pipeline stage failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return string(e.Stage) + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error { return e.Err }

// FailedStage reports the pipeline stage that produced err, if any.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
