package ruleengine

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/starkandwayne/goutils/ansi"

	"github.com/open-regels/ruleengine/internal/rlog"
)

// ErrorType categorizes engine-level failures the way graft's own
// GraftError does, distinguishing what a caller might want to branch on.
type ErrorType string

const (
	// SpecificationError indicates a malformed specification (§C.1): a
	// dangling output reference, a TypeSpec with min > max, a duplicate
	// property name.
	SpecificationError ErrorType = "specification_error"

	// ServiceProviderError wraps a failure propagated from a
	// ServiceProvider.GetValue call (§7: "propagates to caller of
	// evaluate; the whole evaluation fails").
	ServiceProviderError ErrorType = "service_provider_error"
)

// EngineError is the engine's structured error type.
type EngineError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

// NewValidationError builds a SpecificationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *EngineError {
	return &EngineError{Type: SpecificationError, Message: fmt.Sprintf(format, args...)}
}

// NewServiceProviderError wraps a ServiceProvider failure for propagation.
func NewServiceProviderError(cause error, format string, args ...interface{}) *EngineError {
	return &EngineError{Type: ServiceProviderError, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// WarningError is a recoverable, loggable problem (§7: unresolved
// reference, malformed operation) that the engine tolerates by design. It
// never aborts evaluation; it is surfaced through trace details and/or
// logged, following graft's own WarningError shape.
type WarningError struct {
	warning string
}

var warningsSilenced bool

// SilenceWarnings suppresses WarningError.Warn output; used by tests and
// batch callers that don't want console noise for every lenient fallback.
func SilenceWarnings(should bool) {
	warningsSilenced = should
}

// NewWarningError formats and records a warning.
func NewWarningError(format string, args ...interface{}) WarningError {
	return WarningError{warning: ansi.Sprintf(format, args...)}
}

// Error implements error.
func (e WarningError) Error() string {
	return e.warning
}

// Warn logs the warning via rlog unless silenced.
func (e WarningError) Warn() {
	if !warningsSilenced {
		rlog.WARN("%s", e.warning)
	}
}

// appendBatchError starts (or appends to) an aggregated multi-error, used by
// NewEngine to collect every validation problem and by EvaluateMany (§C.3)
// to collect per-request ServiceProvider failures without aborting the
// whole batch.
func appendBatchError(existing error, err error) error {
	if err == nil {
		return existing
	}
	return multierror.Append(existing, err)
}
