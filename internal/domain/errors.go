package domain

import "errors"

// Severity ranks how prominently a failure should be surfaced.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ClassifiedError is a transport-layer failure that already carries
// user-facing presentation data. The gateway produces these for known
// failure shapes; anything else is substituted with an operation-specific
// fallback at medium severity by Classify.
type ClassifiedError struct {
	Message        string
	Severity       Severity
	IsNetworkError bool
	StatusCode     int

	// Err is the underlying cause, when one exists.
	Err error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *ClassifiedError) Unwrap() error {
	return e.Err
}

// Classify returns err's classification when it carries one anywhere in its
// chain, or a fallback classification at medium severity otherwise.
func Classify(err error, fallback string) *ClassifiedError {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce
	}
	return &ClassifiedError{Message: fallback, Severity: SeverityMedium, Err: err}
}
