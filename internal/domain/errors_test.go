package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify_PassesThroughClassified(t *testing.T) {
	ce := &ClassifiedError{Message: "Server error", Severity: SeverityHigh, StatusCode: 500}

	got := Classify(ce, "fallback")
	if got != ce {
		t.Errorf("expected the original classified error, got %+v", got)
	}
}

func TestClassify_UnwrapsWrappedClassified(t *testing.T) {
	ce := &ClassifiedError{Message: "Rate limited", Severity: SeverityMedium, StatusCode: 429}
	wrapped := fmt.Errorf("create project: %w", ce)

	got := Classify(wrapped, "fallback")
	if got != ce {
		t.Errorf("expected the wrapped classified error, got %+v", got)
	}
}

func TestClassify_SubstitutesFallback(t *testing.T) {
	cause := errors.New("boom")

	got := Classify(cause, "Failed to create project.")

	if got.Message != "Failed to create project." {
		t.Errorf("message = %q, want the fallback text", got.Message)
	}
	if got.Severity != SeverityMedium {
		t.Errorf("severity = %q, want medium", got.Severity)
	}
	if got.IsNetworkError || got.StatusCode != 0 {
		t.Errorf("unexpected transport fields: %+v", got)
	}
	if !errors.Is(got, cause) {
		t.Error("fallback classification should wrap the original error")
	}
}

func TestClassifiedError_Error(t *testing.T) {
	ce := &ClassifiedError{Message: "Not found", Severity: SeverityLow, StatusCode: 404}
	if ce.Error() != "Not found" {
		t.Errorf("Error() = %q, want %q", ce.Error(), "Not found")
	}
}
