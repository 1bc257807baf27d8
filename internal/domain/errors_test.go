package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("lessons", "required")

	if got := err.Error(); got != "validation: lessons: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "kind", Message: "invalid"},
		{Field: "lessons", Message: "at least one required"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestSentinelErrors_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("open book.pdf: %w", ErrSourceUnavailable)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatal("wrapped ErrSourceUnavailable should match")
	}
	if errors.Is(err, ErrWriteFailure) {
		t.Fatal("wrapped ErrSourceUnavailable should not match ErrWriteFailure")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrValidation, ErrConflict,
		ErrSourceUnavailable, ErrSourceParse, ErrWriteFailure,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
