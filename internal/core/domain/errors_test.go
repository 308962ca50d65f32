package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"validation", NewValidationError("bad input"), KindValidation},
		{"not found", NewNotFoundError("member not found"), KindNotFound},
		{"forbidden", NewForbiddenError("no"), KindForbidden},
		{"unauthorized", NewUnauthorizedError("who"), KindUnauthorized},
		{"internal", NewInternalError("boom", errors.New("db down")), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if KindOf(tt.err) != tt.kind {
				t.Errorf("KindOf = %v, want %v", KindOf(tt.err), tt.kind)
			}
		})
	}
}

func TestKindOfUnknownError(t *testing.T) {
	if KindOf(errors.New("plain")) != KindInternal {
		t.Error("plain errors default to internal")
	}
	// Wrapped domain errors keep their kind.
	wrapped := fmt.Errorf("context: %w", NewNotFoundError("gone"))
	if !IsNotFound(wrapped) {
		t.Error("wrapping should preserve the kind")
	}
}

func TestInternalErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError("query failed", cause)
	if !errors.Is(err, cause) {
		t.Error("internal errors should unwrap to their cause")
	}
}
