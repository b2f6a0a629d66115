package errors

import (
	"errors"
	"testing"
)

type storeError struct {
	Backend string
}

func (e storeError) Error() string { return e.Backend + " unavailable" }

func TestNew(t *testing.T) {
	err := New("keystore closed")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "keystore closed" {
		t.Errorf("expected 'keystore closed', got '%s'", err.Error())
	}
}

func TestWrap(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(baseErr, "failed to put keypair")
		if wrapped == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		expected := "failed to put keypair: base error"
		if wrapped.Error() != expected {
			t.Errorf("expected '%s', got '%s'", expected, wrapped.Error())
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("expected wrapped error to wrap baseErr")
		}
	})

	t.Run("wrap nil error", func(t *testing.T) {
		if wrapped := Wrap(nil, "wrapped"); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestWrapf(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrapf non-nil error", func(t *testing.T) {
		wrapped := Wrapf(baseErr, "backend %s", "redis")
		expected := "backend redis: base error"
		if wrapped == nil || wrapped.Error() != expected {
			t.Fatalf("expected '%s', got '%v'", expected, wrapped)
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("expected wrapped error to wrap baseErr")
		}
	})

	t.Run("wrapf nil error", func(t *testing.T) {
		if wrapped := Wrapf(nil, "backend %s", "redis"); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestIs(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "keypair not found")
	if !Is(wrapped, ErrNotFound) {
		t.Error("expected wrapped ErrNotFound to be ErrNotFound")
	}

	if Is(ErrNotFound, ErrCorrupted) {
		t.Error("expected ErrNotFound NOT to be ErrCorrupted")
	}

	if Is(Wrap(ErrCorrupted, "stored keypair"), ErrNotFound) {
		t.Error("expected corrupted data NOT to be reported as not found")
	}
}

func TestAs(t *testing.T) {
	wrapped := Wrap(storeError{Backend: "redis"}, "failed to get keypair")

	var target storeError
	if !As(wrapped, &target) {
		t.Fatal("expected wrapped error to be able to extract target")
	}
	if target.Backend != "redis" {
		t.Errorf("expected 'redis', got '%s'", target.Backend)
	}
}

func TestStandardErrors(t *testing.T) {
	tests := []struct {
		err  error
		text string
	}{
		{ErrNotFound, "not found"},
		{ErrInvalidInput, "invalid input"},
		{ErrCorrupted, "corrupted data"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.text {
			t.Errorf("expected text '%s' for error, got '%s'", tt.text, tt.err.Error())
		}
	}
}
