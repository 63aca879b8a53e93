package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeDuplicateName, "person %q already exists", "User")

	if err.Code != ErrCodeDuplicateName {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeDuplicateName)
	}

	if err.Message != `person "User" already exists` {
		t.Errorf("Message = %v", err.Message)
	}

	expected := `DUPLICATE_NAME: person "User" already exists`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "put workspace")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeUnknownParent, "test"), ErrCodeUnknownParent, true},
		{"non-matching code", New(ErrCodeUnknownParent, "test"), ErrCodeUnknownElement, false},
		{"outer code", Wrap(ErrCodeInvalidDefinition, New(ErrCodeDuplicateName, "inner"), "outer"), ErrCodeInvalidDefinition, true},
		{"inner code", Wrap(ErrCodeInvalidDefinition, New(ErrCodeDuplicateName, "inner"), "outer"), ErrCodeDuplicateName, true},
		{"inner code through fmt", fmt.Errorf("build: %w", Wrap(ErrCodeInvalidDefinition, New(ErrCodeUnknownParent, "inner"), "outer")), ErrCodeUnknownParent, true},
		{"code not in chain", Wrap(ErrCodeInvalidDefinition, New(ErrCodeDuplicateName, "inner"), "outer"), ErrCodeUnknownParent, false},
		{"plain error", errors.New("plain"), ErrCodeInvalidInput, false},
		{"nil error", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeDuplicateViewKey, "k")); got != ErrCodeDuplicateViewKey {
		t.Errorf("GetCode() = %v", got)
	}
	if got := GetCode(Wrap(ErrCodeInvalidDefinition, New(ErrCodeDuplicateName, "inner"), "outer")); got != ErrCodeInvalidDefinition {
		t.Errorf("GetCode(wrapped) = %v, want the outer code", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidInput, "friendly message")); got != "friendly message" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestIsSinkError(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{ErrCodeSink, true},
		{ErrCodeSinkRejected, true},
		{ErrCodeUnauthorized, true},
		{ErrCodeNetwork, true},
		{ErrCodeTimeout, true},
		{ErrCodeDuplicateName, false},
		{ErrCodeInvalidConfig, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := IsSinkError(New(tt.code, "x")); got != tt.want {
				t.Errorf("IsSinkError(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
