package handler

import (
	"strings"
	"testing"
)

func TestFormValidator_Messages(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&loginForm{Username: "alice", Password: "pw"}); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}

	err := v.Validate(&loginForm{Username: strings.Repeat("a", 257)})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "password is a required field") {
		t.Fatalf("expected form key in required message, got %q", msg)
	}
	if !strings.Contains(msg, "username must be a maximum of 256 characters in length") {
		t.Fatalf("expected max length message, got %q", msg)
	}
}
