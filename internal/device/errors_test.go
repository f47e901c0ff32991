package device

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		et   ErrorType
		want string
	}{
		{ErrTypeValidation, "Validation Error"},
		{ErrTypeTransport, "Transport Error"},
		{ErrTypeDecode, "Decode Error"},
		{ErrTypeNoValidReply, "No Valid Reply"},
		{ErrTypeStateMismatch, "State Mismatch"},
		{ErrorType(99), "ErrorType(99)"},
	}
	for _, tt := range tests {
		if got := tt.et.String(); got != tt.want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", tt.et, got, tt.want)
		}
	}
}

func TestErrorPredicates(t *testing.T) {
	validation := NewValidationError("bad port %d", 70000)
	noReply := NewNoValidReplyError("no valid reply", 10, nil)
	mismatch := NewStateMismatchError("input switch not applied", "input 3", "input 5")

	if !IsValidationError(validation) || IsValidationError(noReply) {
		t.Error("IsValidationError misclassified")
	}
	if !IsNoValidReplyError(noReply) || IsNoValidReplyError(mismatch) {
		t.Error("IsNoValidReplyError misclassified")
	}
	if !IsStateMismatchError(mismatch) || IsStateMismatchError(validation) {
		t.Error("IsStateMismatchError misclassified")
	}

	if IsValidationError(errors.New("plain")) {
		t.Error("plain error classified as validation error")
	}
	if IsValidationError(nil) {
		t.Error("nil classified as validation error")
	}
}

func TestErrorPredicates_Wrapped(t *testing.T) {
	err := fmt.Errorf("switch: %w", NewStateMismatchError("m", "input 1", "input 2"))
	if !IsStateMismatchError(err) {
		t.Error("wrapped state mismatch not detected")
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNoValidReplyError("no valid reply", 10, NewTransportError("exchange failed", cause))
	if !errors.Is(err, cause) {
		t.Error("error chain does not reach the transport cause")
	}
}

func TestErrorMessages(t *testing.T) {
	mismatch := NewStateMismatchError("input switch not applied", "input 3", "input 5")
	if msg := mismatch.Error(); !strings.Contains(msg, "input 3") || !strings.Contains(msg, "input 5") {
		t.Errorf("mismatch message lacks detail: %q", msg)
	}

	noReply := NewNoValidReplyError("no valid reply", 10, nil)
	if msg := noReply.Error(); !strings.Contains(msg, "10 attempts") {
		t.Errorf("no-reply message lacks attempt count: %q", msg)
	}
}

func TestGetShortErrorMessage(t *testing.T) {
	// Operators must be able to tell "unreachable" from "not obeying".
	unreachable := GetShortErrorMessage(NewNoValidReplyError("no valid reply", 10, nil))
	disobeying := GetShortErrorMessage(NewStateMismatchError("m", "input 3", "input 5"))
	if unreachable == disobeying {
		t.Error("unreachable and disobeying render identically")
	}
	if !strings.Contains(unreachable, "10 attempts") {
		t.Errorf("unreachable message = %q", unreachable)
	}
	if !strings.Contains(disobeying, "input 5") {
		t.Errorf("disobeying message = %q", disobeying)
	}

	if got := GetShortErrorMessage(errors.New("plain")); got != "plain" {
		t.Errorf("plain error message = %q", got)
	}
}
