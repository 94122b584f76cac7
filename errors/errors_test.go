package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestFlowError_New_Success(t *testing.T) {
	err := New(ErrCodeStructure, "unreachable outlet")
	if err.Code != ErrCodeStructure {
		t.Errorf("expected code %s, got %s", ErrCodeStructure, err.Code)
	}
	if err.Message != "unreachable outlet" {
		t.Errorf("expected message 'unreachable outlet', got %q", err.Message)
	}
}

func TestFlowError_Error_WithCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Transform("scaler-1", cause)
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "scaler-1") {
		t.Errorf("expected element name in message, got %q", err.Error())
	}
}

func TestFlowError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := Transform("dup", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestFlowError_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", Cycle([]string{"a", "b"}))
	if !IsCode(err, ErrCodeCycle) {
		t.Error("expected IsCode to see through fmt wrapping")
	}
	if CodeOf(err) != ErrCodeCycle {
		t.Errorf("expected CYCLE, got %s", CodeOf(err))
	}
}

func TestFlowError_CodeOf_NonFlowError(t *testing.T) {
	if CodeOf(stderrors.New("plain")) != "" {
		t.Error("expected empty code for plain error")
	}
}

func TestFlowError_Cycle_Details(t *testing.T) {
	err := Cycle([]string{"rot", "dup"})
	elems, ok := err.Details["elements"].([]string)
	if !ok || len(elems) != 2 {
		t.Fatalf("expected 2 elements in details, got %v", err.Details["elements"])
	}
}

func TestFlowError_InputArity_Details(t *testing.T) {
	err := InputArity(2, 1)
	if err.Details["want"] != 2 || err.Details["got"] != 1 {
		t.Errorf("unexpected details: %v", err.Details)
	}
	if !strings.Contains(err.Error(), "2") {
		t.Errorf("expected counts in message, got %q", err.Error())
	}
}

func TestFlowError_Resolution(t *testing.T) {
	err := Resolution("rotator", "n_result")
	if err.Code != ErrCodeResolution {
		t.Errorf("expected RESOLUTION, got %s", err.Code)
	}
	if err.Details["attribute"] != "n_result" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestFlowError_WithDetail(t *testing.T) {
	err := Structure("dangling element").WithDetail("element", "x")
	if err.Details["element"] != "x" {
		t.Errorf("expected element detail, got %v", err.Details)
	}
}
