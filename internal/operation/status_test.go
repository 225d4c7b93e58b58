package operation

import (
	"testing"
)

func TestLifecycle_InitialState(t *testing.T) {
	lc := NewLifecycle("op-1")

	if lc.State() != StateTracking {
		t.Errorf("expected StateTracking, got %v", lc.State())
	}
	if lc.OperationID() != "op-1" {
		t.Errorf("expected op-1, got %v", lc.OperationID())
	}
	if lc.IsTerminal() {
		t.Error("expected IsTerminal to be false")
	}
	if lc.Reason() != "" {
		t.Errorf("expected empty reason, got %q", lc.Reason())
	}
}

func TestLifecycle_Complete(t *testing.T) {
	lc := NewLifecycle("op-1")

	if err := lc.Complete(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if lc.State() != StateCompleted {
		t.Errorf("expected StateCompleted, got %v", lc.State())
	}
	if !lc.IsTerminal() {
		t.Error("expected IsTerminal to be true")
	}
}

func TestLifecycle_Fail_CarriesReason(t *testing.T) {
	lc := NewLifecycle("op-1")

	if err := lc.Fail("bad audio"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if lc.State() != StateFailed {
		t.Errorf("expected StateFailed, got %v", lc.State())
	}
	if lc.Reason() != "bad audio" {
		t.Errorf("expected reason 'bad audio', got %q", lc.Reason())
	}
}

func TestLifecycle_TimeOut(t *testing.T) {
	lc := NewLifecycle("op-1")

	if err := lc.TimeOut("took too long"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if lc.State() != StateTimedOut {
		t.Errorf("expected StateTimedOut, got %v", lc.State())
	}
	if lc.Reason() != "took too long" {
		t.Errorf("expected timeout reason, got %q", lc.Reason())
	}
}

func TestLifecycle_TerminalTransitionOnlyOnce(t *testing.T) {
	lc := NewLifecycle("op-1")

	if err := lc.Complete(); err != nil {
		t.Errorf("first terminal transition: unexpected error: %v", err)
	}

	if err := lc.Fail("late failure"); err != ErrAlreadyTerminal {
		t.Errorf("expected ErrAlreadyTerminal, got %v", err)
	}
	if err := lc.Complete(); err != ErrAlreadyTerminal {
		t.Errorf("expected ErrAlreadyTerminal, got %v", err)
	}
	if err := lc.TimeOut("late timeout"); err != ErrAlreadyTerminal {
		t.Errorf("expected ErrAlreadyTerminal, got %v", err)
	}

	// State and reason are unchanged by rejected transitions
	if lc.State() != StateCompleted {
		t.Errorf("expected StateCompleted after rejected transitions, got %v", lc.State())
	}
	if lc.Reason() != "" {
		t.Errorf("expected empty reason, got %q", lc.Reason())
	}
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateTracking, "TRACKING"},
		{StateCompleted, "COMPLETED"},
		{StateFailed, "FAILED"},
		{StateTimedOut, "TIMED_OUT"},
		{State(42), "UNKNOWN(42)"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_IsTerminal(t *testing.T) {
	if StateTracking.IsTerminal() {
		t.Error("StateTracking should not be terminal")
	}
	for _, s := range []State{StateCompleted, StateFailed, StateTimedOut} {
		if !s.IsTerminal() {
			t.Errorf("%v should be terminal", s)
		}
	}
}
