package core

import (
	"slices"
	"testing"
)

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame not empty")
	}

	f.Set(ActionNone)
	if !f.Empty() {
		t.Error("ActionNone should be ignored")
	}

	f.Set(ActionPause)
	f.Set(ActionJump)
	f.Set(ActionJump)

	if !f.Has(ActionJump) || !f.Has(ActionPause) {
		t.Errorf("missing actions: %v", f.Actions())
	}
	if f.Has(ActionQuit) {
		t.Error("unexpected quit")
	}
	if got, want := f.Actions(), []Action{ActionJump, ActionPause}; !slices.Equal(got, want) {
		t.Errorf("Actions() = %v, want %v", got, want)
	}

	copied := f
	f.Clear()
	if !f.Empty() {
		t.Error("Clear left actions behind")
	}
	if !copied.Has(ActionJump) {
		t.Error("copy shares state with the cleared frame")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionJump, "Jump"},
		{ActionBack, "Back"},
		{ActionPause, "Pause"},
		{Action(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
