// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package display

import (
	"errors"
	"testing"
)

func TestControllerStartsWithPlaceholder(t *testing.T) {
	c := NewController()
	state := c.State()
	if state.Phase != PhaseIdle {
		t.Fatalf("expected idle phase, got %s", state.Phase)
	}
	if state.Text != Placeholder {
		t.Fatalf("expected placeholder, got %q", state.Text)
	}
}

func TestControllerResolvesLatestGeneration(t *testing.T) {
	c := NewController()
	gen := c.SetPending()
	if c.Text() != "Sending..." {
		t.Fatalf("expected pending text, got %q", c.Text())
	}
	if !c.SetResult(gen, "{\n  \"ok\": true\n}") {
		t.Fatalf("expected result to apply")
	}
	want := "Claude API response:\n{\n  \"ok\": true\n}"
	if c.Text() != want {
		t.Fatalf("text = %q, want %q", c.Text(), want)
	}
	if c.State().Phase != PhaseSucceeded {
		t.Fatalf("expected succeeded phase, got %s", c.State().Phase)
	}
}

func TestControllerDiscardsStaleCompletion(t *testing.T) {
	c := NewController()
	first := c.SetPending()
	second := c.SetPending()

	if !c.SetResult(second, `"second"`) {
		t.Fatalf("expected latest result to apply")
	}
	if c.SetError(first, errors.New("late failure")) {
		t.Fatalf("expected stale error to be discarded")
	}
	if c.Text() != "Claude API response:\n\"second\"" {
		t.Fatalf("stale completion overwrote display: %q", c.Text())
	}
}

func TestControllerWarningSupersedesInFlight(t *testing.T) {
	c := NewController()
	gen := c.SetPending()
	c.SetWarning()
	if c.Text() != "⚠️ Please enter a command." {
		t.Fatalf("unexpected warning text %q", c.Text())
	}
	if c.SetResult(gen, `"late"`) {
		t.Fatalf("expected in-flight result to be discarded after warning")
	}
	if c.Text() != EmptyWarning {
		t.Fatalf("warning overwritten: %q", c.Text())
	}
}

func TestControllerErrorText(t *testing.T) {
	c := NewController()
	gen := c.SetPending()
	if !c.SetError(gen, errors.New("context deadline exceeded")) {
		t.Fatalf("expected error to apply")
	}
	if c.Text() != "❌ Error: context deadline exceeded" {
		t.Fatalf("unexpected error text %q", c.Text())
	}
	if !c.State().Phase.Resolved() {
		t.Fatalf("expected resolved phase")
	}
}

func TestControllerReset(t *testing.T) {
	c := NewController()
	gen := c.SetPending()
	c.Reset()
	if c.SetResult(gen, "1") {
		t.Fatalf("expected reset to drop in-flight result")
	}
	if c.Text() != Placeholder {
		t.Fatalf("expected placeholder after reset, got %q", c.Text())
	}
}
