// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package styles

import (
	"testing"

	"github.com/shayne/agentcmd/internal/display"
)

func TestDefaultStyles(t *testing.T) {
	s := DefaultStyles()
	if s.Brand.Render("x") == "" {
		t.Fatal("expected Brand to render")
	}
	if s.Muted.Render("x") == "" {
		t.Fatal("expected Muted to render")
	}
}

func TestEnabledHonorsNoColor(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "1")
	if Enabled() {
		t.Fatal("expected NO_COLOR to disable styles")
	}
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "dumb")
	if Enabled() {
		t.Fatal("expected dumb terminal to disable styles")
	}
}

func TestPlainStylesRenderVerbatim(t *testing.T) {
	s := New(false)
	text := "❌ Error: boom"
	for _, phase := range []display.Phase{display.PhaseIdle, display.PhasePending, display.PhaseSucceeded, display.PhaseFailed} {
		if got := s.ForPhase(phase).Render(text); got != text {
			t.Fatalf("phase %s rendered %q", phase, got)
		}
	}
}

func TestOutputStyleIndentsOnlyWhenEnabled(t *testing.T) {
	if got := New(true).Output.GetPaddingLeft(); got != 1 {
		t.Fatalf("expected output padding 1, got %d", got)
	}
	if got := New(false).Output.GetPaddingLeft(); got != 0 {
		t.Fatalf("expected no output padding, got %d", got)
	}
}
