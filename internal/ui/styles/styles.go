// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/shayne/agentcmd/internal/display"
)

// Styles defines the semantic style set used by the shell.
type Styles struct {
	Enabled bool

	Brand       lipgloss.Style
	PromptArrow lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Muted       lipgloss.Style

	Idle    lipgloss.Style
	Pending lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Output  lipgloss.Style
}

// DefaultStyles returns styles for the current terminal environment.
func DefaultStyles() Styles {
	return New(Enabled())
}

// New returns the colored style set, or plain styles when !enabled.
func New(enabled bool) Styles {
	if !enabled {
		plain := lipgloss.NewStyle()
		return Styles{
			Brand:       plain,
			PromptArrow: plain,
			Label:       plain,
			Value:       plain,
			Muted:       plain,
			Idle:        plain,
			Pending:     plain,
			Success:     plain,
			Error:       plain,
			Output:      plain,
		}
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	return Styles{
		Enabled:     true,
		Brand:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		PromptArrow: muted,
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Value:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Muted:       muted,
		Idle:        muted,
		Pending:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Output:      lipgloss.NewStyle().PaddingLeft(1),
	}
}

// ForPhase picks the style for the display region.
func (s Styles) ForPhase(phase display.Phase) lipgloss.Style {
	switch phase {
	case display.PhasePending:
		return s.Pending
	case display.PhaseSucceeded:
		return s.Success
	case display.PhaseFailed:
		return s.Error
	default:
		return s.Idle
	}
}

// Enabled reports whether colors should be used.
func Enabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	termValue := os.Getenv("TERM")
	if termValue == "" || termValue == "dumb" {
		return false
	}
	return true
}
