// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package display owns the single output region shown to the user.
package display

const (
	Placeholder  = "Ready. Type a command for the agent and press Enter."
	PendingText  = "Sending..."
	ResultHeader = "Claude API response:\n"
	EmptyWarning = "⚠️ Please enter a command."
	ErrorPrefix  = "❌ Error: "
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Resolved reports whether the phase is a terminal result of a submission.
func (p Phase) Resolved() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

type State struct {
	Phase Phase
	Text  string
}

// Controller is the only writer of the display State. Submissions are
// numbered; a completion is applied only if it belongs to the latest one.
type Controller struct {
	state      State
	generation uint64
}

func NewController() *Controller {
	return &Controller{state: State{Phase: PhaseIdle, Text: Placeholder}}
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Text() string {
	return c.state.Text
}

func (c *Controller) Generation() uint64 {
	return c.generation
}

// SetPending starts a new submission and returns its generation.
func (c *Controller) SetPending() uint64 {
	c.generation++
	c.state = State{Phase: PhasePending, Text: PendingText}
	return c.generation
}

// SetWarning shows the empty-input warning. It also supersedes any
// submission still in flight.
func (c *Controller) SetWarning() {
	c.generation++
	c.state = State{Phase: PhaseFailed, Text: EmptyWarning}
}

// SetResult applies a successful response rendered by pretty. It returns
// false when gen is stale.
func (c *Controller) SetResult(gen uint64, pretty string) bool {
	if gen != c.generation {
		return false
	}
	c.state = State{Phase: PhaseSucceeded, Text: ResultText(pretty)}
	return true
}

// SetError applies a failed dispatch. It returns false when gen is stale.
func (c *Controller) SetError(gen uint64, err error) bool {
	if gen != c.generation {
		return false
	}
	c.state = State{Phase: PhaseFailed, Text: ErrorText(err)}
	return true
}

// Reset returns the region to the placeholder and drops in-flight work.
func (c *Controller) Reset() {
	c.generation++
	c.state = State{Phase: PhaseIdle, Text: Placeholder}
}

func ResultText(pretty string) string {
	return ResultHeader + pretty
}

func ErrorText(err error) string {
	if err == nil {
		return ErrorPrefix + "unknown error"
	}
	return ErrorPrefix + err.Error()
}
