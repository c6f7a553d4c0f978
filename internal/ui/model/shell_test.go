// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shayne/agentcmd/internal/agentstub"
	"github.com/shayne/agentcmd/internal/dispatch"
	"github.com/shayne/agentcmd/internal/display"
	"github.com/shayne/agentcmd/internal/ui/styles"
)

type fakeDispatcher struct {
	calls  []dispatch.Command
	result dispatch.Result
	err    error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, cmd dispatch.Command) (dispatch.Result, error) {
	f.calls = append(f.calls, cmd)
	return f.result, f.err
}

func newTestModel(backend Dispatcher) ShellModel {
	return NewShellModel(backend, Options{Endpoint: "http://agent.test/execute", Styles: styles.New(false)})
}

func typeLine(t *testing.T, m ShellModel, line string) ShellModel {
	t.Helper()
	m.input.SetValue(line)
	return m
}

func pressEnter(t *testing.T, m ShellModel) (ShellModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	um, ok := updated.(ShellModel)
	if !ok {
		t.Fatalf("unexpected model type %T", updated)
	}
	return um, cmd
}

func deliver(t *testing.T, m ShellModel, msg tea.Msg) ShellModel {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(ShellModel)
}

func TestShellStartsWithPlaceholder(t *testing.T) {
	m := newTestModel(&fakeDispatcher{})
	if got := m.Display(); got.Phase != display.PhaseIdle || got.Text != display.Placeholder {
		t.Fatalf("unexpected initial display: %+v", got)
	}
}

func TestShellEmptyInputWarnsWithoutDispatch(t *testing.T) {
	for _, input := range []string{"", "   ", "\t"} {
		backend := &fakeDispatcher{}
		m := typeLine(t, newTestModel(backend), input)
		before := m.input.Value()
		m, cmd := pressEnter(t, m)
		if cmd != nil {
			t.Fatalf("input %q: expected no dispatch command", input)
		}
		if len(backend.calls) != 0 {
			t.Fatalf("input %q: expected no network call", input)
		}
		if got := m.Display().Text; got != "⚠️ Please enter a command." {
			t.Fatalf("input %q: display = %q", input, got)
		}
		if m.input.Value() != before {
			t.Fatalf("input %q: field changed to %q", input, m.input.Value())
		}
	}
}

func TestShellScenarioAgainstStubEndpoint(t *testing.T) {
	stub := agentstub.New(agentstub.Reply{Body: `{"claude_output":{"ok":true}}`})
	srv := stub.Start()
	defer srv.Close()

	m := typeLine(t, newTestModel(dispatch.NewClient(agentstub.URL(srv))), "  hello  ")
	m, cmd := pressEnter(t, m)
	if cmd == nil {
		t.Fatalf("expected dispatch command")
	}
	if got := m.Display(); got.Phase != display.PhasePending || got.Text != "Sending..." {
		t.Fatalf("expected pending display, got %+v", got)
	}
	if len(stub.Requests()) != 0 {
		t.Fatalf("request sent before the command ran")
	}

	m = deliver(t, m, cmd())

	requests := stub.Requests()
	if len(requests) != 1 || string(requests[0].Body) != `{"text":"hello"}` {
		t.Fatalf("unexpected requests: %+v", requests)
	}
	want := "Claude API response:\n{\n  \"ok\": true\n}"
	if got := m.Display().Text; got != want {
		t.Fatalf("display = %q, want %q", got, want)
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared after success, got %q", m.input.Value())
	}
	if m.InFlight() != 0 {
		t.Fatalf("in flight = %d", m.InFlight())
	}
	if !strings.Contains(m.View(), `"ok": true`) {
		t.Fatalf("view missing result:\n%s", m.View())
	}
}

func TestShellFallbackResponse(t *testing.T) {
	stub := agentstub.New(agentstub.Reply{Body: `{"response":"done"}`})
	srv := stub.Start()
	defer srv.Close()

	m := typeLine(t, newTestModel(dispatch.NewClient(agentstub.URL(srv))), "status")
	m, cmd := pressEnter(t, m)
	m = deliver(t, m, cmd())
	if got := m.Display().Text; got != "Claude API response:\n\"done\"" {
		t.Fatalf("display = %q", got)
	}
}

func TestShellTransportErrorKeepsInput(t *testing.T) {
	backend := &fakeDispatcher{err: &dispatch.TransportError{Err: errors.New("timeout awaiting response headers")}}
	m := typeLine(t, newTestModel(backend), "status")
	m, cmd := pressEnter(t, m)
	m = deliver(t, m, cmd())

	if got := m.Display().Text; got != "❌ Error: timeout awaiting response headers" {
		t.Fatalf("display = %q", got)
	}
	if m.Display().Phase != display.PhaseFailed {
		t.Fatalf("phase = %s", m.Display().Phase)
	}
	if m.input.Value() != "status" {
		t.Fatalf("expected input kept after error, got %q", m.input.Value())
	}
}

func TestShellLastSubmissionWins(t *testing.T) {
	backend := &fakeDispatcher{}
	m := typeLine(t, newTestModel(backend), "first")
	m, firstCmd := pressEnter(t, m)
	m = typeLine(t, m, "second")
	m, secondCmd := pressEnter(t, m)
	if m.InFlight() != 2 {
		t.Fatalf("in flight = %d", m.InFlight())
	}

	backend.result = dispatch.Result{Response: dispatch.Response{Kind: dispatch.KindFallback, Value: []byte(`"second"`)}}
	m = deliver(t, m, secondCmd())
	backend.result = dispatch.Result{Response: dispatch.Response{Kind: dispatch.KindFallback, Value: []byte(`"first"`)}}
	m = deliver(t, m, firstCmd())

	if got := m.Display().Text; got != "Claude API response:\n\"second\"" {
		t.Fatalf("stale result applied: %q", got)
	}
	if m.InFlight() != 0 {
		t.Fatalf("in flight = %d", m.InFlight())
	}
	if len(backend.calls) != 2 || backend.calls[0].Text != "first" || backend.calls[1].Text != "second" {
		t.Fatalf("unexpected calls: %+v", backend.calls)
	}
}

func TestShellCopyResolvedText(t *testing.T) {
	var copied string
	backend := &fakeDispatcher{result: dispatch.Result{Response: dispatch.Response{Kind: dispatch.KindKnown, Value: []byte(`1`)}}}
	m := NewShellModel(backend, Options{Styles: styles.New(false), Copy: func(text string) error {
		copied = text
		return nil
	}})

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if cmd != nil {
		t.Fatalf("expected no copy before a result")
	}
	m = updated.(ShellModel)

	m = typeLine(t, m, "count")
	m, sendCmd := pressEnter(t, m)
	m = deliver(t, m, sendCmd())

	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if cmd == nil {
		t.Fatalf("expected copy command")
	}
	m = deliver(t, updated.(ShellModel), cmd())
	if copied != "Claude API response:\n1" {
		t.Fatalf("copied = %q", copied)
	}
	if !strings.Contains(m.View(), "copied") {
		t.Fatalf("expected copy note in view")
	}
}

func TestShellCtrlLResetsDisplay(t *testing.T) {
	backend := &fakeDispatcher{}
	m := typeLine(t, newTestModel(backend), "status")
	m, cmd := pressEnter(t, m)
	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	m = deliver(t, m, cmd())
	if got := m.Display(); got.Phase != display.PhaseIdle || got.Text != display.Placeholder {
		t.Fatalf("expected placeholder after clear, got %+v", got)
	}
}

func TestShellCtrlCClearsThenQuits(t *testing.T) {
	m := typeLine(t, newTestModel(&fakeDispatcher{}), "half typed")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(ShellModel)
	if cmd != nil || m.Quitting() {
		t.Fatalf("expected first ctrl+c to only clear input")
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared, got %q", m.input.Value())
	}
	updated, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = updated.(ShellModel)
	if cmd == nil || !m.Quitting() {
		t.Fatalf("expected second ctrl+c to quit")
	}
}

func TestShellResizeClampsOutput(t *testing.T) {
	m := newTestModel(&fakeDispatcher{})
	m = deliver(t, m, tea.WindowSizeMsg{Width: 40, Height: 4})
	if m.output.Height != 3 {
		t.Fatalf("output height = %d", m.output.Height)
	}
	if m.output.Width != 40 {
		t.Fatalf("output width = %d", m.output.Width)
	}
	if m.input.Width < 10 {
		t.Fatalf("input width = %d", m.input.Width)
	}
}

func TestShellViewShowsPendingSpinnerLine(t *testing.T) {
	m := typeLine(t, newTestModel(&fakeDispatcher{}), "status")
	m, _ = pressEnter(t, m)
	view := m.View()
	if !strings.Contains(view, "Sending...") {
		t.Fatalf("expected pending text in view:\n%s", view)
	}
	if !strings.HasPrefix(view, "agentcmd  endpoint=http://agent.test/execute") {
		t.Fatalf("unexpected header:\n%s", view)
	}
}

func TestShellResultScrollsIntoViewOnce(t *testing.T) {
	items := make([]string, 40)
	for i := range items {
		items[i] = `"line"`
	}
	body := `{"claude_output":[` + strings.Join(items, ",") + `]}`
	stub := agentstub.New(agentstub.Reply{Body: body})
	srv := stub.Start()
	defer srv.Close()

	m := newTestModel(dispatch.NewClient(agentstub.URL(srv)))
	m = deliver(t, m, tea.WindowSizeMsg{Width: 80, Height: 12})
	m = typeLine(t, m, "list")
	m, cmd := pressEnter(t, m)
	m = deliver(t, m, cmd())
	if m.output.YOffset != 0 {
		t.Fatalf("expected result at top, offset %d", m.output.YOffset)
	}

	m = deliver(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	scrolled := m.output.YOffset
	if scrolled == 0 {
		t.Fatalf("expected page down to scroll")
	}
	m = deliver(t, m, copyResultMsg{})
	if m.output.YOffset != scrolled {
		t.Fatalf("offset moved from %d to %d without a new result", scrolled, m.output.YOffset)
	}
}

func TestShellOutputUsesOutputStyle(t *testing.T) {
	plain := NewShellModel(&fakeDispatcher{}, Options{Styles: styles.New(false)})
	if !strings.Contains(plain.View(), "\n"+display.Placeholder) {
		t.Fatalf("expected unindented placeholder:\n%s", plain.View())
	}
	themed := NewShellModel(&fakeDispatcher{}, Options{Styles: styles.New(true)})
	if !strings.Contains(themed.output.View(), " "+display.Placeholder) {
		t.Fatalf("expected indented placeholder:\n%s", themed.output.View())
	}
}
