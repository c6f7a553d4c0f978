// Copyright (c) 2026 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shayne/agentcmd/internal/dispatch"
	"github.com/shayne/agentcmd/internal/display"
	"github.com/shayne/agentcmd/internal/ui/components"
	"github.com/shayne/agentcmd/internal/ui/render"
	"github.com/shayne/agentcmd/internal/ui/styles"
)

// Dispatcher performs one exchange with the agent endpoint.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd dispatch.Command) (dispatch.Result, error)
}

type Options struct {
	Endpoint string
	Styles   styles.Styles
	// Copy places text on the clipboard. Nil disables ctrl+y.
	Copy func(text string) error
}

// ShellModel is the interactive command shell: one input line and one
// display region.
type ShellModel struct {
	display  *display.Controller
	input    textinput.Model
	spin     spinner.Model
	output   viewport.Model
	styles   styles.Styles
	backend  Dispatcher
	endpoint string
	copyText func(string) error
	note     string
	inFlight int
	width    int
	height   int
	quit     bool
}

type dispatchResultMsg struct {
	gen    uint64
	text   string
	pretty string
	err    error
}

type copyResultMsg struct {
	err error
}

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header, blank, prompt, blank, footer
	chromeLines = 5
)

// NewShellModel constructs a shell that sends commands through backend.
func NewShellModel(backend Dispatcher, opts Options) ShellModel {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "Text John saying hello"
	input.Focus()
	input.CharLimit = 0
	input.Width = defaultWidth - components.PromptWidth() - 1

	spin := spinner.New()
	spin.Spinner = spinner.Spinner{Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}, FPS: 120 * time.Millisecond}

	m := ShellModel{
		display:  display.NewController(),
		input:    input,
		spin:     spin,
		output:   viewport.New(defaultWidth, defaultHeight-chromeLines),
		styles:   opts.Styles,
		backend:  backend,
		endpoint: opts.Endpoint,
		copyText: opts.Copy,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.syncOutput(false)
	return m
}

// Init starts the spinner and cursor blink.
func (m ShellModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, textinput.Blink)
}

// Update handles incoming messages.
func (m ShellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			// Match shell behavior: clear a pending line before exiting.
			if m.input.Value() != "" {
				m.input.SetValue("")
				return m, nil
			}
			m.quit = true
			return m, tea.Quit
		case tea.KeyCtrlD, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		case tea.KeyCtrlL:
			m.display.Reset()
			m.note = ""
			m.syncOutput(true)
			return m, tea.ClearScreen
		case tea.KeyCtrlY:
			return m, m.copyCmd()
		case tea.KeyEnter:
			m.note = ""
			return m, m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.output, cmd = m.output.Update(msg)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case dispatchResultMsg:
		m.resolve(msg)
		return m, nil
	case copyResultMsg:
		if msg.err != nil {
			m.note = "copy failed: " + msg.err.Error()
		} else {
			m.note = "copied"
		}
		return m, nil
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit validates the input line and, when non-empty, starts a dispatch.
// The returned command is the dispatch itself, nil for empty input.
func (m *ShellModel) submit() tea.Cmd {
	cmd, err := dispatch.NewCommand(m.input.Value())
	if err != nil {
		m.display.SetWarning()
		m.syncOutput(false)
		return nil
	}
	gen := m.display.SetPending()
	m.inFlight++
	m.syncOutput(false)
	return dispatchCmd(m.backend, gen, cmd)
}

func dispatchCmd(backend Dispatcher, gen uint64, cmd dispatch.Command) tea.Cmd {
	return func() tea.Msg {
		result, err := backend.Dispatch(context.Background(), cmd)
		if err != nil {
			return dispatchResultMsg{gen: gen, text: cmd.Text, err: err}
		}
		return dispatchResultMsg{gen: gen, text: cmd.Text, pretty: result.Pretty()}
	}
}

func (m *ShellModel) resolve(msg dispatchResultMsg) {
	if m.inFlight > 0 {
		m.inFlight--
	}
	var applied bool
	if msg.err != nil {
		applied = m.display.SetError(msg.gen, msg.err)
	} else {
		applied = m.display.SetResult(msg.gen, msg.pretty)
	}
	if !applied {
		return
	}
	if msg.err == nil && strings.TrimSpace(m.input.Value()) == msg.text {
		m.input.SetValue("")
	}
	m.syncOutput(true)
}

func (m ShellModel) copyCmd() tea.Cmd {
	state := m.display.State()
	if m.copyText == nil || !state.Phase.Resolved() {
		return nil
	}
	copyText := m.copyText
	text := state.Text
	return func() tea.Msg {
		return copyResultMsg{err: copyText(text)}
	}
}

// syncOutput refreshes the display region. scrollIntoView moves the view to
// the start of the content, used once when a result lands.
func (m *ShellModel) syncOutput(scrollIntoView bool) {
	state := m.display.State()
	style := m.styles.Output.Inherit(m.styles.ForPhase(state.Phase))
	if m.output.Width > 1 {
		style = style.Width(m.output.Width - 1)
	}
	m.output.SetContent(style.Render(state.Text))
	if scrollIntoView {
		m.output.GotoTop()
	}
}

func (m *ShellModel) resize(width, height int) {
	m.width = width
	m.height = height
	if width > 0 {
		m.input.Width = width - components.PromptWidth() - 1
		if m.input.Width < 10 {
			m.input.Width = 10
		}
		m.output.Width = width
	}
	if height > 0 {
		outputHeight := height - chromeLines
		if outputHeight < 3 {
			outputHeight = 3
		}
		m.output.Height = outputHeight
	}
	m.syncOutput(false)
}

// View renders the model.
func (m ShellModel) View() string {
	lines := []string{
		render.RenderHeader(m.endpoint, m.styles),
		"",
		components.PromptLine(m.styles, m.input.View()),
		"",
	}
	state := m.display.State()
	if state.Phase == display.PhasePending {
		lines = append(lines, m.spin.View()+" "+m.styles.Pending.Render(state.Text))
	} else {
		lines = append(lines, m.output.View())
	}
	footer := render.RenderKeyHints(render.ShellKeys, m.styles)
	if m.note != "" {
		footer += m.styles.Muted.Render("  " + m.note)
	}
	lines = append(lines, footer)
	return strings.Join(lines, "\n")
}

// Display returns the current display state.
func (m ShellModel) Display() display.State {
	return m.display.State()
}

// InFlight is the number of dispatches that have not reported back.
func (m ShellModel) InFlight() int {
	return m.inFlight
}

// Quitting reports whether the user asked to leave.
func (m ShellModel) Quitting() bool {
	return m.quit
}
