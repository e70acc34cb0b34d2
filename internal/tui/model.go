package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adiwiguna/chatpdf/internal/client"
	"github.com/adiwiguna/chatpdf/internal/domain"
)

type modelsLoadedMsg struct{ err error }

type uploadDoneMsg struct{ err error }

type askDoneMsg struct{ err error }

type clearDoneMsg struct{ err error }

type exportDoneMsg struct {
	path string
	err  error
}

// Model is the Bubble Tea model for the terminal client. All session logic
// lives in the controller; the model only translates key presses into
// controller calls and renders the result.
type Model struct {
	ctrl     *client.Controller
	registry *client.ModelRegistry

	input      textinput.Model
	spinner    spinner.Model
	modelNames []string
	modelIdx   int
	notice     string
	width      int
}

// NewModel builds the initial TUI state around an already configured
// controller and model registry.
func NewModel(ctrl *client.Controller, registry *client.ModelRegistry) Model {
	input := textinput.New()
	input.Placeholder = "Ask a question about your documents"
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctrl:     ctrl,
		registry: registry,
		input:    input,
		spinner:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadModels(), m.spinner.Tick, textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil

	case modelsLoadedMsg:
		if msg.err != nil {
			m.notice = "could not load model list, using default"
			return m, nil
		}
		m.modelNames = m.registry.Names()
		return m, nil

	case uploadDoneMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
		} else {
			m.notice = fmt.Sprintf("documents processed, session %s", m.ctrl.SessionID())
		}
		return m, nil

	case askDoneMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
		}
		return m, nil

	case clearDoneMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
		} else {
			m.notice = "history cleared"
		}
		return m, nil

	case exportDoneMsg:
		switch {
		case msg.err != nil:
			m.notice = msg.err.Error()
		case msg.path == "":
			m.notice = "nothing to export yet"
		default:
			m.notice = "saved " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The confirmation modal captures everything until answered.
	if m.ctrl.PendingClear() {
		switch msg.String() {
		case "y", "Y":
			return m, m.confirmClear()
		case "n", "N", "esc":
			m.ctrl.CancelClear()
			m.notice = ""
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		question := strings.TrimSpace(m.input.Value())
		if question == "" {
			return m, nil
		}
		if m.ctrl.Status() != domain.StatusProcessed {
			m.notice = "process your documents first (ctrl+u)"
			return m, nil
		}
		if m.ctrl.Awaiting() {
			m.notice = "still answering the previous question"
			return m, nil
		}
		m.input.Reset()
		m.notice = ""
		return m, m.ask(question)

	case "ctrl+u":
		m.notice = ""
		return m, m.upload()

	case "ctrl+k":
		m.ctrl.RequestClear()
		if !m.ctrl.PendingClear() {
			m.notice = "nothing to clear"
		}
		return m, nil

	case "ctrl+e":
		return m, m.export()

	case "tab":
		if len(m.modelNames) > 0 {
			m.modelIdx = (m.modelIdx + 1) % len(m.modelNames)
			m.ctrl.SetModel(m.registry.Resolve(m.modelNames[m.modelIdx]))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ChatPDF"))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(m.statusLine()))
	b.WriteString("\n\n")

	for _, turn := range m.ctrl.Transcript() {
		if turn.Role == domain.RoleUser {
			b.WriteString(userStyle.Render("You: "))
		} else {
			b.WriteString(assistantStyle.Render("Assistant: "))
		}
		b.WriteString(turn.Content)
		b.WriteString("\n")
		if len(turn.Sources) > 0 {
			b.WriteString(sourceStyle.Render("  sources: " + strings.Join(turn.Sources, ", ")))
			b.WriteString("\n")
		}
	}

	if m.ctrl.Awaiting() || m.ctrl.Status() == domain.StatusProcessing {
		b.WriteString(m.spinner.View())
		if m.ctrl.Status() == domain.StatusProcessing {
			b.WriteString(" processing documents...")
		} else {
			b.WriteString(" thinking...")
		}
		b.WriteString("\n")
	}

	if m.ctrl.PendingClear() {
		b.WriteString("\n")
		b.WriteString(modalStyle.Render("Clear chat history? This cannot be undone.  [y/n]"))
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter ask · ctrl+u upload · tab model · ctrl+k clear · ctrl+e export · esc quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) statusLine() string {
	parts := []string{m.ctrl.Status().String(), "model " + m.ctrl.Model()}
	if files := m.ctrl.StagedFiles(); len(files) > 0 {
		parts = append(parts, fmt.Sprintf("%d file(s) staged", len(files)))
	}
	if id := m.ctrl.SessionID(); id != "" {
		parts = append(parts, "session "+id)
	}
	return strings.Join(parts, " · ")
}

func (m Model) loadModels() tea.Cmd {
	return func() tea.Msg {
		return modelsLoadedMsg{err: m.registry.Load(context.Background())}
	}
}

func (m Model) upload() tea.Cmd {
	return func() tea.Msg {
		return uploadDoneMsg{err: m.ctrl.Upload(context.Background())}
	}
}

func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		return askDoneMsg{err: m.ctrl.Ask(context.Background(), question)}
	}
}

func (m Model) confirmClear() tea.Cmd {
	return func() tea.Msg {
		return clearDoneMsg{err: m.ctrl.ConfirmClear(context.Background())}
	}
}

func (m Model) export() tea.Cmd {
	return func() tea.Msg {
		path, err := m.ctrl.Export(context.Background())
		return exportDoneMsg{path: path, err: err}
	}
}
