package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/dogs/internal/confirm"
)

var (
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	choicesStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
)

// Model is a one-line confirmation prompt that accepts a single answer token.
type Model struct {
	question confirm.Question
	input    textinput.Model
	answer   confirm.Answer
	done     bool
	err      string
}

// NewModel creates a prompt for q.
func NewModel(q confirm.Question) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "n"
	in.CharLimit = 8
	in.Width = 10
	in.Focus()
	return Model{question: q, input: in}
}

// Answer returns the chosen answer and whether the prompt was completed.
func (m Model) Answer() (confirm.Answer, bool) {
	return m.answer, m.done
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.answer, m.done = confirm.Quit, true
			return m, tea.Quit
		case tea.KeyEnter:
			answer, err := confirm.ParseAnswer(m.input.Value(), m.question)
			if err != nil {
				m.err = fmt.Sprintf("Please answer one of %s.", m.question.Choices())
				m.input.Reset()
				return m, nil
			}
			m.answer, m.done = answer, true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.done {
		return fmt.Sprintf("%s %s\n", questionStyle.Render(m.question.Text), m.answer)
	}
	var b strings.Builder
	b.WriteString(questionStyle.Render(m.question.Text))
	b.WriteString(" ")
	b.WriteString(choicesStyle.Render(m.question.Choices()))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err))
	}
	return b.String()
}

// Prompter runs a bubbletea program per question on the given terminal.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

func (p Prompter) Ask(q confirm.Question) (confirm.Answer, error) {
	prog := tea.NewProgram(NewModel(q), tea.WithInput(p.In), tea.WithOutput(p.Out))
	final, err := prog.Run()
	if err != nil {
		return confirm.No, fmt.Errorf("prompt failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return confirm.No, nil
	}
	answer, done := m.Answer()
	if !done {
		return confirm.No, nil
	}
	return answer, nil
}
