// Package bubbletea implements the interactive save dialog in the terminal.
package bubbletea

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/mdclip"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Ensure Prompter implements mdclip.Prompter at compile time.
var _ mdclip.Prompter = (*Prompter)(nil)

// Prompter asks the user for a save path and overwrite confirmation.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading keys from in and drawing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// PromptPath shows an editable path prefilled with proposed. ok is false
// when the user cancels.
func (p *Prompter) PromptPath(ctx context.Context, proposed string) (string, bool, error) {
	final, err := p.run(ctx, NewPathModel(proposed))
	if err != nil {
		return "", false, err
	}
	m := final.(PathModel)
	return m.Value(), m.Accepted(), nil
}

// Confirm asks a yes/no question. Cancelling counts as no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	final, err := p.run(ctx, NewConfirmModel(question))
	if err != nil {
		return false, err
	}
	return final.(ConfirmModel).Confirmed(), nil
}

func (p *Prompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := prog.Run()
	if err != nil {
		return nil, fmt.Errorf("save dialog: %w", err)
	}
	return final, nil
}

// PathModel is a single-line path editor.
type PathModel struct {
	value    []rune
	accepted bool
	done     bool
}

// NewPathModel creates a PathModel prefilled with proposed.
func NewPathModel(proposed string) PathModel {
	return PathModel{value: []rune(proposed)}
}

// Value returns the edited path.
func (m PathModel) Value() string { return string(m.value) }

// Accepted reports whether the user confirmed the path.
func (m PathModel) Accepted() bool { return m.accepted }

// Init implements tea.Model
func (m PathModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m PathModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyEnter:
		m.accepted = strings.TrimSpace(m.Value()) != ""
		m.done = true
		return m, tea.Quit
	case tea.KeyEsc, tea.KeyCtrlC:
		m.done = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if len(m.value) > 0 {
			m.value = m.value[:len(m.value)-1]
		}
	case tea.KeyCtrlU:
		m.value = nil
	case tea.KeySpace:
		m.value = append(m.value, ' ')
	case tea.KeyRunes:
		m.value = append(m.value, key.Runes...)
	}

	return m, nil
}

// View implements tea.Model
func (m PathModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Save as"))
	b.WriteString("\n\n")
	b.WriteString(inputStyle.Render(m.Value() + "█"))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter: save • ctrl+u: clear • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// ConfirmModel is a yes/no question.
type ConfirmModel struct {
	question  string
	confirmed bool
	done      bool
}

// NewConfirmModel creates a ConfirmModel for question.
func NewConfirmModel(question string) ConfirmModel {
	return ConfirmModel{question: question}
}

// Confirmed reports whether the user answered yes.
func (m ConfirmModel) Confirmed() bool { return m.confirmed }

// Init implements tea.Model
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case "n", "N", "esc", "ctrl+c", "enter":
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model
func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}
	return titleStyle.Render(m.question) + " " + helpStyle.Render("[y/N]") + "\n"
}
