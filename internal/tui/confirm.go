// internal/tui/confirm.go
//
// Interactive overwrite confirmation. Follows The Elm Architecture like every
// bubbletea program: the model holds the question and the answer, Update
// reacts to key presses, View renders the prompt line.

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type confirmKeymap struct {
	Yes  key.Binding
	No   key.Binding
	Quit key.Binding
}

func defaultConfirmKeymap() confirmKeymap {
	return confirmKeymap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "overwrite"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "enter"),
			key.WithHelp("n", "keep the existing file"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "abort"),
		),
	}
}

type confirmModel struct {
	question string
	keys     confirmKeymap
	answer   bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.answer = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No), key.Matches(keyMsg, m.keys.Quit):
		m.answer = false
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	return fmt.Sprintf("%s %s ", promptStyle.Render(m.question), faintStyle.Render("[y/N]"))
}

// Confirm asks a yes/no question on the terminal. The default (enter, n,
// esc) is no, so an accidental keypress never overwrites anything.
func Confirm(question string) (bool, error) {
	p := tea.NewProgram(confirmModel{question: question, keys: defaultConfirmKeymap()})
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: confirm prompt: %w", err)
	}
	model, ok := final.(confirmModel)
	if !ok {
		return false, fmt.Errorf("tui: unexpected final model %T", final)
	}
	return model.answer, nil
}
