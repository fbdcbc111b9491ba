package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rajvimal/scorecard/internal/ui/theme"
)

// Field is a labelled bubbles/textinput with an inline error.
type Field struct {
	Label string
	Model textinput.Model
	Err   string
}

// NewField creates a blurred field.
func NewField(label, placeholder string, limit int) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	return Field{Label: label, Model: ti}
}

// Focus focuses the field and returns the cursor blink command.
func (f *Field) Focus() tea.Cmd {
	return f.Model.Focus()
}

// Blur removes focus.
func (f *Field) Blur() {
	f.Model.Blur()
}

// Update forwards msg to the input. Typing clears the error.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok && f.Model.Focused() {
		f.Err = ""
	}
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// View renders label, input and error.
func (f Field) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(f.Label)
	if f.Err != "" {
		label += "  " + lipgloss.NewStyle().Foreground(theme.Error).Render(f.Err)
	}
	return label + "\n" + f.Model.View()
}

// Value returns the current input value.
func (f Field) Value() string {
	return f.Model.Value()
}
