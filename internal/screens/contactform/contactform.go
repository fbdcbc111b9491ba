// Package contactform is the recruiter "sign the player" screen.
package contactform

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rajvimal/scorecard/internal/contact"
	"github.com/rajvimal/scorecard/internal/screen"
	"github.com/rajvimal/scorecard/internal/ui/components"
	"github.com/rajvimal/scorecard/internal/ui/layout"
	"github.com/rajvimal/scorecard/internal/ui/theme"
)

type status int

const (
	statusEditing status = iota
	statusSubmitting
	statusSent
	statusFailed
)

// focus order: four text fields, then the two choices
const (
	fieldCompany = iota
	fieldName
	fieldEmail
	fieldMessage
	fieldOffer
	fieldLocation
	fieldCount
)

type submitDoneMsg struct{ err error }

// ContactScreen collects and submits a contact.Form.
type ContactScreen struct {
	submitter contact.Submitter
	fields    []components.Field
	offer     components.Choice
	location  components.Choice
	focus     int
	status    status
	err       string
	sent      contact.Form
	spinner   spinner.Model
	cancel    context.CancelFunc
}

var _ screen.Screen = (*ContactScreen)(nil)
var _ screen.KeyHintProvider = (*ContactScreen)(nil)
var _ screen.Closer = (*ContactScreen)(nil)

// New creates the contact screen.
func New(submitter contact.Submitter) *ContactScreen {
	s := &ContactScreen{
		submitter: submitter,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	s.reset()
	return s
}

func (s *ContactScreen) reset() {
	s.fields = []components.Field{
		components.NewField("COMPANY", "Franchise name", 80),
		components.NewField("YOUR NAME", "Team manager", 80),
		components.NewField("EMAIL", "scout@franchise.com", 120),
		components.NewField("ADDITIONAL CLAUSES (OPTIONAL)", "We are looking for a key player to lead our SEO attack...", contact.MaxMessageLen),
	}
	s.offer = components.NewChoice("POSITION TYPE", contact.OfferTypes)
	s.location = components.NewChoice("LOCATION", contact.Locations)
	s.focus = fieldCompany
	s.status = statusEditing
	s.err = ""
}

func (s *ContactScreen) Init() tea.Cmd {
	return s.setFocus(fieldCompany)
}

func (s *ContactScreen) Title() string {
	return "Sign The Player"
}

func (s *ContactScreen) KeyHints() []layout.KeyHint {
	switch s.status {
	case statusSent, statusFailed:
		return []layout.KeyHint{
			{Key: "N", Description: "New offer"},
			{Key: "Esc", Description: "Back"},
		}
	case statusSubmitting:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←→", Description: "Change option"},
		{Key: "Ctrl+S", Description: "Send offer"},
		{Key: "Esc", Description: "Back"},
	}
}

// Close cancels an in-flight submission.
func (s *ContactScreen) Close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *ContactScreen) setFocus(i int) tea.Cmd {
	s.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range s.fields {
		if j == s.focus {
			cmd = s.fields[j].Focus()
		} else {
			s.fields[j].Blur()
		}
	}
	s.offer.Focused = s.focus == fieldOffer
	s.location.Focused = s.focus == fieldLocation
	return cmd
}

// Form returns the form as currently entered.
func (s *ContactScreen) Form() contact.Form {
	return contact.Form{
		Company:   strings.TrimSpace(s.fields[fieldCompany].Value()),
		Name:      strings.TrimSpace(s.fields[fieldName].Value()),
		Email:     strings.TrimSpace(s.fields[fieldEmail].Value()),
		Message:   s.fields[fieldMessage].Value(),
		OfferType: s.offer.Value(),
		Location:  s.location.Value(),
	}
}

func (s *ContactScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		if s.status != statusSubmitting {
			return s, nil
		}
		s.cancel = nil
		if msg.err != nil {
			s.status = statusFailed
			s.err = msg.err.Error()
			return s, nil
		}
		s.status = statusSent
		return s, nil

	case spinner.TickMsg:
		if s.status != statusSubmitting {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.focus < len(s.fields) {
		var cmd tea.Cmd
		s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ContactScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch s.status {
	case statusSubmitting:
		return s, nil
	case statusSent, statusFailed:
		if msg.String() == "n" {
			s.reset()
			return s, s.setFocus(fieldCompany)
		}
		return s, nil
	}

	switch msg.String() {
	case "tab", "down":
		return s, s.setFocus(s.focus + 1)
	case "shift+tab", "up":
		return s, s.setFocus(s.focus - 1)
	case "ctrl+s":
		return s, s.submit()
	case "enter":
		if s.focus == fieldCount-1 {
			return s, s.submit()
		}
		return s, s.setFocus(s.focus + 1)
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldOffer:
		s.offer, cmd = s.offer.Update(msg)
	case fieldLocation:
		s.location, cmd = s.location.Update(msg)
	default:
		s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	}
	return s, cmd
}

func (s *ContactScreen) submit() tea.Cmd {
	form := s.Form()
	if err := form.Validate(); err != nil {
		fe, _ := contact.AsFieldErrors(err)
		s.fields[fieldCompany].Err = fe["company"]
		s.fields[fieldName].Err = fe["name"]
		s.fields[fieldEmail].Err = fe["email"]
		s.fields[fieldMessage].Err = fe["message"]
		return nil
	}

	s.status = statusSubmitting
	s.sent = form
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	submitter := s.submitter
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		return submitDoneMsg{err: submitter.Submit(ctx, form)}
	})
}

func (s *ContactScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch s.status {
	case statusSubmitting:
		body = s.spinner.View() + " " + theme.Body.Render("Sending the contract to the dressing room...")
	case statusSent:
		body = theme.Good.Render("✓ CONTRACT RECEIVED") + "\n\n" +
			theme.Body.Render(s.sent.Summary()) + "\n\n" +
			theme.Hint.Render("Expect a reply before the next over.")
	case statusFailed:
		body = theme.Bad.Render("✗ TRANSFER FAILED") + "\n\n" +
			theme.Body.Render(s.err) + "\n\n" +
			theme.Hint.Render("press n to draft a new offer")
	default:
		rows := make([]string, 0, fieldCount+1)
		for _, f := range s.fields {
			rows = append(rows, f.View())
		}
		rows = append(rows, s.offer.View(), s.location.View())
		count := fmt.Sprintf("%d/%d", utf8.RuneCountInString(s.fields[fieldMessage].Value()), contact.MaxMessageLen)
		rows = append(rows, lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw-6).Align(lipgloss.Right).Render(count))
		body = strings.Join(rows, "\n\n")
	}
	return components.StadiumFrame(components.Card(body, cw), width, height)
}
