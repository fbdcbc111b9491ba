package contactform

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajvimal/scorecard/internal/contact"
)

type stubSubmitter struct {
	got  []contact.Form
	err  error
	ctxs []context.Context
}

func (s *stubSubmitter) Submit(ctx context.Context, f contact.Form) error {
	s.got = append(s.got, f)
	s.ctxs = append(s.ctxs, ctx)
	return s.err
}

func typeText(s *ContactScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func fill(s *ContactScreen) {
	typeText(s, "Acme")
	s.Update(key(tea.KeyTab))
	typeText(s, "Priya")
	s.Update(key(tea.KeyTab))
	typeText(s, "priya@acme.io")
}

// runSubmit runs the submit half of the batch, skipping the spinner tick,
// and feeds the result back.
func runSubmit(t *testing.T, s *ContactScreen, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)
	s.Update(batch[1]())
}

func TestSubmitValidForm(t *testing.T) {
	sub := &stubSubmitter{}
	s := New(sub)
	s.Init()
	fill(s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	assert.Equal(t, statusSubmitting, s.status)
	assert.Contains(t, s.View(100, 40), "Sending the contract")

	runSubmit(t, s, cmd)
	require.Len(t, sub.got, 1)
	assert.Equal(t, contact.Form{
		Company:   "Acme",
		Name:      "Priya",
		Email:     "priya@acme.io",
		OfferType: "Full-time",
		Location:  "Remote",
	}, sub.got[0])
	assert.Equal(t, statusSent, s.status)
	assert.Contains(t, s.View(100, 40), "CONTRACT RECEIVED")

	s.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	assert.Equal(t, statusEditing, s.status)
	assert.Empty(t, s.Form().Company)
}

func TestInvalidFormShowsFieldErrors(t *testing.T) {
	sub := &stubSubmitter{}
	s := New(sub)
	s.Init()
	typeText(s, "AB")

	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	assert.Nil(t, cmd)
	assert.Equal(t, statusEditing, s.status)
	assert.Equal(t, "Min 3 chars required", s.fields[fieldCompany].Err)
	assert.Equal(t, "Min 2 chars required", s.fields[fieldName].Err)
	assert.Equal(t, "Invalid email address", s.fields[fieldEmail].Err)
	assert.Empty(t, sub.got)

	// Typing into the field clears its error.
	typeText(s, "C")
	assert.Empty(t, s.fields[fieldCompany].Err)
}

func TestChoicesCycle(t *testing.T) {
	s := New(&stubSubmitter{})
	s.Init()
	for range fieldOffer {
		s.Update(key(tea.KeyTab))
	}
	s.Update(key(tea.KeyRight))
	assert.Equal(t, "Freelance", s.Form().OfferType)

	s.Update(key(tea.KeyTab))
	s.Update(key(tea.KeyLeft))
	assert.Equal(t, "Flexible", s.Form().Location)

	// Tab wraps back to the first field.
	s.Update(key(tea.KeyTab))
	assert.Equal(t, fieldCompany, s.focus)
}

func TestSubmitFailure(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("network error")}
	s := New(sub)
	s.Init()
	fill(s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	runSubmit(t, s, cmd)
	assert.Equal(t, statusFailed, s.status)
	assert.Contains(t, s.View(100, 40), "network error")
}

func TestCloseCancelsSubmission(t *testing.T) {
	sub := &stubSubmitter{}
	s := New(sub)
	s.Init()
	fill(s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	s.Close()
	runSubmit(t, s, cmd)
	require.Len(t, sub.ctxs, 1)
	assert.Error(t, sub.ctxs[0].Err())
}

func TestLateResultIgnored(t *testing.T) {
	s := New(&stubSubmitter{})
	s.Update(submitDoneMsg{})
	assert.Equal(t, statusEditing, s.status)
}
