// Package contact holds the recruiter contact form and its submission.
package contact

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// MaxMessageLen caps the optional message.
const MaxMessageLen = 500

// SubmitDelay is how long SimulatedSubmitter pretends to work.
const SubmitDelay = 2 * time.Second

var (
	OfferTypes = []string{"Full-time", "Freelance", "Consult"}
	Locations  = []string{"Remote", "Hybrid", "On-site", "Flexible"}
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form is a recruiter's offer.
type Form struct {
	Name      string
	Company   string
	Email     string
	Message   string
	OfferType string
	Location  string
}

// NewForm returns an empty form with the default offer type and location.
func NewForm() Form {
	return Form{OfferType: OfferTypes[0], Location: Locations[0]}
}

// FieldErrors maps a field name to its problem.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + fe[k]
	}
	return "invalid contact form: " + strings.Join(parts, "; ")
}

// Validate returns FieldErrors, or nil when the form can be sent.
func (f Form) Validate() error {
	fe := FieldErrors{}
	if utf8.RuneCountInString(f.Company) < 3 {
		fe["company"] = "Min 3 chars required"
	}
	if utf8.RuneCountInString(f.Name) < 2 {
		fe["name"] = "Min 2 chars required"
	}
	if !emailRe.MatchString(f.Email) {
		fe["email"] = "Invalid email address"
	}
	if utf8.RuneCountInString(f.Message) > MaxMessageLen {
		fe["message"] = fmt.Sprintf("Max %d chars", MaxMessageLen)
	}
	if f.OfferType != "" && !slices.Contains(OfferTypes, f.OfferType) {
		fe["offerType"] = "Unknown position type"
	}
	if f.Location != "" && !slices.Contains(Locations, f.Location) {
		fe["location"] = "Unknown location"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Summary is the one-line confirmation shown after sending.
func (f Form) Summary() string {
	return fmt.Sprintf("%s at %s: %s, %s", f.Name, f.Company, f.OfferType, f.Location)
}

// Submitter delivers a validated form.
type Submitter interface {
	Submit(ctx context.Context, f Form) error
}

// SimulatedSubmitter accepts every valid form after Delay.
type SimulatedSubmitter struct {
	Delay  time.Duration
	Logger zerolog.Logger
}

// NewSimulatedSubmitter returns a submitter using SubmitDelay.
func NewSimulatedSubmitter(logger zerolog.Logger) *SimulatedSubmitter {
	return &SimulatedSubmitter{Delay: SubmitDelay, Logger: logger}
}

func (s *SimulatedSubmitter) Submit(ctx context.Context, f Form) error {
	if err := f.Validate(); err != nil {
		return err
	}
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("submit contact form: %w", ctx.Err())
	case <-t.C:
	}
	s.Logger.Info().
		Str("company", f.Company).
		Str("offer_type", f.OfferType).
		Str("location", f.Location).
		Msg("contact form submitted")
	return nil
}

// AsFieldErrors extracts FieldErrors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	ok := errors.As(err, &fe)
	return fe, ok
}
