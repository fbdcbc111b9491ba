package cmd

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rajvimal/scorecard/internal/contact"
	"github.com/rajvimal/scorecard/internal/output"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send the player an offer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := contact.NewForm()
		if err := runContactForm(&f); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}

		p := output.New()
		err := contact.NewSimulatedSubmitter(log.Logger).Submit(cmd.Context(), f)
		if fe, ok := contact.AsFieldErrors(err); ok {
			for field, msg := range fe {
				p.Error("%s: %s", field, msg)
			}
			return err
		}
		if err != nil {
			return err
		}
		p.Success("Offer sent: %s", f.Summary())
		return nil
	},
}

// fieldCheck adapts one field of Form.Validate to a huh validator.
func fieldCheck(f *contact.Form, field string, set func(*contact.Form, string)) func(string) error {
	return func(s string) error {
		trial := *f
		set(&trial, s)
		if fe, ok := contact.AsFieldErrors(trial.Validate()); ok {
			if msg, bad := fe[field]; bad {
				return errors.New(msg)
			}
		}
		return nil
	}
}

func runContactForm(f *contact.Form) error {
	offers := huh.NewOptions(contact.OfferTypes...)
	locations := huh.NewOptions(contact.Locations...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Company").
				Validate(fieldCheck(f, "company", func(p *contact.Form, s string) { p.Company = s })).
				Value(&f.Company),
			huh.NewInput().
				Title("Your name").
				Validate(fieldCheck(f, "name", func(p *contact.Form, s string) { p.Name = s })).
				Value(&f.Name),
			huh.NewInput().
				Title("Email").
				Validate(fieldCheck(f, "email", func(p *contact.Form, s string) { p.Email = s })).
				Value(&f.Email),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Position").
				Options(offers...).
				Value(&f.OfferType),
			huh.NewSelect[string]().
				Title("Location").
				Options(locations...).
				Value(&f.Location),
			huh.NewText().
				Title("Message").
				Description(fmt.Sprintf("Optional, up to %d characters", contact.MaxMessageLen)).
				CharLimit(contact.MaxMessageLen).
				Validate(func(s string) error {
					if utf8.RuneCountInString(s) > contact.MaxMessageLen {
						return fmt.Errorf("max %d chars", contact.MaxMessageLen)
					}
					return nil
				}).
				Value(&f.Message),
		),
	).Run()
}
