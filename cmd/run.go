package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rajvimal/scorecard/internal/app"
	"github.com/rajvimal/scorecard/internal/contact"
)

func init() {
	rootCmd.Flags().Bool("mute", false, "Disable sound and narration")
	rootCmd.Flags().Bool("skip-intro", false, "Start on the home screen")
	rootCmd.Flags().String("variant", "", "Review variant: broadcast or quick (default from config)")
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	mute, _ := cmd.Flags().GetBool("mute")
	skipIntro, _ := cmd.Flags().GetBool("skip-intro")
	variant, _ := cmd.Flags().GetString("variant")
	if variant == "" {
		variant = viper.GetString("review.variant")
	}

	r, err := loadResume()
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	engine := buildEngine(mute)
	defer engine.Close()

	seq, err := buildSequencer(variant, r, buildAnalyzer(ctx, st.EventRepo()), engine)
	if err != nil {
		return err
	}
	defer seq.Close()

	profileURL := viper.GetString("profile_url")
	if profileURL == "" {
		profileURL = r.Contact.LinkedIn
	}

	log.Info().Str("variant", variant).Bool("mute", mute).Msg("starting tui")
	return app.Run(app.Options{
		Resume:     r,
		Sequencer:  seq,
		Audio:      engine,
		Flags:      st.FlagRepo(),
		Submitter:  contact.NewSimulatedSubmitter(log.Logger),
		ProfileURL: profileURL,
		SkipIntro:  skipIntro,
	})
}
