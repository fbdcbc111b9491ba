package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rajvimal/scorecard/internal/output"
	"github.com/rajvimal/scorecard/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Run the third umpire review without the TUI",
	Long: `review plays the review script headlessly and prints each stage as it
happens, followed by the decision. Narration and cues play unless --mute
is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mute, _ := cmd.Flags().GetBool("mute")
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

		// Observers run under the sequencer's lock. The hand-off blocks
		// until the loop below takes the event or has returned.
		events := make(chan review.Event, 16)
		done := make(chan struct{})
		observe := observer(events, done)

		seq, err := buildSequencer(variant, r, buildAnalyzer(ctx, st.EventRepo()), engine, review.WithObserver(observe))
		if err != nil {
			return err
		}
		defer seq.Close()
		defer close(done)

		p := output.New()
		script := seq.Script()
		seq.Start(ctx)

		for ev := range events {
			p.Trace(ev, script)
			switch ev.Kind {
			case review.EventResult:
				return p.Feedback(ev.Session.Result)
			case review.EventError:
				return ev.Session.Err
			case review.EventClosed:
				return nil
			}
		}
		return nil
	},
}

// observer forwards events to ch, giving up once done is closed.
func observer(ch chan<- review.Event, done <-chan struct{}) review.Observer {
	return func(ev review.Event) {
		select {
		case ch <- ev:
		case <-done:
		}
	}
}

func init() {
	reviewCmd.Flags().String("variant", "", "Review variant: broadcast or quick (default from config)")
	reviewCmd.Flags().Bool("mute", false, "Disable sound and narration")
}
