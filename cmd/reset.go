package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rajvimal/scorecard/internal/output"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the intro and tutorial so they play again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.FlagRepo().ClearAll(cmd.Context()); err != nil {
			return fmt.Errorf("clear flags: %w", err)
		}
		output.New().Success("Intro and tutorial will play on the next launch.")
		return nil
	},
}
