package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/rajvimal/scorecard/internal/resume"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the résumé as plain text or markdown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		render, _ := cmd.Flags().GetBool("render")
		outPath, _ := cmd.Flags().GetString("output")

		r, err := loadResume()
		if err != nil {
			return err
		}

		var doc string
		switch format {
		case "text", "txt":
			doc = resume.PlainText(r)
		case "markdown", "md":
			doc = resume.Markdown(r)
			if render {
				doc, err = renderMarkdown(doc)
				if err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("unknown format %q (want text or markdown)", format)
		}

		if outPath == "" {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc)
			return err
		}
		if err := os.WriteFile(outPath, []byte(doc+"\n"), 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outPath)
		return nil
	},
}

func renderMarkdown(md string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

func init() {
	exportCmd.Flags().StringP("format", "f", "text", "Export format: text or markdown")
	exportCmd.Flags().Bool("render", false, "Render markdown for the terminal")
	exportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
}
