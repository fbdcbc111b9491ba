// Package output prints the headless review trace and CLI messages.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/rajvimal/scorecard/internal/analysis"
	"github.com/rajvimal/scorecard/internal/review"
)

// Printer writes colored CLI output.
type Printer struct {
	Out    io.Writer
	ErrOut io.Writer
}

// New creates a Printer on stdout/stderr.
func New() *Printer {
	return &Printer{Out: os.Stdout, ErrOut: os.Stderr}
}

var (
	okMark   = color.New(color.FgHiGreen).Sprint("✓")
	warnMark = color.New(color.FgHiYellow).Sprint("!")
	errMark  = color.New(color.FgHiRed).Sprint("✗")
	dim      = color.New(color.Faint).SprintFunc()
	saffron  = color.New(color.FgHiYellow, color.Bold).SprintFunc()
	green    = color.New(color.FgHiGreen, color.Bold).SprintFunc()
	red      = color.New(color.FgHiRed, color.Bold).SprintFunc()
	cyan     = color.New(color.FgHiCyan).SprintFunc()
)

func (p *Printer) Success(format string, a ...any) {
	fmt.Fprintf(p.Out, "%s %s\n", okMark, fmt.Sprintf(format, a...))
}

func (p *Printer) Warning(format string, a ...any) {
	fmt.Fprintf(p.ErrOut, "%s %s\n", warnMark, fmt.Sprintf(format, a...))
}

func (p *Printer) Error(format string, a ...any) {
	fmt.Fprintf(p.ErrOut, "%s %s\n", errMark, fmt.Sprintf(format, a...))
}

// ScoreColor colors a score the way the result card does.
func ScoreColor(score float64) string {
	s := fmt.Sprintf("%.0f", score)
	switch {
	case score >= 80:
		return green(s)
	case score >= 50:
		return saffron(s)
	default:
		return red(s)
	}
}

// Elapsed formats an offset from the start of a review as "+4.50s".
func Elapsed(d time.Duration) string {
	return fmt.Sprintf("+%5.2fs", d.Seconds())
}

// Trace prints one line for a review event.
func (p *Printer) Trace(ev review.Event, script review.Script) {
	at := dim(Elapsed(ev.Elapsed))
	switch ev.Kind {
	case review.EventStage:
		fmt.Fprintf(p.Out, "%s  %-16s %s\n", at, cyan(string(ev.Session.Stage)), script.Title(ev.Session.Stage))
	case review.EventResult:
		label := "DECISION: HIRED"
		if ev.Session.Cached {
			label += " (earlier decision)"
		}
		fmt.Fprintf(p.Out, "%s  %-16s %s\n", at, green(string(review.StageResult)), label)
	case review.EventError:
		fmt.Fprintf(p.Out, "%s  %-16s %s\n", at, red(string(review.StageError)), ev.Session.ErrorMessage)
	case review.EventClosed:
		fmt.Fprintf(p.Out, "%s  %s\n", at, dim("review closed"))
	}
}

// Table creates a borderless tablewriter.
func (p *Printer) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(p.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}

// Feedback prints the score and a table of the feedback lists.
func (p *Printer) Feedback(fb *analysis.Feedback) error {
	fmt.Fprintf(p.Out, "\n%s %s/100\n\n", saffron("SCORE"), ScoreColor(fb.Score))

	table := p.Table([]string{"Section", "Note"})
	sections := []struct {
		name  string
		items []string
	}{
		{"Strengths", fb.Strengths},
		{"Growth plan", fb.GrowthAreas},
		{"Hiring signals", fb.Signals},
	}
	for _, sec := range sections {
		for i, item := range sec.items {
			name := sec.name
			if i > 0 {
				name = ""
			}
			if err := table.Append([]string{name, item}); err != nil {
				return err
			}
		}
	}
	return table.Render()
}
