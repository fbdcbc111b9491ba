package resume

import (
	"fmt"
	"regexp"
)

var metricRe = regexp.MustCompile(`\d+(?:\.\d+)?(?:%|\+|k|K| Lakh)?`)

// ExtractMetric returns the first number-like token in text, or
// "Massive Numbers" when there is none.
func ExtractMetric(text string) string {
	if m := metricRe.FindString(text); m != "" {
		return m
	}
	return "Massive Numbers"
}

func bullet(e Experience, i int) string {
	if i < len(e.Bullets) {
		return e.Bullets[i]
	}
	return ""
}

// Commentary builds the hot-takes ticker lines.
func Commentary(r *Resume) []string {
	var lines []string

	if e, ok := r.FindExperience("InfoEdge"); ok {
		lines = append(lines,
			fmt.Sprintf("BREAKING: Traffic at InfoEdge went up %s! Straight bussin. No cap.", ExtractMetric(bullet(e, 0))),
			fmt.Sprintf("POV: You optimize ATF placements and hit %s. CEO of SEO behavior.", ExtractMetric(bullet(e, 1))),
		)
	}
	if e, ok := r.FindExperience("Leverage"); ok {
		lines = append(lines,
			fmt.Sprintf("Leverage Edu Era: We dropped %s growth. We understood the assignment.", ExtractMetric(bullet(e, 0))),
			fmt.Sprintf("200+ Articles? %s really cooked at Leverage Edu.", r.FirstName()),
		)
	}
	if e, ok := r.FindExperience("Affinity"); ok {
		lines = append(lines,
			fmt.Sprintf("Affinity check: %s visits. Main character energy only.", ExtractMetric(bullet(e, 0))))
	}

	lines = append(lines,
		"Skills loading... GA4, SEMrush, Excel. It's giving hired.",
		fmt.Sprintf("%s: 8+ Years XP. The math is mathing.", r.Name),
	)
	return lines
}
