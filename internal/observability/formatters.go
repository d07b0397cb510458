// Package observability provides logging, metrics and formatted CLI output for the assessment service.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/revops-assessment/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the width of a full section score bar
	barWidth = 20
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// bar renders score/max as a fixed-width bar.
func bar(score, maxScore int) string {
	filled := 0
	if maxScore > 0 {
		filled = score * barWidth / maxScore
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// PrintScorecard outputs the tier, per-section bars and the strongest and weakest dimensions.
func (p *Printer) PrintScorecard(card *types.ScoreResponse) {
	if card == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total:  %d/%d (%d%%)\n", card.Scores.Total, card.MaxScore, card.Percent))
	sb.WriteString(fmt.Sprintf("Tier:   %s\n", card.Tier.Label))
	sb.WriteString("\n")

	for _, d := range card.Dimensions {
		sb.WriteString(fmt.Sprintf("%-14s %s %2d/%-2d\n", truncate(d.Title, 14), bar(d.Score, d.Max), d.Score, d.Max))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Strongest: %s (%d%%)\n", card.Strongest.Title, card.Strongest.Percent))
	sb.WriteString(fmt.Sprintf("Weakest:   %s (%d%%)", card.Weakest.Title, card.Weakest.Percent))

	p.printBox("REVOPS MATURITY SCORECARD", sb.String())
}

// PrintReport outputs the summary, risks and wins of a report.
func (p *Printer) PrintReport(report *types.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(wrap(report.Summary, boxWidth-4))
	sb.WriteString("\n\nRisks:\n")
	for _, r := range report.Risks {
		sb.WriteString(fmt.Sprintf("  ⚠ %s\n", r.Title))
		sb.WriteString(wrap(r.Desc, boxWidth-8, "    "))
		sb.WriteString("\n")
	}
	sb.WriteString("\nQuick wins:\n")
	for i, w := range report.Wins {
		sb.WriteString(fmt.Sprintf("  ✓ %s\n", w.Title))
		sb.WriteString(wrap(w.Desc, boxWidth-8, "    "))
		if i < len(report.Wins)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("ANALYSIS", sb.String())
}

// wrap breaks text on word boundaries so no line exceeds width runes.
func wrap(text string, width int, indent ...string) string {
	prefix := strings.Join(indent, "")
	var lines []string
	var line string
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case len([]rune(line))+1+len([]rune(word)) <= width:
			line += " " + word
		default:
			lines = append(lines, prefix+line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, prefix+line)
	}
	return strings.Join(lines, "\n")
}
