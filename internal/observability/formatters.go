// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/opportunity-matcher/internal/embeddings"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in short lists
	maxItemsToShow = 5
	// maxReasonsToShow limits the reasons printed under each match
	maxReasonsToShow = 3
)

// Printer handles formatted output
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
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, shorten(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// shorten truncates s to limit runes, ending with an ellipsis
func shorten(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// PrintProfile outputs a short summary of the learner profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("User:      %s\n", profile.ID))
	if profile.GradeLevel != "" {
		sb.WriteString(fmt.Sprintf("Grade:     %s\n", profile.GradeLevel))
	}
	if profile.School != "" {
		sb.WriteString(fmt.Sprintf("School:    %s\n", profile.School))
	}
	if profile.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", profile.Location))
	}

	if len(profile.Interests) > 0 {
		count := min(len(profile.Interests), maxItemsToShow)
		sb.WriteString(fmt.Sprintf("Interests: %s", strings.Join(profile.Interests[:count], ", ")))
		if len(profile.Interests) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf(" (+%d more)", len(profile.Interests)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs ranked matches with score, confidence and top reasons.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMatches(title string, matches []types.Match) {
	if len(matches) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO MATCHING OPPORTUNITIES")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d opportunities:\n\n", len(matches)))

	for i, m := range matches {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, m.Title))
		sb.WriteString(fmt.Sprintf("    Score: %.0f", m.Score))
		if m.Confidence != "" {
			sb.WriteString(fmt.Sprintf(" (%s confidence)", m.Confidence))
		}
		sb.WriteString("\n")
		if m.Organization != "" || m.Type != "" {
			sb.WriteString(fmt.Sprintf("    %s", m.Type))
			if m.Organization != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", m.Organization))
			}
			sb.WriteString("\n")
		}

		count := min(len(m.Reasons), maxReasonsToShow)
		for j := 0; j < count; j++ {
			sb.WriteString(fmt.Sprintf("    • %s\n", m.Reasons[j]))
		}
		if len(m.Reasons) > maxReasonsToShow {
			sb.WriteString(fmt.Sprintf("    ... and %d more\n", len(m.Reasons)-maxReasonsToShow))
		}
		if i < len(matches)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTopTerms outputs the highest weighted TF-IDF terms.
func (p *Printer) PrintTopTerms(title string, terms []embeddings.TermScore) {
	if len(terms) == 0 {
		return
	}

	var sb strings.Builder
	for i, term := range terms {
		sb.WriteString(fmt.Sprintf("%2d. %-30s %.4f\n", i+1, term.Term, term.Score))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}
