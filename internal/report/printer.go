// Package report prints careers, matches, learning paths and export results as
// boxed plain-text summaries for the CLI.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/careerpath/internal/export"
	"github.com/jonathan/careerpath/internal/logger"
	"github.com/jonathan/careerpath/internal/onboarding"
	"github.com/jonathan/careerpath/internal/types"
	"github.com/jonathan/careerpath/internal/views"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes boxed summaries.
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

	for _, line := range strings.Split(content, "\n") {
		if len([]rune(line)) > boxWidth-4 {
			line = logger.Truncate(line, boxWidth-7)
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	for _, it := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", it)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintMatches outputs the scored careers of an interest match.
func (p *Printer) PrintMatches(matches []types.ScoredCareer) {
	if len(matches) == 0 {
		return
	}

	var sb strings.Builder
	for i, m := range matches {
		fmt.Fprintf(&sb, "%d. %s", i+1, m.Title)
		if badge := onboarding.MatchBadge(m.Score); badge != "" {
			fmt.Fprintf(&sb, " (%s)", badge)
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "   %s · %s demand\n", m.SalaryRange, m.Demand)
		if len(m.Skills) > 0 {
			fmt.Fprintf(&sb, "   Skills: %s\n", strings.Join(m.Skills[:min(len(m.Skills), maxItemsToShow)], ", "))
		}
	}

	p.printBox("CAREER MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCareers outputs the career path catalog, one line per path.
func (p *Printer) PrintCareers(paths []types.CareerPath) {
	if len(paths) == 0 {
		return
	}

	var sb strings.Builder
	for _, c := range paths {
		fmt.Fprintf(&sb, "%-16s %s\n", c.ID, c.Title)
		fmt.Fprintf(&sb, "%-16s %s · %s demand\n", "", c.SalaryRange, c.Demand)
	}

	p.printBox("CAREER PATHS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCareer outputs a career detail page.
func (p *Printer) PrintCareer(page views.CareerPage) {
	var sb strings.Builder
	if !page.Requested {
		sb.WriteString("(unknown career, showing the default path)\n\n")
	}
	fmt.Fprintf(&sb, "Salary:   %s\n", page.SalaryRange)
	fmt.Fprintf(&sb, "Demand:   %s\n", page.Demand)
	if page.GrowthRate != "" {
		fmt.Fprintf(&sb, "Growth:   %s\n", page.GrowthRate)
	}
	sb.WriteString("\n")
	writeList(&sb, "Skills", page.Skills, maxItemsToShow)
	writeList(&sb, "Top companies", page.TopCompanies, views.TopCompanies)

	p.printBox(strings.ToUpper(page.Title), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLearning outputs a learning path with per-module progress.
func (p *Printer) PrintLearning(page views.LearningPage) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall progress: %d%% (%d/%d topics)\n\n", page.TotalProgress, page.CompletedTopics, page.TotalTopics)
	for _, m := range page.Modules {
		fmt.Fprintf(&sb, "%d. %s [%s] %d%%\n", m.ID, m.Title, m.Duration, m.Progress)
		fmt.Fprintf(&sb, "   %s\n", views.ModuleAction(m))
	}

	p.printBox(strings.ToUpper(page.Title)+" LEARNING PATH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumes outputs resume list rows with their status.
func (p *Printer) PrintResumes(rows []types.ResumeSummary) {
	if len(rows) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&sb, "%s (v%d)\n", r.Title, r.Version)
		fmt.Fprintf(&sb, "   %s · score %d · %s · %s\n", r.Career, r.Score, r.Status, r.LastUpdated)
	}

	p.printBox("RESUMES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExport outputs where an exported resume went and which sections it holds.
func (p *Printer) PrintExport(res *export.Result) {
	if res == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "File:     %s\n", res.Filename)
	fmt.Fprintf(&sb, "Format:   %s\n", res.Kind)
	if res.Location != "" {
		fmt.Fprintf(&sb, "Saved to: %s\n", res.Location)
	}
	if res.Fallback {
		sb.WriteString("Printing was unavailable; saved the HTML version instead.\n")
	}
	sb.WriteString("\n")
	writeList(&sb, "Sections", res.Sections, len(res.Sections))

	p.printBox("RESUME EXPORT", strings.TrimSuffix(sb.String(), "\n"))
}
