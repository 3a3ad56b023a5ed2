// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/pathfinder/internal/roadmap"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output of roadmap and comparison records
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	inner := boxWidth - 4
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to n runes. fmt's width counts bytes.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// writeList appends a bulleted list, showing at most limit items
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// source describes where a record came from
func source(rec roadmap.Record) string {
	if rec.AIGenerated() {
		return "AI generated"
	}
	return "curated"
}

// PrintRoadmap outputs a human-readable summary of a roadmap record.
// Records holding raw model text show that text instead of the fields.
func (p *Printer) PrintRoadmap(rec roadmap.Record) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:     %s\n", rec.Role()))
	sb.WriteString(fmt.Sprintf("Source:   %s\n", source(rec)))
	if v, ok := rec[roadmap.FieldDurationMonths]; ok {
		sb.WriteString(fmt.Sprintf("Duration: %v months\n", v))
	}
	if v, ok := rec[roadmap.FieldAvgSalaryUSD]; ok {
		sb.WriteString(fmt.Sprintf("Salary:   %v\n", v))
	}
	sb.WriteString("\n")

	if text, ok := rec.AIText(); ok {
		writeRawText(&sb, text, rec)
		p.printBox("ROADMAP", strings.TrimSuffix(sb.String(), "\n"))
		return
	}

	writeList(&sb, "Skills", rec.Strings(roadmap.FieldSkills), maxItemsToShow)

	courses := rec.Courses()
	titles := make([]string, 0, len(courses))
	for _, c := range courses {
		titles = append(titles, c.Title)
	}
	writeList(&sb, "Courses", titles, 3)

	p.printBox("ROADMAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintComparison outputs a human-readable summary of a comparison record.
func (p *Printer) PrintComparison(rec roadmap.Record) {
	if rec == nil {
		return
	}

	roleA, _ := rec[roadmap.FieldRoleA].(string)
	roleB, _ := rec[roadmap.FieldRoleB].(string)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s vs %s\n\n", roleA, roleB))

	if text, ok := rec.AIText(); ok {
		writeRawText(&sb, text, rec)
		p.printBox("ROLE COMPARISON", strings.TrimSuffix(sb.String(), "\n"))
		return
	}

	if summary, ok := rec[roadmap.FieldSummary].(string); ok && summary != "" {
		sb.WriteString(summary + "\n\n")
	}

	if rows, ok := rec[roadmap.FieldTable].([]any); ok && len(rows) > 0 {
		for _, row := range rows {
			m, ok := row.(map[string]any)
			if !ok {
				continue
			}
			sb.WriteString(fmt.Sprintf("%v\n", m["metric"]))
			sb.WriteString(fmt.Sprintf("  A: %v\n", m[roadmap.FieldRoleA]))
			sb.WriteString(fmt.Sprintf("  B: %v\n", m[roadmap.FieldRoleB]))
		}
		sb.WriteString("\n")
	}

	writeList(&sb, "Shared skills", rec.Strings(roadmap.FieldSkillsOverlap), maxItemsToShow)
	writeList(&sb, "Only "+roleA, rec.Strings(roadmap.FieldUniqueA), maxItemsToShow)
	writeList(&sb, "Only "+roleB, rec.Strings(roadmap.FieldUniqueB), maxItemsToShow)
	writeList(&sb, "Suggestions", rec.Strings(roadmap.FieldSuggestions), 3)

	p.printBox("ROLE COMPARISON", strings.TrimSuffix(sb.String(), "\n"))
}

// writeRawText writes unparsed model text, followed by the failure if any
func writeRawText(sb *strings.Builder, text string, rec roadmap.Record) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	count := min(len(lines), 10)
	for i := 0; i < count; i++ {
		sb.WriteString(lines[i] + "\n")
	}
	if len(lines) > count {
		sb.WriteString(fmt.Sprintf("... and %d more lines\n", len(lines)-count))
	}
	if errText, ok := rec[roadmap.FieldError].(string); ok {
		sb.WriteString(fmt.Sprintf("\n⚠ %s\n", errText))
	}
}
