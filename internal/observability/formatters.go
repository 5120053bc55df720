// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
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
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResult outputs a human-readable summary of a full parse.
func (p *Printer) PrintResult(result *types.ResumeParseResult) {
	if result == nil {
		return
	}
	p.PrintPersonal(&result.Personal)
	p.PrintExperience(result.Experience)
	p.PrintEducation(result.Education)
	p.PrintSkills(result.Skills)
	p.PrintMeta(&result.Meta)
}

// PrintPersonal outputs the extracted contact details.
func (p *Printer) PrintPersonal(personal *types.PersonalDetails) {
	if personal == nil {
		return
	}

	var sb strings.Builder
	name := strings.TrimSpace(types.StringValue(personal.FirstName) + " " + types.StringValue(personal.LastName))
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(name)))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", orDash(types.StringValue(personal.Email))))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", orDash(types.StringValue(personal.PhoneNumber))))

	location := personal.City
	if personal.Country != "" {
		location = strings.TrimPrefix(location+", "+personal.Country, ", ")
	}
	sb.WriteString(fmt.Sprintf("Location: %s", orDash(location)))

	p.printBox("PERSONAL DETAILS", sb.String())
}

// PrintExperience outputs the parsed job entries with confidence scores.
func (p *Printer) PrintExperience(entries []types.ExperienceEntry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d entries:\n\n", len(entries)))

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := entries[i]
		title := orDash(types.StringValue(e.JobTitle))
		employer := types.StringValue(e.Employer)
		if employer != "" {
			title += " @ " + employer
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))

		dates := types.StringValue(e.StartDate)
		switch {
		case e.IsCurrent:
			dates += " - Present"
		case e.EndDate != nil:
			dates += " - " + *e.EndDate
		}
		sb.WriteString(fmt.Sprintf("    %s  [confidence %d/5]\n", orDash(strings.TrimSpace(dates)), e.ConfidenceScore))

		if e.IsPromotion {
			sb.WriteString("    (promotion)\n")
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more entries", len(entries)-maxItemsToShow))
	}

	p.printBox("WORK EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEducation outputs the parsed degree entries.
func (p *Printer) PrintEducation(entries []types.EducationEntry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := entries[i]
		sb.WriteString(fmt.Sprintf("• %s\n", orDash(types.StringValue(e.SchoolName))))
		if e.Degree != nil {
			sb.WriteString(fmt.Sprintf("  %s\n", *e.Degree))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more entries", len(entries)-maxItemsToShow))
	}

	p.printBox("EDUCATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs the consolidated skill list on wrapped lines.
func (p *Printer) PrintSkills(skills []types.Skill) {
	if len(skills) == 0 {
		return
	}

	names := make([]string, 0, len(skills))
	for _, s := range skills {
		name := s.SkillName
		if s.ExperienceLevel != nil && !s.HideExperienceLevel {
			name += fmt.Sprintf(" (%s)", *s.ExperienceLevel)
		}
		names = append(names, name)
	}

	var sb strings.Builder
	line := ""
	for _, name := range names {
		if line != "" && len(line)+len(name)+2 > boxWidth-4 {
			sb.WriteString(line + "\n")
			line = ""
		}
		if line != "" {
			line += ", "
		}
		line += name
	}
	sb.WriteString(line)

	p.printBox(fmt.Sprintf("SKILLS (%d)", len(skills)), sb.String())
}

// PrintMeta outputs how the parse went, including warnings.
func (p *Printer) PrintMeta(meta *types.Meta) {
	if meta == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Parser:   %s\n", orDash(meta.Parser)))
	sb.WriteString(fmt.Sprintf("Sections: %s\n", orDash(strings.Join(meta.SectionsFound, ", "))))
	sb.WriteString(fmt.Sprintf("Partial:  %t", meta.Partial))

	if meta.FileType != "" {
		sb.WriteString(fmt.Sprintf("\nFile:     %s", meta.FileType))
		if meta.Pages != nil {
			sb.WriteString(fmt.Sprintf(" (%d pages)", *meta.Pages))
		}
	}
	if meta.LLMFailed {
		sb.WriteString("\n⚠ LLM parse failed, heuristic fallback used")
	}
	for _, w := range meta.Warnings {
		sb.WriteString(fmt.Sprintf("\n⚠ %s", w))
	}

	p.printBox("PARSE META", sb.String())
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
