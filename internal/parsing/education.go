package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

// schoolKeywords identify institution lines that open a new entry.
var schoolKeywords = []string{
	"university", "college", "institute", "school", "academy",
	"polytechnic", "université", "universidad", "conservatory",
}

// degreeKeywords identify lines naming a degree or program.
var degreeKeywords = []string{
	"bachelor", "master", "doctorate", "phd", "ph.d", "mba",
	"associate", "diploma", "certificate", "b.tech", "m.tech",
	"undergraduate", "graduate", "licence", "licenciatura",
}

// reDegreeAbbrev matches B.S., M.S., B.A., BSc, MSc, BEng style
// abbreviations at the start of a line.
var reDegreeAbbrev = regexp.MustCompile(`(?i)^(b\.?\s?(s|a|sc|eng|tech|e)|m\.?\s?(s|a|sc|eng|tech|e)|ph\.?\s?d)\b`)

// descriptionKeywords mark GPA/honors/coursework lines that belong in the
// entry description rather than any identity field.
var descriptionKeywords = []string{
	"gpa", "honors", "honours", "dean's list", "coursework", "thesis",
	"relevant courses", "activities", "cum laude", "scholarship", "minor in",
}

// reExpectedGrad matches "Expected Graduation: 2026" phrasings.
var reExpectedGrad = regexp.MustCompile(`(?i)expected\s+(?:graduation|completion)\s*:?\s*((?:19|20)\d{2})`)

// ParseEducation extracts degree entries from an education-like section.
// A school-keyword line opens a new entry; degree, city, date, and
// description lines fill the open entry until the next school line.
func ParseEducation(sectionText string) []types.EducationEntry {
	if strings.TrimSpace(sectionText) == "" {
		return []types.EducationEntry{}
	}

	entries := []types.EducationEntry{}
	var b *educationBuilder

	// An entry flushed because another school line follows is kept only
	// when it carries more than the bare school name; the final entry is
	// kept under the plain minimality rule.
	flush := func(requireSubstance bool) {
		if b == nil {
			return
		}
		if requireSubstance && !b.hasSubstance() {
			b = nil
			return
		}
		if e, ok := b.finalize(); ok {
			entries = append(entries, e)
		}
		b = nil
	}

	for _, raw := range strings.Split(sectionText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if isSchoolLine(line) {
			// Degree-first layouts put "B.S. in X" above the school; the
			// institution line then completes the open entry instead of
			// starting a new one.
			if b != nil && b.school == "" {
				b.fillFromSchoolLine(line)
				continue
			}
			flush(true)
			b = &educationBuilder{}
			b.fillFromSchoolLine(line)
			continue
		}
		if b == nil {
			b = &educationBuilder{}
		}

		if m := reExpectedGrad.FindStringSubmatch(line); m != nil {
			b.endDate = m[1]
			continue
		}

		if dr := ExtractDateRange(line); !dr.IsZero() {
			b.applyDateRange(dr)
			residue := StripDateTokens(line)
			if residue != "" {
				b.fillIdentity(residue)
			}
			continue
		}

		if tokens := FindDateTokens(line); len(tokens) > 0 {
			// A single isolated token is assumed to be the graduation
			// date unless the end is already known.
			b.applyLoneDate(tokens[0])
			residue := StripDateTokens(line)
			if residue != "" {
				b.fillIdentity(residue)
			}
			continue
		}

		// A present marker without any date token still marks the program
		// ongoing ("Currently enrolled", a bare "In progress / present").
		if rePresent.MatchString(line) {
			b.ongoing = true
			if residue := StripDateTokens(line); residue != "" {
				b.fillIdentity(residue)
			}
			continue
		}

		if isBulletLine(line) || isEduDescriptionLine(line) {
			b.desc = append(b.desc, line)
			continue
		}

		b.fillIdentity(line)
	}
	flush(false)
	return entries
}

// educationBuilder accumulates one degree entry between school-line
// boundaries.
type educationBuilder struct {
	school    string
	degree    string
	city      string
	startDate string
	endDate   string
	ongoing   bool
	desc      []string
}

func isSchoolLine(line string) bool {
	low := strings.ToLower(line)
	for _, kw := range schoolKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

func isDegreeLine(line string) bool {
	low := strings.ToLower(line)
	for _, kw := range degreeKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return reDegreeAbbrev.MatchString(strings.TrimSpace(line))
}

func isEduDescriptionLine(line string) bool {
	low := strings.ToLower(line)
	for _, kw := range descriptionKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// fillFromSchoolLine takes the school name and, when present, a trailing
// location or embedded date range from the institution line.
func (b *educationBuilder) fillFromSchoolLine(line string) {
	if dr := ExtractDateRange(line); !dr.IsZero() {
		b.applyDateRange(dr)
		line = StripDateTokens(line)
	} else if tokens := FindDateTokens(line); len(tokens) > 0 {
		b.applyLoneDate(tokens[0])
		line = StripDateTokens(line)
	}

	if segs := splitPipe(line); len(segs) > 0 {
		b.school = cleanHeaderValue(segs[0])
		for _, seg := range segs[1:] {
			b.fillIdentity(seg)
		}
		return
	}

	// "Stanford University, Stanford, CA"
	if parts := strings.SplitN(line, ",", 2); len(parts) == 2 {
		tail := strings.TrimSpace(parts[1])
		if c, ok := matchLocation(tail); ok {
			b.school = cleanHeaderValue(parts[0])
			b.city = c
			return
		}
	}
	b.school = cleanHeaderValue(line)
}

// fillIdentity routes a non-date, non-bullet line to the first field it
// fits: degree, city, then description.
func (b *educationBuilder) fillIdentity(line string) {
	s := cleanHeaderValue(line)
	if s == "" {
		return
	}
	if b.degree == "" && isDegreeLine(s) {
		b.degree = s
		return
	}
	if b.city == "" {
		if c, ok := matchLocation(s); ok {
			b.city = c
			return
		}
	}
	if b.school == "" && isSchoolLine(s) {
		b.school = s
		return
	}
	b.desc = append(b.desc, s)
}

// hasSubstance reports whether the entry carries a degree, a date, or a
// description beyond the bare school name.
func (b *educationBuilder) hasSubstance() bool {
	return b.degree != "" || b.startDate != "" || b.endDate != "" ||
		b.ongoing || len(b.desc) > 0
}

func (b *educationBuilder) applyDateRange(dr DateRange) {
	if dr.Start != nil && b.startDate == "" {
		b.startDate = *dr.Start
	}
	if dr.End != nil && b.endDate == "" {
		b.endDate = *dr.End
	}
	if dr.IsCurrent {
		b.ongoing = true
	}
}

// applyLoneDate fills endDate first (a single token usually marks
// graduation), then startDate.
func (b *educationBuilder) applyLoneDate(token string) {
	if b.endDate == "" {
		b.endDate = token
		return
	}
	if b.startDate == "" {
		b.startDate = token
	}
}

// finalize builds the entry. An ongoing program has no end date. Entries
// carrying only a school name and nothing else are kept, entries with no
// fields at all are not.
func (b *educationBuilder) finalize() (types.EducationEntry, bool) {
	if b.ongoing {
		b.endDate = ""
	}
	if b.startDate != "" && b.endDate != "" {
		b.startDate, b.endDate = SwapIfReversed(b.startDate, b.endDate)
	}

	e := types.EducationEntry{
		SchoolName: types.StringPtr(b.school),
		Degree:     types.StringPtr(b.degree),
		StartDate:  types.StringPtr(b.startDate),
		EndDate:    types.StringPtr(b.endDate),
		City:       types.StringPtr(b.city),
	}
	if len(b.desc) > 0 {
		e.Description = types.StringPtr(strings.Join(b.desc, "\n"))
	}

	if e.SchoolName == nil && e.Degree == nil && e.StartDate == nil &&
		e.EndDate == nil && e.Description == nil {
		return types.EducationEntry{}, false
	}
	return e, true
}
