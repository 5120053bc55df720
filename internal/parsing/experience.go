package parsing

import (
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

// maxHeaderBuffer bounds the rolling buffer of non-bullet lines kept as
// header candidates for the next entry.
const maxHeaderBuffer = 5

// experienceSections lists the section buckets fed to the experience
// parser and the entry type each header implies when the entry text
// itself carries no type keyword.
var experienceSections = []struct {
	name        string
	impliedType types.ExperienceType
}{
	{"experience", types.ExperienceProfessional},
	{"internships", types.ExperienceInternship},
	{"volunteering", types.ExperienceVolunteer},
	{"leadership", types.ExperienceProfessional},
}

// ParseExperienceSections runs the experience parser over every
// experience-like bucket. Entries from an internships or volunteering
// section inherit that section's type unless their own text already
// classified them.
func ParseExperienceSections(sections SectionMap) []types.ExperienceEntry {
	entries := []types.ExperienceEntry{}
	for _, s := range experienceSections {
		parsed := ParseExperience(sections[s.name])
		for i := range parsed {
			if parsed[i].ExperienceType == types.ExperienceProfessional {
				parsed[i].ExperienceType = s.impliedType
			}
		}
		entries = append(entries, parsed...)
	}
	return entries
}

// ParseExperience extracts job entries from an experience-like section.
// Three independent strategies run over the same lines; the one yielding
// the most non-empty entries wins. The pipe-adjacency strategy is the
// most precise signal available and is preferred outright when it finds
// two or more entries.
func ParseExperience(sectionText string) []types.ExperienceEntry {
	if strings.TrimSpace(sectionText) == "" {
		return []types.ExperienceEntry{}
	}
	lines := strings.Split(sectionText, "\n")

	primary := scanEntries(lines)
	pipes := pipeAdjacencyEntries(lines)
	blocks := blockEntries(sectionText)

	if len(pipes) >= 2 {
		return pipes
	}
	best := primary
	if len(pipes) > len(best) {
		best = pipes
	}
	if len(blocks) > len(best) {
		best = blocks
	}
	if best == nil {
		return []types.ExperienceEntry{}
	}
	return best
}

// scanEntries is the primary single-pass line classifier. A line with a
// date range closes the current entry and opens the next one, seeding its
// header fields from the rolling buffer of preceding non-bullet lines
// plus the date line's own residue.
func scanEntries(lines []string) []types.ExperienceEntry {
	var entries []types.ExperienceEntry
	var b *entryBuilder
	var headerBuf []string
	techContinuation := false

	flush := func() {
		if b == nil {
			return
		}
		if e, ok := b.finalize(); ok {
			entries = append(entries, e)
		}
		b = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			techContinuation = false
			continue
		}

		if dr := ExtractDateRange(line); !dr.IsZero() {
			flush()
			techContinuation = false
			b = newEntryBuilder(dr)
			b.inferHeader(headerBuf, StripDateTokens(line))
			headerBuf = nil
			continue
		}

		if isBulletLine(line) {
			techContinuation = false
			if b != nil {
				b.appendDescription(line)
			}
			continue
		}

		if techContinuation {
			if b != nil && b.hasDescription() && isTechContinuation(line) {
				b.extendDescription(line)
				continue
			}
			techContinuation = false
		}

		if label, opensTech := classifyKeyLabel(line); label {
			if b != nil {
				b.appendDescription(line)
			}
			techContinuation = opensTech
			continue
		}

		if isEntryHeaderSignal(line) {
			// A header-looking line right after the date line still
			// belongs to the current entry; once the description has
			// started it is the next entry's header.
			if b != nil && !b.hasDescription() && b.fillFromHeaderLine(line) {
				continue
			}
			headerBuf = pushHeader(headerBuf, line)
			continue
		}

		if b != nil {
			b.appendDescription(line)
		} else {
			headerBuf = pushHeader(headerBuf, line)
		}
	}
	flush()
	return entries
}

func pushHeader(buf []string, line string) []string {
	buf = append(buf, line)
	if len(buf) > maxHeaderBuffer {
		buf = buf[len(buf)-maxHeaderBuffer:]
	}
	return buf
}

// entryBuilder accumulates one job entry while the scanner walks the
// section. It is finalized exactly once at the next boundary; the emitted
// entry is never mutated afterwards.
type entryBuilder struct {
	jobTitle   string
	employer   string
	city       string
	startDate  string
	endDate    string
	isCurrent  bool
	workMode   types.WorkMode
	headerText []string
	desc       []string
}

func newEntryBuilder(dr DateRange) *entryBuilder {
	b := &entryBuilder{}
	if dr.Start != nil {
		b.startDate = *dr.Start
	}
	if dr.End != nil {
		b.endDate = *dr.End
	}
	b.isCurrent = dr.IsCurrent
	return b
}

func (b *entryBuilder) hasDescription() bool {
	return len(b.desc) > 0
}

func (b *entryBuilder) appendDescription(line string) {
	b.desc = append(b.desc, line)
}

// extendDescription concatenates a wrapped continuation onto the last
// description line (comma lists broken across extraction lines).
func (b *entryBuilder) extendDescription(line string) {
	b.desc[len(b.desc)-1] = strings.TrimRight(b.desc[len(b.desc)-1], " ,") + " " + line
}

// inferHeader derives jobTitle, employer, city, and workMode from the
// buffered header lines plus the date line's residue. Per field, the
// first matching pattern wins; within a pattern the residue is inspected
// first, then buffered lines nearest-first.
func (b *entryBuilder) inferHeader(headerBuf []string, residue string) {
	candidates := make([]string, 0, len(headerBuf)+1)
	if residue != "" {
		candidates = append(candidates, residue)
	}
	for i := len(headerBuf) - 1; i >= 0; i-- {
		if s := strings.TrimSpace(headerBuf[i]); s != "" {
			candidates = append(candidates, s)
		}
	}
	b.headerText = candidates

	b.employer = inferEmployer(candidates)
	b.jobTitle = inferJobTitle(candidates)
	b.city, b.workMode = inferLocation(candidates)
}

// fillFromHeaderLine lets a header-shaped line that follows the date line
// fill still-missing fields of the current entry. Reports whether the
// line was consumed.
func (b *entryBuilder) fillFromHeaderLine(line string) bool {
	consumed := false

	if b.workMode == "" {
		if wm, ok := matchWorkMode(line); ok {
			b.workMode = wm
			consumed = true
		}
	}
	if b.city == "" {
		if city, ok := matchLocation(line); ok {
			b.city = city
			b.headerText = append(b.headerText, line)
			return true
		}
	}
	if b.jobTitle == "" && isRoleLine(line) && !strings.Contains(line, "|") {
		b.jobTitle = cleanHeaderValue(line)
		b.headerText = append(b.headerText, line)
		return true
	}
	if b.employer == "" && looksLikeCompanyLine(line) {
		b.employer = cleanHeaderValue(strings.Split(line, " - ")[0])
		b.headerText = append(b.headerText, line)
		return true
	}
	if consumed {
		b.headerText = append(b.headerText, line)
	}
	return consumed
}

// finalize builds the immutable entry, derives its classification, and
// applies the minimality filter: an entry carrying none of title,
// employer, dates, or description is discarded.
func (b *entryBuilder) finalize() (types.ExperienceEntry, bool) {
	e := types.ExperienceEntry{
		JobTitle:       types.StringPtr(b.jobTitle),
		Employer:       types.StringPtr(b.employer),
		City:           types.StringPtr(b.city),
		StartDate:      types.StringPtr(b.startDate),
		EndDate:        types.StringPtr(b.endDate),
		IsCurrent:      b.isCurrent,
		ExperienceType: types.ExperienceProfessional,
	}
	if b.workMode != "" {
		wm := b.workMode
		e.WorkMode = &wm
	}
	if len(b.desc) > 0 {
		e.Description = types.StringPtr(strings.Join(b.desc, "\n"))
	}

	header := strings.Join(b.headerText, " ")
	e.ExperienceType = classifyExperienceType(header, b.jobTitle)
	category, selfEmployed := classifyEmploymentCategory(b.jobTitle, b.employer)
	e.ExperienceCategory = category
	e.IsSelfEmployed = selfEmployed
	e.ConfidenceScore = confidenceScore(e)

	if e.JobTitle == nil && e.Employer == nil && e.StartDate == nil &&
		e.EndDate == nil && e.Description == nil {
		return types.ExperienceEntry{}, false
	}
	return e, true
}

// confidenceScore counts the populated key fields, 0-5. Downstream
// consumers use it as a data-quality signal.
func confidenceScore(e types.ExperienceEntry) int {
	score := 0
	if e.JobTitle != nil {
		score++
	}
	if e.Employer != nil {
		score++
	}
	if e.StartDate != nil {
		score++
	}
	if e.EndDate != nil || e.IsCurrent {
		score++
	}
	if e.Description != nil {
		score++
	}
	return score
}

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, Bullet) ||
		strings.HasPrefix(line, "- ") ||
		strings.HasPrefix(line, "* ") ||
		strings.HasPrefix(line, "→ ")
}

// classifyKeyLabel recognizes in-entry sub-labels. The second result
// reports whether the label opens the short-lived technology-list
// continuation mode.
func classifyKeyLabel(line string) (isLabel bool, opensTech bool) {
	low := strings.ToLower(strings.TrimSpace(line))
	for _, prefix := range []string{"key technologies", "key tools", "tech stack", "technologies used", "tools used"} {
		if strings.HasPrefix(low, prefix) {
			return true, true
		}
	}
	for _, prefix := range []string{"key responsibilities", "key achievements", "responsibilities:"} {
		if strings.HasPrefix(low, prefix) {
			return true, false
		}
	}
	return false, false
}

// isTechContinuation accepts short non-date, non-role, non-pipe lines as
// wrapped continuations of a technology list.
func isTechContinuation(line string) bool {
	if len(line) > 60 || strings.Contains(line, "|") {
		return false
	}
	if isRoleLine(line) {
		return false
	}
	if len(FindDateTokens(line)) > 0 {
		return false
	}
	if label, _ := classifyKeyLabel(line); label {
		return false
	}
	return true
}
