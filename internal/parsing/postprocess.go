package parsing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/resume-parser/internal/types"
)

// projectNoiseMarkers flag dateless entries that describe side projects
// or repositories rather than employment.
var projectNoiseMarkers = []string{
	"github.com", "gitlab.com", "bitbucket.org",
	"university project", "academic project", "personal project",
	"school project", "course project", "capstone project",
}

// fullTimeExempt marks roles excluded from the overlap check; concurrent
// internships and contract work are normal.
var fullTimeExempt = []string{"intern", "contract", "freelance", "part-time", "part time"}

// Postprocess applies the cross-entry consistency passes to a parse
// result, in a fixed order: field cleanup, project-noise removal, dedupe,
// sorting, promotion splitting, near-duplicate collapse, overlap
// warnings, and skill dedupe. It mutates and returns its argument, and is
// idempotent on already-clean input.
func Postprocess(r *types.ResumeParseResult) *types.ResumeParseResult {
	if r == nil {
		return types.Empty()
	}

	cleanFields(r)
	r.Experience = dropProjectNoise(r.Experience)
	r.Experience = dedupeExperience(r.Experience)
	r.Education = dedupeEducation(r.Education)
	sortExperience(r.Experience)
	sortEducation(r.Education)
	r.Experience = splitPromotions(r.Experience)
	r.Experience = collapseNearDuplicates(r.Experience)
	r.Meta.Warnings = appendOverlapWarnings(r.Meta.Warnings, r.Experience)
	r.Skills = dedupeSkills(r.Skills)
	return r
}

// cleanFields nulls blank strings everywhere except the personal
// address/city/country fields, which stay empty strings so downstream
// merges overwrite stale values.
func cleanFields(r *types.ResumeParseResult) {
	blankToNil := func(p **string) {
		if *p != nil && strings.TrimSpace(**p) == "" {
			*p = nil
		}
	}

	blankToNil(&r.Personal.FirstName)
	blankToNil(&r.Personal.LastName)
	blankToNil(&r.Personal.Email)
	blankToNil(&r.Personal.PhoneNumber)
	r.Personal.Address = strings.TrimSpace(r.Personal.Address)
	r.Personal.City = strings.TrimSpace(r.Personal.City)
	r.Personal.Country = strings.TrimSpace(r.Personal.Country)
	blankToNil(&r.ProfessionalSummary)

	for i := range r.Experience {
		e := &r.Experience[i]
		blankToNil(&e.JobTitle)
		blankToNil(&e.Employer)
		blankToNil(&e.City)
		blankToNil(&e.StartDate)
		blankToNil(&e.EndDate)
		blankToNil(&e.Description)
	}
	for i := range r.Education {
		e := &r.Education[i]
		blankToNil(&e.SchoolName)
		blankToNil(&e.Degree)
		blankToNil(&e.City)
		blankToNil(&e.StartDate)
		blankToNil(&e.EndDate)
		blankToNil(&e.Description)
	}
}

// dropProjectNoise removes dateless entries whose title or employer looks
// like a repository link or a school project rather than a job.
func dropProjectNoise(entries []types.ExperienceEntry) []types.ExperienceEntry {
	kept := entries[:0]
	for _, e := range entries {
		if e.StartDate == nil && e.EndDate == nil && !e.IsCurrent && isProjectNoise(e) {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

func isProjectNoise(e types.ExperienceEntry) bool {
	text := strings.ToLower(types.StringValue(e.JobTitle) + " " + types.StringValue(e.Employer))
	for _, marker := range projectNoiseMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

func experienceKey(e types.ExperienceEntry) string {
	return strings.ToLower(strings.Join([]string{
		types.StringValue(e.JobTitle),
		types.StringValue(e.Employer),
		types.StringValue(e.StartDate),
		types.StringValue(e.EndDate),
	}, "\x00"))
}

func educationKey(e types.EducationEntry) string {
	return strings.ToLower(strings.Join([]string{
		types.StringValue(e.SchoolName),
		types.StringValue(e.Degree),
		types.StringValue(e.StartDate),
		types.StringValue(e.EndDate),
	}, "\x00"))
}

func dedupeExperience(entries []types.ExperienceEntry) []types.ExperienceEntry {
	seen := map[string]bool{}
	kept := entries[:0]
	for _, e := range entries {
		key := experienceKey(e)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, e)
	}
	return kept
}

func dedupeEducation(entries []types.EducationEntry) []types.EducationEntry {
	seen := map[string]bool{}
	kept := entries[:0]
	for _, e := range entries {
		key := educationKey(e)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, e)
	}
	return kept
}

// sortExperience orders current roles first, then by descending start
// date, tie-breaking on descending end date. Unparseable dates sort last.
func sortExperience(entries []types.ExperienceEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsCurrent != b.IsCurrent {
			return a.IsCurrent
		}
		as, aok := ParseDateLoose(types.StringValue(a.StartDate))
		bs, bok := ParseDateLoose(types.StringValue(b.StartDate))
		if aok != bok {
			return aok
		}
		if aok && !as.Equal(bs) {
			return as.After(bs)
		}
		ae, aeok := ParseDateLoose(types.StringValue(a.EndDate))
		be, beok := ParseDateLoose(types.StringValue(b.EndDate))
		if aeok != beok {
			return aeok
		}
		if aeok {
			return ae.After(be)
		}
		return false
	})
}

// sortEducation orders by descending end date, then descending start date.
func sortEducation(entries []types.EducationEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		ae, aok := ParseDateLoose(types.StringValue(a.EndDate))
		be, bok := ParseDateLoose(types.StringValue(b.EndDate))
		if aok != bok {
			return aok
		}
		if aok && !ae.Equal(be) {
			return ae.After(be)
		}
		as, asok := ParseDateLoose(types.StringValue(a.StartDate))
		bs, bsok := ParseDateLoose(types.StringValue(b.StartDate))
		if asok != bsok {
			return asok
		}
		if asok {
			return as.After(bs)
		}
		return false
	})
}

// splitPromotions expands a title naming several roles joined by an arrow
// or slash into one entry per role. All split entries share employer and
// dates; every entry after the first carries isPromotion.
func splitPromotions(entries []types.ExperienceEntry) []types.ExperienceEntry {
	out := make([]types.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		titles := splitPromotionTitle(types.StringValue(e.JobTitle))
		if len(titles) < 2 {
			out = append(out, e)
			continue
		}
		for i, title := range titles {
			c := e.Clone()
			t := title
			c.JobTitle = &t
			c.IsPromotion = i > 0
			out = append(out, c)
		}
	}
	return out
}

func splitPromotionTitle(title string) []string {
	if title == "" {
		return nil
	}
	s := strings.ReplaceAll(title, "->", "→")
	s = strings.ReplaceAll(s, "/", "→")
	parts := strings.Split(s, "→")
	titles := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

// collapseNearDuplicates merges entries that share a title and employer
// and whose descriptions overlap almost entirely, keeping the first.
func collapseNearDuplicates(entries []types.ExperienceEntry) []types.ExperienceEntry {
	kept := make([]types.ExperienceEntry, 0, len(entries))
	for _, e := range entries {
		dup := false
		for _, k := range kept {
			if !strings.EqualFold(types.StringValue(e.JobTitle), types.StringValue(k.JobTitle)) ||
				!strings.EqualFold(types.StringValue(e.Employer), types.StringValue(k.Employer)) {
				continue
			}
			if e.IsPromotion != k.IsPromotion {
				continue
			}
			if descriptionJaccard(e.Description, k.Description) >= 0.8 {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, e)
		}
	}
	return kept
}

// descriptionJaccard computes token-set overlap between two descriptions.
// Two nil descriptions are identical; one nil and one non-nil are not.
func descriptionJaccard(a, b *string) float64 {
	if a == nil && b == nil {
		return 1
	}
	if a == nil || b == nil {
		return 0
	}
	sa := tokenSet(*a)
	sb := tokenSet(*b)
	if len(sa) == 0 && len(sb) == 0 {
		return 1
	}
	inter := 0
	for tok := range sa {
		if sb[tok] {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".,;:()•-")
		if tok != "" {
			set[tok] = true
		}
	}
	return set
}

// appendOverlapWarnings surfaces intersecting active ranges between two
// full-time roles. Warnings are informational; entries are never changed.
func appendOverlapWarnings(warnings []string, entries []types.ExperienceEntry) []string {
	type span struct {
		idx        int
		start, end time.Time
	}
	now := time.Now().UTC()

	spans := make([]span, 0, len(entries))
	for i, e := range entries {
		if !isFullTime(e) || e.IsPromotion {
			continue
		}
		start, ok := ParseDateLoose(types.StringValue(e.StartDate))
		if !ok {
			continue
		}
		end := now
		if !e.IsCurrent {
			parsed, ok := ParseDateLoose(types.StringValue(e.EndDate))
			if !ok {
				continue
			}
			end = parsed
		}
		spans = append(spans, span{idx: i, start: start, end: end})
	}

	exists := map[string]bool{}
	for _, w := range warnings {
		exists[w] = true
	}
	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			if a.start.After(b.end) || b.start.After(a.end) {
				continue
			}
			w := overlapWarning(entries[a.idx], entries[b.idx])
			if !exists[w] {
				exists[w] = true
				warnings = append(warnings, w)
			}
		}
	}
	return warnings
}

func isFullTime(e types.ExperienceEntry) bool {
	if e.ExperienceType != types.ExperienceProfessional {
		return false
	}
	if e.ExperienceCategory != nil || e.IsSelfEmployed {
		return false
	}
	text := strings.ToLower(types.StringValue(e.JobTitle))
	for _, kw := range fullTimeExempt {
		if strings.Contains(text, kw) {
			return false
		}
	}
	return true
}

func overlapWarning(a, b types.ExperienceEntry) string {
	return fmt.Sprintf("overlapping full-time roles: %q at %q and %q at %q",
		types.StringValue(a.JobTitle), types.StringValue(a.Employer),
		types.StringValue(b.JobTitle), types.StringValue(b.Employer))
}

// dedupeSkills drops case-insensitive repeats, keeping first-seen order.
func dedupeSkills(skills []types.Skill) []types.Skill {
	seen := map[string]bool{}
	kept := skills[:0]
	for _, s := range skills {
		key := strings.ToLower(strings.TrimSpace(s.SkillName))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, s)
	}
	return kept
}
