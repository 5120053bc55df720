package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-parser/internal/types"
)

// roleKeywords identify lines that name a job title.
var roleKeywords = []string{
	"developer", "engineer", "manager", "analyst", "intern", "consultant",
	"designer", "architect", "lead", "specialist", "coordinator",
	"director", "associate", "assistant", "administrator", "officer",
	"executive", "scientist", "researcher", "founder", "head of",
	"president", "accountant", "recruiter", "teacher", "professor",
	"technician", "strategist", "writer", "editor", "advisor",
}

// volunteerKeywords, internKeywords, and breakKeywords drive the
// experienceType classification.
var (
	volunteerKeywords = []string{"volunteer", "volunteering", "pro bono", "non-profit", "nonprofit"}
	internKeywords    = []string{"intern", "internship", "trainee", "co-op", "coop program", "apprentice"}
	breakKeywords     = []string{"career break", "sabbatical", "parental leave", "gap year", "career gap"}

	freelanceKeywords = []string{"freelance", "freelancer", "contract", "contractor", "consultant", "consulting", "self-employed", "self employed", "independent"}
	founderKeywords   = []string{"founder", "co-founder", "cofounder", "owner", "entrepreneur", "proprietor"}
)

// reLocationLine matches a City, Region[, Country] shaped string.
var reLocationLine = regexp.MustCompile(
	`^[A-Za-z][A-Za-z.'\- ]{1,40},\s*(?:[A-Za-z]{2,3}|[A-Za-z][A-Za-z.'\- ]{1,30})(?:,\s*[A-Za-z][A-Za-z.'\- ]{1,30})?$`)

// workModeTokens maps location-slot tokens to canonical work modes.
var workModeTokens = map[string]types.WorkMode{
	"remote":        types.WorkModeRemote,
	"fully remote":  types.WorkModeRemote,
	"wfh":           types.WorkModeRemote,
	"hybrid":        types.WorkModeHybrid,
	"on-site":       types.WorkModeOnSite,
	"onsite":        types.WorkModeOnSite,
	"on site":       types.WorkModeOnSite,
	"in-office":     types.WorkModeOnSite,
	"in office":     types.WorkModeOnSite,
	"office-based":  types.WorkModeOnSite,
}

// isRoleLine reports whether the line contains a job-title keyword.
func isRoleLine(line string) bool {
	low := strings.ToLower(line)
	for _, kw := range roleKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// isLocationLike reports whether the line looks like a place, either a
// City, Region shape or a bare work-mode token.
func isLocationLike(line string) bool {
	if reLocationLine.MatchString(strings.TrimSpace(line)) {
		return true
	}
	_, ok := workModeTokens[strings.ToLower(strings.TrimSpace(line))]
	return ok
}

// matchLocation extracts a city value from a line: the whole line when it
// is location-shaped, otherwise its trailing comma segments.
func matchLocation(line string) (string, bool) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), "."))
	if reLocationLine.MatchString(s) {
		return s, true
	}
	// Trailing "…, City, ST" on a longer line.
	parts := strings.Split(s, ",")
	if len(parts) >= 3 {
		tail := strings.TrimSpace(parts[len(parts)-2]) + ", " + strings.TrimSpace(parts[len(parts)-1])
		if reLocationLine.MatchString(tail) {
			return tail, true
		}
	}
	return "", false
}

// matchWorkMode finds a remote/hybrid/on-site token anywhere in the text.
func matchWorkMode(text string) (types.WorkMode, bool) {
	low := strings.ToLower(text)
	if mode, ok := workModeTokens[strings.TrimSpace(low)]; ok {
		return mode, true
	}
	switch {
	case containsWord(low, "remote"):
		return types.WorkModeRemote, true
	case containsWord(low, "hybrid"):
		return types.WorkModeHybrid, true
	case strings.Contains(low, "on-site") || strings.Contains(low, "onsite") || strings.Contains(low, "in-office"):
		return types.WorkModeOnSite, true
	}
	return "", false
}

func containsWord(s, word string) bool {
	idx := strings.Index(s, word)
	for idx >= 0 {
		before := idx == 0 || !isWordRune(rune(s[idx-1]))
		afterIdx := idx + len(word)
		after := afterIdx >= len(s) || !isWordRune(rune(s[afterIdx]))
		if before && after {
			return true
		}
		next := strings.Index(s[idx+1:], word)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isAllCapsShort matches short ALL-CAPS identity lines ("ACME CORP").
func isAllCapsShort(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" || len(s) > 40 {
		return false
	}
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// isEntryHeaderSignal reports whether a line conveys entry identity
// (company/title/location) rather than description prose. Such a line
// appearing inside a description block belongs to the next entry's
// header, not to the bullets above it.
func isEntryHeaderSignal(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" || len(s) > 80 || isBulletLine(s) {
		return false
	}
	if label, _ := classifyKeyLabel(s); label {
		return false
	}
	if strings.Contains(s, "|") {
		return true
	}
	if strings.Contains(s, " - ") {
		return true
	}
	if isAllCapsShort(s) {
		return true
	}
	if strings.Contains(s, ",") && isLocationLike(s) {
		return true
	}
	return isRoleLine(s)
}

// looksLikeCompanyLine accepts a short "Employer" or "Employer - tagline"
// line that is neither a location nor a role title.
func looksLikeCompanyLine(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" || len(s) > 60 {
		return false
	}
	if isRoleLine(s) || isLocationLike(s) || strings.Contains(s, "|") {
		return false
	}
	left := strings.TrimSpace(strings.Split(s, " - ")[0])
	if left == "" {
		return false
	}
	first, _ := firstRune(left)
	return unicode.IsUpper(first) || isAllCapsShort(left)
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

// cleanHeaderValue strips bullets, separators, and residual punctuation
// from an inferred header value.
func cleanHeaderValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, Bullet)
	s = strings.Trim(s, " \t-|,:;")
	return strings.TrimSpace(s)
}

// inferEmployer finds the employer in the header candidates. Pattern
// order: three-segment pipe line ("role | department | employer"), dash
// "Employer - tagline" (left side, only when not location- or
// role-like), then a comma-trailing-location line whose leading token is
// the company.
func inferEmployer(candidates []string) string {
	for _, line := range candidates {
		segs := splitPipe(line)
		if len(segs) >= 3 {
			last := segs[len(segs)-1]
			if !isLocationLike(last) && len(FindDateTokens(last)) == 0 {
				return cleanHeaderValue(last)
			}
		}
	}
	for _, line := range candidates {
		if !strings.Contains(line, " - ") {
			continue
		}
		parts := strings.SplitN(line, " - ", 2)
		left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if isLocationLike(left) {
			continue
		}
		if isRoleLine(left) {
			// "Role - Employer": the right side is the employer when it
			// is neither a role nor a location.
			if right != "" && !isRoleLine(right) && !isLocationLike(right) {
				return cleanHeaderValue(right)
			}
			continue
		}
		return cleanHeaderValue(left)
	}
	for _, line := range candidates {
		if _, ok := matchLocation(line); !ok {
			continue
		}
		head := strings.TrimSpace(strings.Split(line, ",")[0])
		if head == "" || isRoleLine(head) || reLocationLine.MatchString(line) {
			continue
		}
		return cleanHeaderValue(head)
	}
	return ""
}

// inferJobTitle finds the title: a pipe segment with a role keyword, a
// role-like left side of a dash line, or the first candidate line with a
// role keyword.
func inferJobTitle(candidates []string) string {
	for _, line := range candidates {
		segs := splitPipe(line)
		if len(segs) < 2 {
			continue
		}
		for _, seg := range segs {
			if isRoleLine(seg) {
				return cleanHeaderValue(seg)
			}
		}
	}
	for _, line := range candidates {
		if !strings.Contains(line, " - ") {
			continue
		}
		parts := strings.SplitN(line, " - ", 2)
		left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if isRoleLine(left) && !isRoleLine(right) {
			return cleanHeaderValue(left)
		}
	}
	for _, line := range candidates {
		if isRoleLine(line) && !strings.Contains(line, "|") {
			return cleanHeaderValue(line)
		}
	}
	return ""
}

// inferLocation finds the city and work mode among the candidates.
func inferLocation(candidates []string) (string, types.WorkMode) {
	city := ""
	var mode types.WorkMode
	for _, line := range candidates {
		if mode == "" {
			if wm, ok := matchWorkMode(line); ok {
				mode = wm
			}
		}
		if city == "" {
			if c, ok := matchLocation(line); ok {
				city = c
			} else {
				for _, seg := range splitPipe(line) {
					if c, ok := matchLocation(seg); ok {
						city = c
						break
					}
				}
			}
		}
	}
	return city, mode
}

func splitPipe(line string) []string {
	if !strings.Contains(line, "|") {
		return nil
	}
	raw := strings.Split(line, "|")
	segs := make([]string, 0, len(raw))
	for _, s := range raw {
		if t := strings.TrimSpace(s); t != "" {
			segs = append(segs, t)
		}
	}
	return segs
}

// classifyExperienceType derives the entry kind from the header text and
// title. Professional is the default.
func classifyExperienceType(headerText, jobTitle string) types.ExperienceType {
	low := strings.ToLower(headerText + " " + jobTitle)
	for _, kw := range breakKeywords {
		if strings.Contains(low, kw) {
			return types.ExperienceBreak
		}
	}
	for _, kw := range volunteerKeywords {
		if strings.Contains(low, kw) {
			return types.ExperienceVolunteer
		}
	}
	for _, kw := range internKeywords {
		if strings.Contains(low, kw) {
			return types.ExperienceInternship
		}
	}
	return types.ExperienceProfessional
}

// classifyEmploymentCategory detects freelance/self-employed roles from
// the title and employer text.
func classifyEmploymentCategory(jobTitle, employer string) (*types.ExperienceCategory, bool) {
	low := strings.ToLower(jobTitle + " " + employer)
	for _, kw := range freelanceKeywords {
		if strings.Contains(low, kw) {
			cat := types.CategoryFreelance
			return &cat, true
		}
	}
	for _, kw := range founderKeywords {
		if strings.Contains(low, kw) {
			return nil, true
		}
	}
	return nil, false
}
