package parsing

import (
	"sort"
	"strings"
	"unicode"
)

// SectionMap maps a canonical section name to its concatenated content
// text. Lines classified as headers appear in no section's content.
type SectionMap map[string]string

// SectionHeaderless is the reserved bucket for text preceding the first
// recognized section header.
const SectionHeaderless = "headerless"

// canonicalHeaders are section names recognized verbatim.
var canonicalHeaders = map[string]bool{
	"experience":     true,
	"education":      true,
	"skills":         true,
	"projects":       true,
	"summary":        true,
	"objective":      true,
	"profile":        true,
	"about":          true,
	"internships":    true,
	"volunteering":   true,
	"leadership":     true,
	"certifications": true,
	"awards":         true,
	"languages":      true,
	"publications":   true,
	"interests":      true,
}

// headerAliases maps alternative section titles to canonical names.
var headerAliases = map[string]string{
	"work experience":          "experience",
	"employment history":       "experience",
	"professional experience":  "experience",
	"work history":             "experience",
	"career history":           "experience",
	"relevant experience":      "experience",
	"professional background":  "experience",
	"academic background":      "education",
	"educational background":   "education",
	"academics":                "education",
	"qualifications":           "education",
	"technical skills":         "skills",
	"core competencies":        "skills",
	"competencies":             "skills",
	"expertise":                "skills",
	"technologies":             "skills",
	"technical proficiencies":  "skills",
	"tools & technologies":     "skills",
	"professional summary":     "summary",
	"career summary":           "summary",
	"professional profile":     "summary",
	"summary of qualifications": "summary",
	"about me":                 "summary",
	"career objective":         "objective",
	"internship":               "internships",
	"volunteer experience":     "volunteering",
	"volunteer work":           "volunteering",
	"volunteering experience":  "volunteering",
	"leadership experience":    "leadership",
	"leadership & activities":  "leadership",
	"certifications & licenses": "certifications",
	"honors & awards":          "awards",
}

// inlineLabels are short colon-terminated labels that live inside an
// experience entry's description and must never open a new section.
var inlineLabels = map[string]bool{
	"key responsibilities": true,
	"key technologies":     true,
	"key tools":            true,
	"key achievements":     true,
	"tech stack":           true,
	"technologies used":    true,
	"tools used":           true,
	"responsibilities":     true,
}

// aliasOrder holds all known titles longest-first so substring matching
// is deterministic.
var aliasOrder []string

func init() {
	for alias := range headerAliases {
		aliasOrder = append(aliasOrder, alias)
	}
	for name := range canonicalHeaders {
		aliasOrder = append(aliasOrder, name)
	}
	sort.Slice(aliasOrder, func(i, j int) bool {
		if len(aliasOrder[i]) != len(aliasOrder[j]) {
			return len(aliasOrder[i]) > len(aliasOrder[j])
		}
		return aliasOrder[i] < aliasOrder[j]
	})
}

// SplitSections assigns every input line to exactly one section. Text
// before the first recognized header lands in the "headerless" bucket.
func SplitSections(text string) SectionMap {
	sections := SectionMap{}
	buffers := map[string]*strings.Builder{}
	current := SectionHeaderless

	appendLine := func(name, line string) {
		b, ok := buffers[name]
		if !ok {
			b = &strings.Builder{}
			buffers[name] = b
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	for _, line := range strings.Split(text, "\n") {
		if name, ok := ClassifyHeader(line); ok {
			current = name
			if _, exists := buffers[current]; !exists {
				buffers[current] = &strings.Builder{}
			}
			continue
		}
		appendLine(current, line)
	}

	for name, b := range buffers {
		content := b.String()
		if name == SectionHeaderless && strings.TrimSpace(content) == "" {
			continue
		}
		sections[name] = content
	}
	return sections
}

// Names returns the section names present, sorted for deterministic
// reporting.
func (m SectionMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClassifyHeader reports whether a line is a section header and, if so,
// the canonical section it opens. Classification order: inline-label
// exclusion, exact/alias match, near-match on short mostly-alphabetic
// lines, colon-terminated lines with a known header prefix.
func ClassifyHeader(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}

	low := strings.ToLower(trimmed)
	stripped := strings.Trim(low, ": -"+Bullet)
	if stripped == "" {
		return "", false
	}

	// Sub-labels within an entry description are never section headers,
	// even though they look like short colon-terminated titles.
	if isInlineLabel(stripped) {
		return "", false
	}

	if canonicalHeaders[stripped] {
		return stripped, true
	}
	if canon, ok := headerAliases[stripped]; ok {
		return canon, true
	}

	// Near match: a short, mostly alphabetic line containing a known
	// header with only a few extra characters ("— Work Experience —").
	if len(stripped) <= 50 && mostlyAlphabetic(stripped) {
		for _, alias := range aliasOrder {
			if strings.Contains(stripped, alias) && len(stripped) < len(alias)+10 {
				return canonicalFor(alias), true
			}
		}
	}

	// "Professional Experience:" style, where the prefix names a section.
	if strings.HasSuffix(trimmed, ":") && len(trimmed) <= 80 {
		prefix := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(trimmed, ":")))
		for _, alias := range aliasOrder {
			if strings.Contains(prefix, alias) && len(prefix) < len(alias)+10 {
				return canonicalFor(alias), true
			}
		}
	}

	return "", false
}

func canonicalFor(alias string) string {
	if canon, ok := headerAliases[alias]; ok {
		return canon
	}
	return alias
}

func isInlineLabel(stripped string) bool {
	if strings.HasPrefix(stripped, "key ") {
		return true
	}
	return inlineLabels[stripped]
}

// mostlyAlphabetic reports whether at least 80% of the runes are letters,
// spaces, ampersands, or slashes.
func mostlyAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	total, good := 0, 0
	for _, r := range s {
		total++
		if unicode.IsLetter(r) || r == ' ' || r == '&' || r == '/' {
			good++
		}
	}
	return good*5 >= total*4
}
