package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

// maxPersonalHeaderLines bounds how far down the document the location
// scan reaches; cities in the experience section must not leak into the
// contact block.
const maxPersonalHeaderLines = 8

var (
	reEmail = regexp.MustCompile(`\b[\w.+-]+@[\w.-]+\.[a-zA-Z]{2,}\b`)

	// phonePatterns are tried in order; the first match wins.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}[\s.-]?\d{3,4}[\s.-]?\d{3,4}[\s.-]?\d{4}`),
		regexp.MustCompile(`\(\d{3}\)[\s.-]?\d{3}[\s.-]?\d{4}`),
		regexp.MustCompile(`\d{3}[\s.-]?\d{3}[\s.-]?\d{4}`),
		regexp.MustCompile(`\+\d{10,15}`),
	}

	// reLocationSegment matches "City, Region[, Country]" at the end of a
	// contact segment.
	reLocationSegment = regexp.MustCompile(
		`([A-Za-z][A-Za-z.' \-]{1,40})\s*,\s*([A-Za-z]{2,3}|[A-Za-z][A-Za-z.' \-]{1,30})(?:\s*,\s*([A-Za-z][A-Za-z.' \-]{1,30}))?$`)

	reContactSplit = regexp.MustCompile(`[|•·]`)
)

// orgWords disqualify a header line from the location scan; institution
// names carry commas too.
var orgWords = []string{"university", "college", "institute", "school", "company", "services", "consulting"}

// ExtractPersonal pulls contact details from the resume text: the name
// from the first line, email and phone from anywhere, and city/country
// only from the top header lines. Address, city, and country come back as
// empty strings when unknown so downstream merges overwrite stale values.
func ExtractPersonal(text string) types.PersonalDetails {
	details := types.PersonalDetails{}
	if strings.TrimSpace(text) == "" {
		return details
	}

	var lines []string
	for _, ln := range strings.Split(text, "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			lines = append(lines, s)
		}
	}

	if len(lines) > 0 {
		first, last := splitName(lines[0])
		details.FirstName = types.StringPtr(first)
		details.LastName = types.StringPtr(last)
	}

	if m := reEmail.FindString(text); m != "" {
		details.Email = &m
	}
	for _, re := range phonePatterns {
		if m := strings.TrimSpace(re.FindString(text)); m != "" {
			details.PhoneNumber = &m
			break
		}
	}

	details.City, details.Country = headerLocation(lines)
	return details
}

// splitName accepts the first line as a name only when it is one to four
// purely alphabetic words.
func splitName(line string) (first, last string) {
	parts := strings.Fields(line)
	if len(parts) < 1 || len(parts) > 4 {
		return "", ""
	}
	for _, p := range parts {
		cleaned := strings.NewReplacer("-", "", "'", "", ".", "").Replace(p)
		if cleaned == "" || !isAlpha(cleaned) {
			return "", ""
		}
	}
	first = parts[0]
	if len(parts) > 1 {
		last = parts[len(parts)-1]
	}
	return first, last
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !isLetterRune(r) {
			return false
		}
	}
	return true
}

func isLetterRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r >= 0x80
}

// headerLocation scans the top lines for a "City, Region[, Country]"
// segment. Contact lines are often pipe-joined ("City, ST | email |
// phone"); the location is usually an early segment.
func headerLocation(lines []string) (city, country string) {
	limit := maxPersonalHeaderLines
	if len(lines) < limit {
		limit = len(lines)
	}

	for _, ln := range lines[:limit] {
		low := strings.ToLower(ln)
		if containsAny(low, orgWords) {
			continue
		}
		if len(ln) > 220 && !strings.ContainsAny(ln, "|•·") {
			continue
		}

		segments := reContactSplit.Split(ln, -1)
		n := 0
		for _, seg := range segments {
			seg = strings.TrimSpace(seg)
			if seg == "" {
				continue
			}
			if n++; n > 3 {
				break
			}
			if strings.Contains(seg, "@") || strings.Contains(strings.ToLower(seg), "http") {
				continue
			}
			if strings.ContainsAny(seg, "0123456789") {
				continue
			}
			m := reLocationSegment.FindStringSubmatch(seg)
			if m == nil || m[0] != seg {
				continue
			}
			city = strings.TrimSpace(m[1])
			// Without an explicit country the region/state stands in,
			// since that is the field consumers display.
			if c := strings.TrimSpace(m[3]); c != "" {
				country = c
			} else {
				country = strings.TrimSpace(m[2])
			}
			return city, country
		}
	}
	return "", ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
