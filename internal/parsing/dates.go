package parsing

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DateRange is the outcome of scanning one line for a date range.
// Start and End hold the raw matched tokens; End is nil with IsCurrent set
// when the range is open ("Jan 2020 - Present").
type DateRange struct {
	Start     *string
	End       *string
	IsCurrent bool
}

// IsZero reports whether no date information was found at all.
func (d DateRange) IsZero() bool {
	return d.Start == nil && d.End == nil && !d.IsCurrent
}

// defaultAnchor resolves partial tokens (month/year only) to a concrete
// date so that range ordering is deterministic.
var defaultAnchor = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// monthNumbers maps month names and common abbreviations (English,
// French, Spanish) to their calendar number.
var monthNumbers = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may": time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sept": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,

	"janvier": time.January, "janv": time.January,
	"février": time.February, "fevrier": time.February, "févr": time.February,
	"mars": time.March,
	"avril": time.April, "avr": time.April,
	"mai": time.May,
	"juin": time.June,
	"juillet": time.July, "juil": time.July,
	"août": time.August, "aout": time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"décembre":  time.December, "decembre": time.December, "déc": time.December,

	"enero": time.January, "ene": time.January,
	"febrero": time.February,
	"marzo":   time.March,
	"abril":   time.April, "abr": time.April,
	"mayo":  time.May,
	"junio": time.June,
	"julio": time.July,
	"agosto": time.August, "ago": time.August,
	"septiembre": time.September, "setiembre": time.September,
	"octubre":   time.October,
	"noviembre": time.November,
	"diciembre": time.December, "dic": time.December,
}

// seasonMonths maps season names to a representative start month.
var seasonMonths = map[string]time.Month{
	"spring": time.March,
	"summer": time.June,
	"fall":   time.September,
	"autumn": time.September,
	"winter": time.December,
}

var (
	reDateToken   *regexp.Regexp
	reDateStrip   *regexp.Regexp
	rePresent     = regexp.MustCompile(`(?i)\b(present|current|now|ongoing)\b`)
	reRangeSep    = regexp.MustCompile(`^\s*(?:-|–|—|to|a|à|hasta)\s*$`)
	reOpenRange   = regexp.MustCompile(`(?i)^\s*(?:-|–|—|to|a|à|hasta)\s*(?:present|current|now|ongoing)\b`)
	reTrailingSep = regexp.MustCompile(`^\s*[-–—]\s*$`)
	reNumericDate = regexp.MustCompile(`^\d{1,2}[/.]\d{4}$`)
	reQuarter     = regexp.MustCompile(`^(?i)q([1-4])\s+(\d{4})$`)
	reBareYear    = regexp.MustCompile(`^(19|20)\d{2}$`)
)

func init() {
	names := make([]string, 0, len(monthNumbers))
	for name := range monthNumbers {
		names = append(names, name)
	}
	for name := range seasonMonths {
		names = append(names, name)
	}
	// Longest first so "september" wins over "sep".
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	word := `(?:` + strings.Join(names, "|") + `)\.?\s+\d{4}`
	quarter := `q[1-4]\s+\d{4}`
	numeric := `\d{1,2}[/.]\d{4}`
	year := `(?:19|20)\d{2}`
	pattern := `(?i)\b(?:` + word + `|` + quarter + `|` + numeric + `|` + year + `)\b`
	reDateToken = regexp.MustCompile(pattern)
	reDateStrip = regexp.MustCompile(pattern)
}

// ExtractDateRange scans a single line for a date range. It recognizes
// month/season/quarter+year tokens, MM/YYYY, MM.YYYY and bare years, a
// hyphen/dash/"to" separator, and present/current/now markers. When both
// ends parse to concrete dates the result is swap-corrected so Start is
// never after End.
func ExtractDateRange(line string) DateRange {
	if strings.TrimSpace(line) == "" {
		return DateRange{}
	}

	locs := reDateToken.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return DateRange{}
	}

	first := line[locs[0][0]:locs[0][1]]

	// Full range: "T1 <sep> T2" with only a separator between tokens.
	if len(locs) >= 2 {
		between := line[locs[0][1]:locs[1][0]]
		if reRangeSep.MatchString(between) {
			second := line[locs[1][0]:locs[1][1]]
			start, end := SwapIfReversed(first, second)
			return DateRange{Start: &start, End: &end}
		}
	}

	rest := line[locs[0][1]:]

	// Open range: "T1 - Present".
	if reOpenRange.MatchString(rest) {
		return DateRange{Start: &first, IsCurrent: true}
	}

	// A present marker anywhere plus a date token still means ongoing.
	if rePresent.MatchString(line) {
		return DateRange{Start: &first, IsCurrent: true}
	}

	// Trailing open-ended dash: "T1 -" with nothing after.
	if reTrailingSep.MatchString(rest) {
		return DateRange{Start: &first}
	}

	return DateRange{}
}

// FindDateTokens returns every date token in the line, in order.
func FindDateTokens(line string) []string {
	return reDateToken.FindAllString(line, -1)
}

// StripDateTokens removes date tokens, present markers, and leftover
// range separators from a line, returning the trimmed residue.
func StripDateTokens(line string) string {
	out := reDateStrip.ReplaceAllString(line, "")
	out = rePresent.ReplaceAllString(out, "")
	out = strings.Trim(out, " \t-–—|,:;")
	return strings.TrimSpace(out)
}

// ParseDateToken parses one token to a concrete date using a fixed
// default anchor for the parts the token does not carry.
func ParseDateToken(token string) (time.Time, bool) {
	tok := strings.TrimSpace(strings.TrimSuffix(strings.ToLower(token), "."))
	if tok == "" {
		return time.Time{}, false
	}

	if reBareYear.MatchString(tok) {
		year, _ := strconv.Atoi(tok)
		return time.Date(year, defaultAnchor.Month(), 1, 0, 0, 0, 0, time.UTC), true
	}

	if reNumericDate.MatchString(tok) {
		sep := "/"
		if strings.Contains(tok, ".") {
			sep = "."
		}
		parts := strings.SplitN(tok, sep, 2)
		month, _ := strconv.Atoi(parts[0])
		year, _ := strconv.Atoi(parts[1])
		if month < 1 || month > 12 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
	}

	if m := reQuarter.FindStringSubmatch(tok); m != nil {
		q, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		return time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC), true
	}

	// "<word> <year>" with a month or season word.
	fields := strings.Fields(tok)
	if len(fields) == 2 {
		word := strings.TrimSuffix(fields[0], ".")
		year, err := strconv.Atoi(fields[1])
		if err != nil || year < 1000 || year > 9999 {
			return time.Time{}, false
		}
		if month, ok := monthNumbers[word]; ok {
			return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
		}
		if month, ok := seasonMonths[word]; ok {
			return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// ParseDateLoose finds the first date token anywhere in s and parses it.
// Used for lenient sorting of entries whose dates kept their raw form.
func ParseDateLoose(s string) (time.Time, bool) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	token := reDateToken.FindString(s)
	if token == "" {
		return time.Time{}, false
	}
	return ParseDateToken(token)
}

// SwapIfReversed orders two tokens chronologically when both parse to
// concrete dates. Human-entered ranges are sometimes reversed; partial
// tokens resolve against the fixed anchor so the decision is
// deterministic.
func SwapIfReversed(start, end string) (string, string) {
	s, okS := ParseDateToken(start)
	e, okE := ParseDateToken(end)
	if okS && okE && s.After(e) {
		return end, start
	}
	return start, end
}
