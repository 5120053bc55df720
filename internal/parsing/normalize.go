// Package parsing implements the heuristic resume structuring core:
// text normalization, section detection, date-range extraction, the
// experience and education entry parsers, and result postprocessing.
// Every function in this package is total over its input text; absence of
// a recognizable pattern yields empty fields, never an error.
package parsing

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Bullet is the canonical bullet marker all glyph variants collapse to.
const Bullet = "•"

// bulletVariants covers the common unicode bullets plus the Wingdings
// private-use glyph (U+F0B7) some PDF extractors emit.
var bulletVariants = []string{
	"‣", "◦", "▪", "●", "⁃", "∙", "\uf0b7",
}

// dashVariants are the en/em-dash and hyphen lookalikes collapsed to "-".
var dashVariants = []string{
	"–", "—", "‐", "‑", "−",
}

var (
	reHyphenWrap  = regexp.MustCompile(`(\w)-\n(\w)`)
	reBlankRuns   = regexp.MustCompile(`\n{3,}`)
	reInlineSpace = regexp.MustCompile(`[ \t]{2,}`)
)

// Normalize canonicalizes raw extracted resume text (PDF/DOCX/OCR output)
// for reliable downstream parsing. It reduces formatting noise without
// losing line boundaries, and is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFKC.String(text)

	// Vertical-bar lookalikes (box drawing, broken bar, fullwidth)
	text = strings.NewReplacer("│", "|", "¦", "|", "｜", "|").Replace(text)

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// U+FFFD frequently stands in for a date-range dash in PDF extractions.
	text = strings.ReplaceAll(text, "�", "-")

	for _, b := range bulletVariants {
		text = strings.ReplaceAll(text, b, Bullet)
	}
	for _, d := range dashVariants {
		text = strings.ReplaceAll(text, d, "-")
	}

	// "Cost-to-\nServe" -> "Cost-to-Serve"
	text = reHyphenWrap.ReplaceAllString(text, "$1-$2")

	text = mergeBulletContinuations(text)
	text = attachLoneBullets(text)

	text = reBlankRuns.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		lines[i] = strings.TrimSpace(reInlineSpace.ReplaceAllString(ln, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// mergeBulletContinuations joins an indented wrapped continuation line
// onto the preceding bullet line. Only indented lines are joined, so two
// separate entries' lines are never merged.
func mergeBulletContinuations(text string) string {
	lines := strings.Split(text, "\n")
	merged := make([]string, 0, len(lines))
	for _, ln := range lines {
		s := strings.TrimRight(ln, " \t")
		if s == "" {
			merged = append(merged, "")
			continue
		}
		if strings.TrimSpace(s) == Bullet {
			merged = append(merged, Bullet)
			continue
		}
		indented := strings.HasPrefix(ln, " ") || strings.HasPrefix(ln, "\t")
		if len(merged) > 0 && indented &&
			!strings.HasPrefix(strings.TrimSpace(s), Bullet) &&
			strings.HasPrefix(strings.TrimSpace(merged[len(merged)-1]), Bullet) {
			merged[len(merged)-1] = strings.TrimSpace(merged[len(merged)-1]) + " " + strings.TrimSpace(s)
			continue
		}
		merged = append(merged, s)
	}
	return strings.Join(merged, "\n")
}

// attachLoneBullets handles PDFs that emit a bullet alone on one line and
// the bullet text on the next.
func attachLoneBullets(text string) string {
	lines := strings.Split(text, "\n")
	fixed := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		cur := strings.TrimSpace(lines[i])
		if cur == Bullet && i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next != "" && !strings.HasPrefix(next, Bullet) {
				fixed = append(fixed, Bullet+" "+next)
				i++
				continue
			}
		}
		fixed = append(fixed, lines[i])
	}
	return strings.Join(fixed, "\n")
}
