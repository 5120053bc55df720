package parsing

import "strings"

// summarySections are the section names that hold a professional summary,
// tried in order.
var summarySections = []string{"summary", "objective", "profile", "about"}

// maxSummaryLen caps the extracted summary; anything longer is a
// misclassified section, not a summary paragraph.
const maxSummaryLen = 1200

// ExtractSummary returns the professional summary paragraph, preferring a
// dedicated summary-like section and falling back to a prose paragraph at
// the top of the headerless block. Returns "" when neither exists.
func ExtractSummary(sections SectionMap) string {
	for _, name := range summarySections {
		if text, ok := sections[name]; ok {
			if s := joinParagraph(text); s != "" {
				return s
			}
		}
	}

	// Headerless fallback: skip the contact block, take the first
	// multi-sentence prose paragraph.
	if text, ok := sections[SectionHeaderless]; ok {
		for _, para := range strings.Split(text, "\n\n") {
			s := joinParagraph(para)
			if s == "" || looksLikeContactBlock(s) {
				continue
			}
			if strings.Count(s, ". ")+strings.Count(s, ".\n") >= 1 && len(s) >= 60 {
				return s
			}
		}
	}
	return ""
}

// joinParagraph flattens the section text into a single space-joined
// paragraph, dropping bullet markers.
func joinParagraph(text string) string {
	var parts []string
	for _, ln := range strings.Split(text, "\n") {
		s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(ln), Bullet))
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	joined := strings.TrimSpace(strings.Join(parts, " "))
	if len(joined) > maxSummaryLen {
		joined = strings.TrimSpace(joined[:maxSummaryLen])
	}
	return joined
}

func looksLikeContactBlock(s string) bool {
	low := strings.ToLower(s)
	return strings.Contains(low, "@") || strings.Contains(low, "http") ||
		strings.Contains(low, "linkedin.com") || reEmail.MatchString(s)
}
