// Package skills implements dictionary-based skill tagging: splitting
// free-form skill text into candidate tokens and matching them against a
// known-skill vocabulary, with heuristic acceptance for acronyms and
// short title-cased phrases.
package skills

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-parser/internal/parsing"
	"github.com/jonathan/resume-parser/internal/types"
)

// knownSkills is the recognized technical vocabulary. Matching is
// case-insensitive; the canonical casing here is what gets emitted.
var knownSkills = []string{
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Ruby", "Go", "Rust", "Swift", "Kotlin", "Scala", "PHP", "Perl",
	"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask", "Spring", "FastAPI", "Next.js", "Nuxt.js",
	"HTML", "CSS", "SASS", "LESS", "Tailwind", "Bootstrap", "Material-UI", "Ant Design",
	"SQL", "MySQL", "PostgreSQL", "MongoDB", "Redis", "Cassandra", "DynamoDB", "Oracle", "SQLite",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "Git", "GitHub", "GitLab", "Bitbucket",
	"REST", "GraphQL", "gRPC", "WebSocket", "OAuth", "JWT", "SAML",
	"TensorFlow", "PyTorch", "Keras", "Scikit-learn", "Pandas", "NumPy", "Matplotlib",
	"Agile", "Scrum", "Kanban", "JIRA", "Confluence", "Slack", "Trello",
	"Linux", "Unix", "Windows", "macOS", "Bash", "PowerShell", "Shell",
	"Terraform", "Ansible", "CloudFormation", "CI/CD", "DevOps", "Microservices",
	"Machine Learning", "Deep Learning", "AI", "NLP", "Computer Vision", "Data Science",
	"Kafka", "RabbitMQ", "Elasticsearch", "Grafana", "Prometheus", "Spark", "Airflow",
}

// sectionLikeTokens are candidates that are really section titles leaked
// into skill text.
var sectionLikeTokens = map[string]bool{
	"technical proficiencies": true,
	"technical proficiency":   true,
	"technical skills":        true,
	"skills":                  true,
	"core competencies":       true,
	"competencies":            true,
	"expertise":               true,
	"technologies":            true,
	"tools":                   true,
	"tools & technologies":    true,
	"key responsibilities":    true,
	"key technologies":        true,
}

var stopTokens = map[string]bool{
	"and": true, "or": true, "with": true, "from": true, "the": true,
	"a": true, "an": true, "to": true, "in": true, "of": true, "for": true,
}

var (
	reLeadingBullets = regexp.MustCompile(`^[•\-*‣◦▪●]+\s*`)
	reMultiSpace     = regexp.MustCompile(`\s{2,}`)
	reHasLetter      = regexp.MustCompile(`[A-Za-z]`)
	reNumeric        = regexp.MustCompile(`^\d+(\.\d+)?$`)
	reAcronym        = regexp.MustCompile(`^[A-Z&/]{2,8}$`)
	reCandidateSplit = regexp.MustCompile(`[,;]`)
	reSubSplit       = regexp.MustCompile(`[|/]`)
)

// knownByLower resolves a lowercase candidate to its canonical casing.
var knownByLower = map[string]string{}

// knownWordRes match a known skill on explicit boundaries inside a
// longer candidate, longest skills first. `\b` cannot be used because
// names like "C++" and "C#" end on non-word characters.
var knownWordRes []*regexp.Regexp

func init() {
	ordered := append([]string(nil), knownSkills...)
	sort.Slice(ordered, func(i, j int) bool { return len(ordered[i]) > len(ordered[j]) })
	for _, s := range ordered {
		knownByLower[strings.ToLower(s)] = s
		knownWordRes = append(knownWordRes, regexp.MustCompile(
			`(?i)(?:^|[^\w+#.])(`+regexp.QuoteMeta(s)+`)(?:$|[^\w+#.])`))
	}
}

// ExtractFromText pulls skill names from free-form text. Known skills
// come back in canonical casing; unknown candidates are kept when they
// look like acronyms or short title-cased phrases.
func ExtractFromText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var found []string
	for _, cand := range splitCandidates(text) {
		cleaned := cleanToken(cand)
		if cleaned == "" || len(cleaned) < 2 || len(cleaned) > 60 {
			continue
		}
		low := strings.ToLower(cleaned)
		if sectionLikeTokens[low] || stopTokens[low] {
			continue
		}
		if !reHasLetter.MatchString(cleaned) || reNumeric.MatchString(cleaned) {
			continue
		}

		if canonical, ok := knownByLower[low]; ok {
			found = append(found, canonical)
			continue
		}
		if matched := matchKnownWord(cleaned); matched != "" {
			found = append(found, matched)
			continue
		}

		// Unknown but plausible: short acronyms (ERP, S&OP) and compact
		// Title Case phrases that are not sentence fragments.
		if reAcronym.MatchString(cleaned) {
			found = append(found, cleaned)
			continue
		}
		if isTitleCandidate(cleaned) {
			found = append(found, cleaned)
		}
	}
	return dedupeOrdered(found)
}

// Consolidate gathers skills from the dedicated skills sections, from
// "Key Technologies" lines in the experience section, and from parsed
// experience descriptions.
func Consolidate(sections parsing.SectionMap, experience []types.ExperienceEntry) []types.Skill {
	var names []string

	if text, ok := sections["skills"]; ok {
		names = append(names, ExtractFromText(text)...)
	}
	for name, text := range sections {
		if name == "skills" {
			continue
		}
		low := strings.ToLower(name)
		if strings.Contains(low, "skill") || strings.Contains(low, "technolog") ||
			strings.Contains(low, "tools") || strings.Contains(low, "expertise") {
			names = append(names, ExtractFromText(text)...)
		}
	}

	if expText, ok := sections["experience"]; ok {
		for _, line := range strings.Split(expText, "\n") {
			low := strings.ToLower(strings.TrimSpace(line))
			if strings.HasPrefix(low, "key technologies") ||
				strings.HasPrefix(low, "technologies used") ||
				strings.HasPrefix(low, "tech stack") {
				tech := line
				if idx := strings.Index(line, ":"); idx >= 0 {
					tech = line[idx+1:]
				}
				names = append(names, ExtractFromText(tech)...)
			}
		}
	}

	for _, e := range experience {
		if desc := types.StringValue(e.Description); strings.TrimSpace(desc) != "" {
			names = append(names, ExtractFromText(desc)...)
		}
	}

	names = dedupeOrdered(names)
	out := make([]types.Skill, 0, len(names))
	for _, name := range names {
		out = append(out, types.Skill{
			SkillName:           name,
			ExperienceLevel:     nil,
			HideExperienceLevel: true,
		})
	}
	return out
}

// splitCandidates turns the raw text into candidate tokens: newlines and
// bullets become commas, then commas/semicolons split, with colon and
// pipe groups broken apart ("ERP Systems: SAP HANA | Oracle").
func splitCandidates(text string) []string {
	s := strings.ReplaceAll(text, "\n", ",")
	s = strings.ReplaceAll(s, parsing.Bullet, ",")

	var out []string
	for _, item := range reCandidateSplit.Split(s, -1) {
		item = cleanToken(item)
		if item == "" {
			continue
		}

		if idx := strings.Index(item, ":"); idx >= 0 && len(item) <= 80 {
			if left := cleanToken(item[:idx]); left != "" {
				out = append(out, left)
			}
			for _, p := range reSubSplit.Split(item[idx+1:], -1) {
				if p = cleanToken(p); p != "" {
					out = append(out, p)
				}
			}
			continue
		}

		if strings.Contains(item, "|") {
			for _, p := range strings.Split(item, "|") {
				if p = cleanToken(p); p != "" {
					out = append(out, p)
				}
			}
			continue
		}

		out = append(out, item)
	}
	return out
}

func cleanToken(token string) string {
	t := strings.TrimSpace(token)
	t = reLeadingBullets.ReplaceAllString(t, "")
	t = strings.Trim(t, " \t\r\n,;|•-–—")
	return strings.TrimSpace(reMultiSpace.ReplaceAllString(t, " "))
}

func matchKnownWord(cand string) string {
	for _, re := range knownWordRes {
		if m := re.FindStringSubmatch(cand); m != nil {
			return knownByLower[strings.ToLower(m[1])]
		}
	}
	return ""
}

// isTitleCandidate accepts compact capitalized phrases ("Supply Chain
// Planning") while rejecting sentence fragments.
func isTitleCandidate(cand string) bool {
	if len(cand) < 3 || len(cand) > 45 || strings.HasSuffix(cand, ".") {
		return false
	}
	if cand[0] < 'A' || cand[0] > 'Z' {
		return false
	}
	return len(strings.Fields(cand)) <= 6
}

func dedupeOrdered(names []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range names {
		key := strings.ToLower(n)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}
