package parsing

import (
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

// pipeAdjacencyEntries is the high-precision fallback: a "Title | Employer
// [| …]" line immediately followed by a date line opens an entry. The
// date line may carry a trailing ", City" after the range.
func pipeAdjacencyEntries(lines []string) []types.ExperienceEntry {
	var entries []types.ExperienceEntry
	var b *entryBuilder

	flush := func() {
		if b == nil {
			return
		}
		if e, ok := b.finalize(); ok {
			entries = append(entries, e)
		}
		b = nil
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if isPipeHeaderLine(line) {
			next, off := nextNonBlank(lines, i+1)
			if off >= 0 {
				if dr := ExtractDateRange(next); !dr.IsZero() {
					flush()
					b = newEntryBuilder(dr)
					b.fillFromPipeHeader(line, StripDateTokens(next))
					i = off
					continue
				}
			}
			continue
		}

		if b != nil {
			if dr := ExtractDateRange(line); !dr.IsZero() {
				continue
			}
			b.appendDescription(line)
		}
	}
	flush()
	return entries
}

// isPipeHeaderLine requires a pipe-separated line where some segment names
// a role and none carries a date.
func isPipeHeaderLine(line string) bool {
	segs := splitPipe(line)
	if len(segs) < 2 || len(FindDateTokens(line)) > 0 {
		return false
	}
	for _, seg := range segs {
		if isRoleLine(seg) {
			return true
		}
	}
	return false
}

// fillFromPipeHeader splits "Title | Employer [| City]" positionally, then
// takes the city from the date line's residue when the header lacked one.
func (b *entryBuilder) fillFromPipeHeader(header, dateResidue string) {
	segs := splitPipe(header)
	b.headerText = append(b.headerText, header)

	for _, seg := range segs {
		if b.jobTitle == "" && isRoleLine(seg) {
			b.jobTitle = cleanHeaderValue(seg)
			continue
		}
		if b.city == "" {
			if c, ok := matchLocation(seg); ok {
				b.city = c
				continue
			}
		}
		if b.workMode == "" {
			if wm, ok := matchWorkMode(seg); ok {
				b.workMode = wm
				continue
			}
		}
		if b.employer == "" {
			b.employer = cleanHeaderValue(seg)
		}
	}

	residue := cleanHeaderValue(dateResidue)
	if residue != "" {
		b.headerText = append(b.headerText, residue)
		if b.city == "" {
			if c, ok := matchLocation(residue); ok {
				b.city = c
			}
		}
		if b.workMode == "" {
			if wm, ok := matchWorkMode(residue); ok {
				b.workMode = wm
			}
		}
	}
}

// blockEntries is the last-resort strategy: blank-line separated blocks,
// one entry per block, title/employer split on the block's first line.
func blockEntries(sectionText string) []types.ExperienceEntry {
	var entries []types.ExperienceEntry
	for _, block := range splitBlocks(sectionText) {
		if e, ok := parseBlock(block); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

func splitBlocks(text string) [][]string {
	var blocks [][]string
	var cur []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			if len(cur) > 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

// parseBlock reads one blank-line delimited block. The first line that is
// not a date line carries the identity; "Title at Employer", "Title -
// Employer", and pipe forms are all recognized. Dates may sit on any line.
func parseBlock(block []string) (types.ExperienceEntry, bool) {
	var b *entryBuilder
	identity := ""

	for _, line := range block {
		if dr := ExtractDateRange(line); !dr.IsZero() {
			if b == nil {
				b = newEntryBuilder(dr)
			} else if b.startDate == "" {
				if dr.Start != nil {
					b.startDate = *dr.Start
				}
				if dr.End != nil {
					b.endDate = *dr.End
				}
				b.isCurrent = b.isCurrent || dr.IsCurrent
			}
			if identity == "" {
				identity = StripDateTokens(line)
			}
			continue
		}
		if b == nil {
			b = &entryBuilder{}
		}
		if identity == "" && !isBulletLine(line) {
			identity = line
			continue
		}
		b.appendDescription(line)
	}
	if b == nil {
		return types.ExperienceEntry{}, false
	}

	b.headerText = append(b.headerText, identity)
	title, employer := splitIdentity(identity)
	b.jobTitle, b.employer = title, employer
	if b.city == "" {
		b.city, b.workMode = inferLocation([]string{identity})
	}
	return b.finalize()
}

// splitIdentity separates title from employer on "at", " - ", or "|".
func splitIdentity(identity string) (title, employer string) {
	s := strings.TrimSpace(identity)
	if s == "" {
		return "", ""
	}

	if segs := splitPipe(s); len(segs) >= 2 {
		for _, seg := range segs {
			if title == "" && isRoleLine(seg) {
				title = cleanHeaderValue(seg)
			} else if employer == "" && !isLocationLike(seg) {
				employer = cleanHeaderValue(seg)
			}
		}
		return title, employer
	}

	if idx := strings.Index(s, " at "); idx > 0 {
		return cleanHeaderValue(s[:idx]), cleanHeaderValue(s[idx+4:])
	}

	if parts := strings.SplitN(s, " - ", 2); len(parts) == 2 {
		left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if isRoleLine(left) && !isRoleLine(right) {
			if isLocationLike(right) {
				return cleanHeaderValue(left), ""
			}
			return cleanHeaderValue(left), cleanHeaderValue(right)
		}
		if isRoleLine(right) && !isRoleLine(left) {
			return cleanHeaderValue(right), cleanHeaderValue(left)
		}
		return cleanHeaderValue(left), cleanHeaderValue(right)
	}

	if isRoleLine(s) {
		return cleanHeaderValue(s), ""
	}
	return "", cleanHeaderValue(s)
}

func nextNonBlank(lines []string, from int) (string, int) {
	for i := from; i < len(lines); i++ {
		if s := strings.TrimSpace(lines[i]); s != "" {
			return s, i
		}
	}
	return "", -1
}
