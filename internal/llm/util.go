package llm

import "strings"

// CleanJSONBlock strips markdown code fences that models sometimes wrap
// around JSON output despite instructions.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
