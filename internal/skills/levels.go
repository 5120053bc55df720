package skills

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-parser/internal/llm"
	"github.com/jonathan/resume-parser/internal/prompts"
)

// validLevels are the experience levels the model may assign.
var validLevels = map[string]string{
	"beginner":     "Beginner",
	"intermediate": "Intermediate",
	"advanced":     "Advanced",
	"expert":       "Expert",
}

type skillLevelResult struct {
	SkillName       string `json:"skillName"`
	ExperienceLevel string `json:"experienceLevel"`
}

// InferExperienceLevels asks the model to rate each skill's experience
// level from how it appears in the resume text. Returns a map keyed by
// lowercased skill name; skills the model skipped or rated with an
// unknown level are absent.
func InferExperienceLevels(ctx context.Context, client llm.Client, skillNames []string, resumeText string) (map[string]string, error) {
	if len(skillNames) == 0 {
		return map[string]string{}, nil
	}

	skillListJSON, err := json.Marshal(skillNames)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skill list: %w", err)
	}

	tmpl := prompts.MustGet("parsing.json", "skill_levels")
	prompt := prompts.Format(tmpl, map[string]string{
		"Skills": string(skillListJSON),
		"Resume": resumeText,
	})

	response, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("LLM call failed: %w", err)
	}

	return parseLevelResponse(response)
}

func parseLevelResponse(response string) (map[string]string, error) {
	response = llm.CleanJSONBlock(response)
	startIdx := strings.Index(response, "[")
	endIdx := strings.LastIndex(response, "]")
	if startIdx == -1 || endIdx <= startIdx {
		return nil, fmt.Errorf("no JSON array found in response")
	}

	var results []skillLevelResult
	if err := json.Unmarshal([]byte(response[startIdx:endIdx+1]), &results); err != nil {
		return nil, fmt.Errorf("JSON parse error: %w", err)
	}

	levels := make(map[string]string, len(results))
	for _, r := range results {
		name := strings.ToLower(strings.TrimSpace(r.SkillName))
		level, ok := validLevels[strings.ToLower(strings.TrimSpace(r.ExperienceLevel))]
		if name == "" || !ok {
			continue
		}
		levels[name] = level
	}
	return levels, nil
}
