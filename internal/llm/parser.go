package llm

import (
	"context"
	"encoding/json"

	"github.com/jonathan/resume-parser/internal/prompts"
	"github.com/jonathan/resume-parser/internal/schemas"
	"github.com/jonathan/resume-parser/internal/types"
)

// resumePayload mirrors the JSON shape the extraction prompt asks for.
// Meta is absent; the pipeline fills it.
type resumePayload struct {
	Personal            types.PersonalDetails  `json:"personal"`
	ProfessionalSummary *string                `json:"professionalSummary"`
	Experience          []experiencePayload    `json:"experience"`
	Education           []types.EducationEntry `json:"education"`
	Skills              []skillPayload         `json:"skills"`
	SocialLinks         []types.SocialLink     `json:"socialLinks"`
}

type experiencePayload struct {
	JobTitle    *string `json:"jobTitle"`
	Employer    *string `json:"employer"`
	City        *string `json:"city"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	IsCurrent   bool    `json:"isCurrent"`
	Description *string `json:"description"`
}

type skillPayload struct {
	SkillName       string  `json:"skillName"`
	ExperienceLevel *string `json:"experienceLevel"`
}

// ParseResume extracts a structured resume from raw text using the
// model's JSON mode. The response is schema-validated before decoding;
// the caller decides whether a failure falls back to the heuristic
// parser.
func ParseResume(ctx context.Context, client Client, text string) (*types.ResumeParseResult, error) {
	tmpl := prompts.MustGet("parsing.json", "resume_extraction")
	prompt := prompts.Format(tmpl, map[string]string{"Resume": text})

	raw, err := client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return nil, err
	}

	return decodeResult(raw)
}

func decodeResult(raw string) (*types.ResumeParseResult, error) {
	raw = CleanJSONBlock(raw)

	if err := schemas.ValidateResult(raw); err != nil {
		return nil, &ResponseError{Message: "response failed schema validation", Cause: err}
	}

	var payload resumePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, &ResponseError{Message: "response is not valid JSON", Cause: err}
	}

	result := types.Empty()
	result.Personal = payload.Personal
	result.ProfessionalSummary = payload.ProfessionalSummary

	for _, e := range payload.Experience {
		result.Experience = append(result.Experience, types.ExperienceEntry{
			JobTitle:        e.JobTitle,
			Employer:        e.Employer,
			City:            e.City,
			StartDate:       e.StartDate,
			EndDate:         e.EndDate,
			IsCurrent:       e.IsCurrent,
			ExperienceType:  types.ExperienceProfessional,
			ConfidenceScore: scoreEntry(e),
			Description:     e.Description,
		})
	}

	result.Education = append(result.Education, payload.Education...)

	for _, s := range payload.Skills {
		if s.SkillName == "" {
			continue
		}
		result.Skills = append(result.Skills, types.Skill{
			SkillName:           s.SkillName,
			ExperienceLevel:     s.ExperienceLevel,
			HideExperienceLevel: s.ExperienceLevel == nil,
		})
	}

	result.SocialLinks = append(result.SocialLinks, payload.SocialLinks...)
	return result, nil
}

// scoreEntry mirrors the heuristic parser's confidence scale: one point
// per populated core field, capped at 5.
func scoreEntry(e experiencePayload) int {
	score := 0
	for _, f := range []*string{e.JobTitle, e.Employer, e.StartDate, e.EndDate, e.Description} {
		if f != nil && *f != "" {
			score++
		}
	}
	if e.IsCurrent && e.EndDate == nil && score < 5 {
		score++
	}
	return score
}
