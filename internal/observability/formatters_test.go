package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-parser/internal/types"
)

func sampleResult() *types.ResumeParseResult {
	r := types.Empty()
	r.Personal = types.PersonalDetails{
		FirstName:   types.StringPtr("Jane"),
		LastName:    types.StringPtr("Doe"),
		Email:       types.StringPtr("jane@example.com"),
		PhoneNumber: types.StringPtr("+1 415 555 0100"),
		City:        "Austin",
		Country:     "USA",
	}
	level := "Expert"
	r.Experience = []types.ExperienceEntry{
		{
			JobTitle:        types.StringPtr("Staff Engineer"),
			Employer:        types.StringPtr("Acme"),
			StartDate:       types.StringPtr("Jan 2020"),
			IsCurrent:       true,
			ExperienceType:  types.ExperienceProfessional,
			ConfidenceScore: 4,
		},
	}
	r.Education = []types.EducationEntry{
		{
			SchoolName: types.StringPtr("UT Austin"),
			Degree:     types.StringPtr("BS Computer Science"),
		},
	}
	r.Skills = []types.Skill{
		{SkillName: "Go", ExperienceLevel: &level},
		{SkillName: "Python", HideExperienceLevel: true},
	}
	r.Meta = types.Meta{
		SectionsFound: []string{"experience", "education"},
		Parsed:        true,
		Parser:        "heuristic",
		Warnings:      []string{"overlapping full-time roles detected"},
	}
	return r
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResult(sampleResult())

	out := buf.String()
	assert.Contains(t, out, "PERSONAL DETAILS")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Austin, USA")
	assert.Contains(t, out, "WORK EXPERIENCE")
	assert.Contains(t, out, "Staff Engineer @ Acme")
	assert.Contains(t, out, "Jan 2020 - Present")
	assert.Contains(t, out, "[confidence 4/5]")
	assert.Contains(t, out, "EDUCATION")
	assert.Contains(t, out, "UT Austin")
	assert.Contains(t, out, "SKILLS (2)")
	assert.Contains(t, out, "Go (Expert)")
	assert.Contains(t, out, "PARSE META")
	assert.Contains(t, out, "heuristic")
	assert.Contains(t, out, "overlapping full-time roles")
}

func TestPrintResultNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResult(nil)
	assert.Empty(t, buf.String())
}

func TestPrintEmptySlicesPrintNothing(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintExperience(nil)
	p.PrintEducation(nil)
	p.PrintSkills(nil)
	assert.Empty(t, buf.String())
}

func TestPrintMetaLLMFallback(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMeta(&types.Meta{
		Parser:    "heuristic",
		LLMFailed: true,
	})
	assert.Contains(t, buf.String(), "LLM parse failed")
}
