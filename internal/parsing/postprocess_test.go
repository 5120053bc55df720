package parsing

import (
	"testing"

	"github.com/jonathan/resume-parser/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestPostprocessBlankFieldsBecomeNil(t *testing.T) {
	r := types.Empty()
	r.Personal.Email = strp("   ")
	r.Personal.City = "  Berlin "
	r.ProfessionalSummary = strp("")
	r.Experience = append(r.Experience, types.ExperienceEntry{
		JobTitle:  strp("  "),
		Employer:  strp("Acme"),
		StartDate: strp("2020"),
	})

	out := Postprocess(r)

	assert.Nil(t, out.Personal.Email)
	assert.Equal(t, "Berlin", out.Personal.City)
	assert.Nil(t, out.ProfessionalSummary)
	require.Len(t, out.Experience, 1)
	assert.Nil(t, out.Experience[0].JobTitle)
	assert.Equal(t, "Acme", types.StringValue(out.Experience[0].Employer))
}

func TestPostprocessDropsProjectNoise(t *testing.T) {
	r := types.Empty()
	r.Experience = append(r.Experience,
		types.ExperienceEntry{JobTitle: strp("University Project: chat app"), Description: strp("built a thing")},
		types.ExperienceEntry{Employer: strp("github.com/someone/repo"), Description: strp("side project")},
		types.ExperienceEntry{JobTitle: strp("Engineer"), Employer: strp("Acme"), StartDate: strp("2020")},
	)

	out := Postprocess(r)
	require.Len(t, out.Experience, 1)
	assert.Equal(t, "Acme", types.StringValue(out.Experience[0].Employer))
}

func TestPostprocessDedupe(t *testing.T) {
	r := types.Empty()
	r.Experience = append(r.Experience,
		types.ExperienceEntry{JobTitle: strp("Engineer"), Employer: strp("Acme"), StartDate: strp("Jan 2020"), EndDate: strp("Mar 2022")},
		types.ExperienceEntry{JobTitle: strp("engineer"), Employer: strp("ACME"), StartDate: strp("Jan 2020"), EndDate: strp("Mar 2022")},
	)
	r.Education = append(r.Education,
		types.EducationEntry{SchoolName: strp("MIT"), Degree: strp("B.S.")},
		types.EducationEntry{SchoolName: strp("mit"), Degree: strp("b.s.")},
	)

	out := Postprocess(r)
	assert.Len(t, out.Experience, 1)
	assert.Len(t, out.Education, 1)
}

func TestPostprocessSortExperience(t *testing.T) {
	r := types.Empty()
	r.Experience = append(r.Experience,
		types.ExperienceEntry{JobTitle: strp("Old"), StartDate: strp("Jan 2015"), EndDate: strp("Dec 2016")},
		types.ExperienceEntry{JobTitle: strp("Current"), StartDate: strp("Jan 2014"), IsCurrent: true},
		types.ExperienceEntry{JobTitle: strp("Recent"), StartDate: strp("Jan 2020"), EndDate: strp("Dec 2021")},
	)

	out := Postprocess(r)
	require.Len(t, out.Experience, 3)
	assert.Equal(t, "Current", types.StringValue(out.Experience[0].JobTitle))
	assert.Equal(t, "Recent", types.StringValue(out.Experience[1].JobTitle))
	assert.Equal(t, "Old", types.StringValue(out.Experience[2].JobTitle))
}

func TestPostprocessSortEducation(t *testing.T) {
	r := types.Empty()
	r.Education = append(r.Education,
		types.EducationEntry{SchoolName: strp("Older"), StartDate: strp("2010"), EndDate: strp("2014")},
		types.EducationEntry{SchoolName: strp("Newer"), StartDate: strp("2016"), EndDate: strp("2020")},
	)

	out := Postprocess(r)
	require.Len(t, out.Education, 2)
	assert.Equal(t, "Newer", types.StringValue(out.Education[0].SchoolName))
}

func TestPostprocessPromotionSplit(t *testing.T) {
	r := types.Empty()
	r.Experience = append(r.Experience, types.ExperienceEntry{
		JobTitle:  strp("Manager → Senior Manager"),
		Employer:  strp("X"),
		StartDate: strp("Jan 2018"),
		EndDate:   strp("Dec 2021"),
	})

	out := Postprocess(r)
	require.Len(t, out.Experience, 2)

	first, second := out.Experience[0], out.Experience[1]
	assert.Equal(t, "Manager", types.StringValue(first.JobTitle))
	assert.False(t, first.IsPromotion)
	assert.Equal(t, "Senior Manager", types.StringValue(second.JobTitle))
	assert.True(t, second.IsPromotion)
	assert.Equal(t, types.StringValue(first.Employer), types.StringValue(second.Employer))
	assert.Equal(t, types.StringValue(first.StartDate), types.StringValue(second.StartDate))
}

func TestPostprocessPromotionSplitArrowForm(t *testing.T) {
	r := types.Empty()
	r.Experience = append(r.Experience, types.ExperienceEntry{
		JobTitle: strp("Analyst -> Lead Analyst"),
		Employer: strp("Y"),
	})

	out := Postprocess(r)
	require.Len(t, out.Experience, 2)
	assert.Equal(t, "Analyst", types.StringValue(out.Experience[0].JobTitle))
	assert.Equal(t, "Lead Analyst", types.StringValue(out.Experience[1].JobTitle))
}

func TestPostprocessCollapseNearDuplicates(t *testing.T) {
	r := types.Empty()
	r.Experience = append(r.Experience,
		types.ExperienceEntry{
			JobTitle: strp("Engineer"), Employer: strp("Acme"),
			StartDate:   strp("Jan 2020"),
			Description: strp("built the api gateway and the billing service"),
		},
		types.ExperienceEntry{
			JobTitle: strp("Engineer"), Employer: strp("Acme"),
			StartDate:   strp("Feb 2020"),
			Description: strp("built the api gateway and the billing service"),
		},
	)

	out := Postprocess(r)
	assert.Len(t, out.Experience, 1)
}

func TestPostprocessOverlapWarnings(t *testing.T) {
	r := types.Empty()
	r.Experience = append(r.Experience,
		types.ExperienceEntry{
			JobTitle: strp("Engineer"), Employer: strp("Acme"),
			StartDate: strp("Jan 2019"), EndDate: strp("Dec 2020"),
			ExperienceType: types.ExperienceProfessional,
		},
		types.ExperienceEntry{
			JobTitle: strp("Architect"), Employer: strp("Beta"),
			StartDate: strp("Jun 2020"), EndDate: strp("Jun 2021"),
			ExperienceType: types.ExperienceProfessional,
		},
	)

	out := Postprocess(r)
	require.Len(t, out.Meta.Warnings, 1)
	assert.Contains(t, out.Meta.Warnings[0], "overlapping full-time roles")

	// Entries are surfaced, never corrected.
	assert.Len(t, out.Experience, 2)
}

func TestPostprocessNoWarningForInternOverlap(t *testing.T) {
	r := types.Empty()
	r.Experience = append(r.Experience,
		types.ExperienceEntry{
			JobTitle: strp("Engineer"), Employer: strp("Acme"),
			StartDate: strp("Jan 2019"), EndDate: strp("Dec 2020"),
			ExperienceType: types.ExperienceProfessional,
		},
		types.ExperienceEntry{
			JobTitle: strp("Research Intern"), Employer: strp("Lab"),
			StartDate: strp("Jun 2020"), EndDate: strp("Sep 2020"),
			ExperienceType: types.ExperienceInternship,
		},
	)

	out := Postprocess(r)
	assert.Empty(t, out.Meta.Warnings)
}

func TestPostprocessSkillDedupe(t *testing.T) {
	r := types.Empty()
	r.Skills = append(r.Skills,
		types.Skill{SkillName: "Go"},
		types.Skill{SkillName: "go"},
		types.Skill{SkillName: "Python"},
	)

	out := Postprocess(r)
	require.Len(t, out.Skills, 2)
	assert.Equal(t, "Go", out.Skills[0].SkillName)
	assert.Equal(t, "Python", out.Skills[1].SkillName)
}

func TestPostprocessIdempotent(t *testing.T) {
	r := types.Empty()
	r.Experience = append(r.Experience,
		types.ExperienceEntry{
			JobTitle: strp("Manager → Senior Manager"), Employer: strp("X"),
			StartDate: strp("Jan 2018"), EndDate: strp("Dec 2021"),
		},
		types.ExperienceEntry{JobTitle: strp("Engineer"), Employer: strp("Acme"), StartDate: strp("Jan 2022"), IsCurrent: true},
	)
	r.Skills = append(r.Skills, types.Skill{SkillName: "Go"}, types.Skill{SkillName: "GO"})

	once := Postprocess(r)
	onceCopy := *once
	onceCopy.Experience = append([]types.ExperienceEntry(nil), once.Experience...)
	onceCopy.Skills = append([]types.Skill(nil), once.Skills...)

	twice := Postprocess(&onceCopy)
	assert.Equal(t, once.Experience, twice.Experience)
	assert.Equal(t, once.Skills, twice.Skills)
	assert.Equal(t, once.Meta.Warnings, twice.Meta.Warnings)
}

func TestPostprocessNilInput(t *testing.T) {
	out := Postprocess(nil)
	require.NotNil(t, out)
	assert.Empty(t, out.Experience)
}
