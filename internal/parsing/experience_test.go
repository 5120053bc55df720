package parsing

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-parser/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExperienceHeaderAboveDateLine(t *testing.T) {
	section := strings.Join([]string{
		"Acme Corporation - Payments",
		"San Francisco, CA",
		"Staff Engineer | Platform | Jan 2020 - Mar 2022",
		"• Led migration",
	}, "\n")

	entries := ParseExperience(section)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Acme Corporation", types.StringValue(e.Employer))
	assert.Equal(t, "Staff Engineer", types.StringValue(e.JobTitle))
	assert.Equal(t, "San Francisco, CA", types.StringValue(e.City))
	assert.Equal(t, "Jan 2020", types.StringValue(e.StartDate))
	assert.Equal(t, "Mar 2022", types.StringValue(e.EndDate))
	assert.False(t, e.IsCurrent)
	assert.Contains(t, types.StringValue(e.Description), "Led migration")
}

func TestParseExperienceBackToBackDateBlocks(t *testing.T) {
	section := strings.Join([]string{
		"Jan 2018 - Dec 2019",
		"Software Engineer",
		"Acme Corp - Retail",
		"• Built the storefront",
		"Jan 2020 - Present",
		"Senior Engineer",
		"Beta LLC - Fintech",
		"• Scaled the ledger",
	}, "\n")

	entries := ParseExperience(section)
	require.Len(t, entries, 2)

	first, second := entries[0], entries[1]
	assert.Equal(t, "Software Engineer", types.StringValue(first.JobTitle))
	assert.Equal(t, "Acme Corp", types.StringValue(first.Employer))
	assert.NotContains(t, types.StringValue(first.Description), "Scaled")

	assert.Equal(t, "Senior Engineer", types.StringValue(second.JobTitle))
	assert.Equal(t, "Beta LLC", types.StringValue(second.Employer))
	assert.True(t, second.IsCurrent)
	assert.Nil(t, second.EndDate)
}

func TestParseExperiencePendingHeaderPushBack(t *testing.T) {
	// The next job's header line arrives before its date line with no
	// blank separator; it must not be absorbed into the prior bullets.
	section := strings.Join([]string{
		"Jan 2019 - Dec 2019",
		"Data Analyst",
		"Acme Inc - Analytics",
		"• Crunched numbers",
		"Nimbus Systems - Cloud",
		"Mar 2020 - Present",
		"• Ran clusters",
	}, "\n")

	entries := ParseExperience(section)
	require.Len(t, entries, 2)

	assert.Equal(t, "Acme Inc", types.StringValue(entries[0].Employer))
	assert.NotContains(t, types.StringValue(entries[0].Description), "Nimbus")
	assert.Equal(t, "Nimbus Systems", types.StringValue(entries[1].Employer))
	assert.True(t, entries[1].IsCurrent)
}

func TestParseExperienceSections(t *testing.T) {
	sections := SectionMap{
		"experience": strings.Join([]string{
			"Jan 2020 - Present",
			"Senior Engineer",
			"Beta LLC - Fintech",
			"• Scaled the ledger",
		}, "\n"),
		"volunteering": strings.Join([]string{
			"Mar 2021 - Present",
			"Event Coordinator",
			"City Harvest - Outreach",
			"• Organized weekly drives",
		}, "\n"),
		"internships": strings.Join([]string{
			"Jun 2019 - Aug 2019",
			"Data Analyst",
			"Acme Corp - Analytics",
		}, "\n"),
	}

	entries := ParseExperienceSections(sections)
	require.Len(t, entries, 3)

	byEmployer := map[string]types.ExperienceType{}
	for _, e := range entries {
		byEmployer[types.StringValue(e.Employer)] = e.ExperienceType
	}
	assert.Equal(t, types.ExperienceProfessional, byEmployer["Beta LLC"])
	assert.Equal(t, types.ExperienceVolunteer, byEmployer["City Harvest"])
	assert.Equal(t, types.ExperienceInternship, byEmployer["Acme Corp"])
}

func TestParseExperienceSectionsKeepKeywordType(t *testing.T) {
	// An entry whose own text already classifies it keeps that type even
	// inside a differently-labeled section.
	sections := SectionMap{
		"leadership": strings.Join([]string{
			"Volunteer Coordinator",
			"Red Cross - Local Chapter",
			"Jan 2021 - Dec 2021",
		}, "\n"),
	}

	entries := ParseExperienceSections(sections)
	require.Len(t, entries, 1)
	assert.Equal(t, types.ExperienceVolunteer, entries[0].ExperienceType)
}

func TestParseExperienceSectionsMissingBuckets(t *testing.T) {
	entries := ParseExperienceSections(SectionMap{})
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestParseExperiencePipeAdjacency(t *testing.T) {
	section := strings.Join([]string{
		"Software Engineer | Google",
		"Jan 2018 - Dec 2019, Mountain View, CA",
		"• Did search things",
		"Senior Engineer | Meta",
		"Jan 2020 - Present",
		"• Did feed things",
	}, "\n")

	entries := ParseExperience(section)
	require.Len(t, entries, 2)

	first, second := entries[0], entries[1]
	assert.Equal(t, "Software Engineer", types.StringValue(first.JobTitle))
	assert.Equal(t, "Google", types.StringValue(first.Employer))
	assert.Equal(t, "Mountain View, CA", types.StringValue(first.City))
	assert.Equal(t, "Meta", types.StringValue(second.Employer))
	assert.True(t, second.IsCurrent)
}

func TestParseExperienceKeyTechnologiesContinuation(t *testing.T) {
	section := strings.Join([]string{
		"Jan 2020 - Dec 2021",
		"Backend Developer",
		"• Built APIs",
		"Key Technologies: Go, Postgres,",
		"Redis, Kafka",
	}, "\n")

	entries := ParseExperience(section)
	require.Len(t, entries, 1)

	desc := types.StringValue(entries[0].Description)
	assert.Contains(t, desc, "Key Technologies")
	assert.Contains(t, desc, "Redis, Kafka")
}

func TestParseExperienceClassification(t *testing.T) {
	tests := []struct {
		name         string
		section      string
		expectedType types.ExperienceType
		selfEmployed bool
		freelance    bool
	}{
		{
			name:         "Internship",
			section:      "Jun 2021 - Aug 2021\nSoftware Engineering Intern\nBIGCO\n• Shipped a feature",
			expectedType: types.ExperienceInternship,
		},
		{
			name:         "Volunteer",
			section:      "Jan 2020 - Dec 2020\nVolunteer Coordinator\nLocal Food Bank - Outreach\n• Organized drives",
			expectedType: types.ExperienceVolunteer,
		},
		{
			name:         "Career break",
			section:      "Jan 2022 - Jun 2022\nCareer Break - Sabbatical\n• Traveled",
			expectedType: types.ExperienceBreak,
		},
		{
			name:         "Freelance",
			section:      "Jan 2019 - Present\nFreelance Designer\n• Client work",
			expectedType: types.ExperienceProfessional,
			selfEmployed: true,
			freelance:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := ParseExperience(tt.section)
			require.NotEmpty(t, entries)
			e := entries[0]
			assert.Equal(t, tt.expectedType, e.ExperienceType)
			assert.Equal(t, tt.selfEmployed, e.IsSelfEmployed)
			if tt.freelance {
				require.NotNil(t, e.ExperienceCategory)
				assert.Equal(t, types.CategoryFreelance, *e.ExperienceCategory)
			}
		})
	}
}

func TestParseExperienceConfidenceScore(t *testing.T) {
	section := strings.Join([]string{
		"Acme Corporation - Payments",
		"Staff Engineer | Platform | Jan 2020 - Mar 2022",
		"• Led migration",
	}, "\n")

	entries := ParseExperience(section)
	require.Len(t, entries, 1)
	assert.Equal(t, 5, entries[0].ConfidenceScore)
}

func TestParseExperienceMinimality(t *testing.T) {
	for _, e := range ParseExperience("Experience section\nJan 2018 - Dec 2019\nJan 2020 - Dec 2021") {
		populated := e.JobTitle != nil || e.Employer != nil || e.StartDate != nil ||
			e.EndDate != nil || e.Description != nil
		assert.True(t, populated)
	}
}

func TestParseExperienceEmptyInput(t *testing.T) {
	assert.Empty(t, ParseExperience(""))
	assert.Empty(t, ParseExperience("   \n  \n"))
}

func TestParseExperienceWorkMode(t *testing.T) {
	section := strings.Join([]string{
		"Platform Engineer | Acme | Remote",
		"Jan 2021 - Present",
		"• On-call for everything",
	}, "\n")

	entries := ParseExperience(section)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].WorkMode)
	assert.Equal(t, types.WorkModeRemote, *entries[0].WorkMode)
}
