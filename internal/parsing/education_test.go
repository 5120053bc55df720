package parsing

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-parser/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEducationSingleEntry(t *testing.T) {
	section := strings.Join([]string{
		"Stanford University, Stanford, CA",
		"B.S. in Computer Science",
		"2014 - 2018",
		"GPA: 3.9",
	}, "\n")

	entries := ParseEducation(section)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Stanford University", types.StringValue(e.SchoolName))
	assert.Equal(t, "B.S. in Computer Science", types.StringValue(e.Degree))
	assert.Equal(t, "Stanford, CA", types.StringValue(e.City))
	assert.Equal(t, "2014", types.StringValue(e.StartDate))
	assert.Equal(t, "2018", types.StringValue(e.EndDate))
	assert.Contains(t, types.StringValue(e.Description), "GPA")
}

func TestParseEducationBarePresentMarker(t *testing.T) {
	section := strings.Join([]string{
		"University of Washington",
		"Master of Science in Bioengineering",
		"Ongoing",
	}, "\n")

	entries := ParseEducation(section)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "University of Washington", types.StringValue(e.SchoolName))
	assert.Equal(t, "Master of Science in Bioengineering", types.StringValue(e.Degree))
	assert.Nil(t, e.EndDate)
}

func TestParseEducationPresentMarkerClearsLoneDate(t *testing.T) {
	section := strings.Join([]string{
		"University of Washington",
		"Master of Science in Bioengineering",
		"2023",
		"Enrollment ongoing",
	}, "\n")

	entries := ParseEducation(section)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].EndDate)
}

func TestParseEducationDegreeBeforeSchool(t *testing.T) {
	section := strings.Join([]string{
		"Master of Science in Data Engineering",
		"Technical University of Munich",
		"2019 - 2021",
	}, "\n")

	entries := ParseEducation(section)
	require.Len(t, entries, 1)
	assert.Equal(t, "Technical University of Munich", types.StringValue(entries[0].SchoolName))
	assert.Equal(t, "Master of Science in Data Engineering", types.StringValue(entries[0].Degree))
}

func TestParseEducationMultipleSchools(t *testing.T) {
	section := strings.Join([]string{
		"Harvard University",
		"M.S. in Applied Mathematics",
		"2018 - 2020",
		"Boston College",
		"B.A. in Economics",
		"2014 - 2018",
	}, "\n")

	entries := ParseEducation(section)
	require.Len(t, entries, 2)
	assert.Equal(t, "Harvard University", types.StringValue(entries[0].SchoolName))
	assert.Equal(t, "Boston College", types.StringValue(entries[1].SchoolName))
}

func TestParseEducationBareSchoolDroppedOnFlush(t *testing.T) {
	// A school line immediately followed by another school line carries
	// nothing worth keeping.
	section := strings.Join([]string{
		"Oxford University",
		"Cambridge University",
		"PhD in Physics",
		"2019 - 2023",
	}, "\n")

	entries := ParseEducation(section)
	require.Len(t, entries, 1)
	assert.Equal(t, "Cambridge University", types.StringValue(entries[0].SchoolName))
	assert.Equal(t, "PhD in Physics", types.StringValue(entries[0].Degree))
}

func TestParseEducationOngoing(t *testing.T) {
	section := strings.Join([]string{
		"Columbia University",
		"Bachelor of Arts in History",
		"2021 - Present",
	}, "\n")

	entries := ParseEducation(section)
	require.Len(t, entries, 1)
	assert.Equal(t, "2021", types.StringValue(entries[0].StartDate))
	assert.Nil(t, entries[0].EndDate)
}

func TestParseEducationExpectedGraduation(t *testing.T) {
	section := strings.Join([]string{
		"State University",
		"B.Tech in Mechanical Engineering",
		"Expected Graduation: 2026",
	}, "\n")

	entries := ParseEducation(section)
	require.Len(t, entries, 1)
	assert.Equal(t, "2026", types.StringValue(entries[0].EndDate))
}

func TestParseEducationLoneDateFillsEndFirst(t *testing.T) {
	section := strings.Join([]string{
		"Parsons School of Design",
		"Diploma in Visual Arts",
		"2015",
	}, "\n")

	entries := ParseEducation(section)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].StartDate)
	assert.Equal(t, "2015", types.StringValue(entries[0].EndDate))
}

func TestParseEducationReversedDatesSwapped(t *testing.T) {
	section := strings.Join([]string{
		"Lakeside Community College",
		"Associate Degree in Nursing",
		"2016 - 2012",
	}, "\n")

	entries := ParseEducation(section)
	require.Len(t, entries, 1)
	assert.Equal(t, "2012", types.StringValue(entries[0].StartDate))
	assert.Equal(t, "2016", types.StringValue(entries[0].EndDate))
}

func TestParseEducationEmptyInput(t *testing.T) {
	assert.Empty(t, ParseEducation(""))
	assert.Empty(t, ParseEducation("  \n \n"))
}
