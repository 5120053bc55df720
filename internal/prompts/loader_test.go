package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetResumeExtraction(t *testing.T) {
	ClearCache()

	tmpl, err := Get("parsing.json", "resume_extraction")
	require.NoError(t, err)
	assert.Contains(t, tmpl, "{{.Resume}}")
	assert.Contains(t, tmpl, "ONLY valid JSON")
}

func TestGetMissingKey(t *testing.T) {
	_, err := Get("parsing.json", "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestGetMissingFile(t *testing.T) {
	_, err := Get("missing.json", "resume_extraction")
	require.Error(t, err)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("missing.json", "anything")
	})
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		expected string
	}{
		{
			name:     "Single placeholder",
			template: "Resume:\n{{.Resume}}",
			data:     map[string]string{"Resume": "Jane Doe"},
			expected: "Resume:\nJane Doe",
		},
		{
			name:     "Repeated placeholder",
			template: "{{.X}} and {{.X}}",
			data:     map[string]string{"X": "a"},
			expected: "a and a",
		},
		{
			name:     "Unknown placeholder untouched",
			template: "{{.Other}}",
			data:     map[string]string{"Resume": "x"},
			expected: "{{.Other}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.template, tt.data))
		})
	}
}

func TestCacheReuse(t *testing.T) {
	ClearCache()

	first, err := Get("parsing.json", "resume_extraction")
	require.NoError(t, err)
	second, err := Get("parsing.json", "resume_extraction")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
