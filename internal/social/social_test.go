package social

import (
	"testing"

	"github.com/jonathan/resume-parser/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	text := "Reach me at linkedin.com/in/jane-doe or https://github.com/janedoe.\n" +
		"Portfolio: www.janedoe.dev | jane@gmail.com"

	links := ExtractLinks(text)

	byLabel := map[string]string{}
	for _, l := range links {
		byLabel[l.Label] = l.URL
	}

	assert.Equal(t, "https://linkedin.com/in/jane-doe", byLabel["LinkedIn"])
	assert.Equal(t, "https://github.com/janedoe", byLabel["GitHub"])
	assert.Equal(t, "https://www.janedoe.dev", byLabel["Portfolio"])
}

func TestExtractLinksPortfolioHostAnchored(t *testing.T) {
	// wix.com merely contains "x.com"; only the real x.com host is a
	// Twitter handle.
	links := ExtractLinks("Site: wix.com/janedoe and x.com/janedoe")
	require.Len(t, links, 2)

	byLabel := map[string]string{}
	for _, l := range links {
		byLabel[l.Label] = l.URL
	}
	assert.Equal(t, "https://wix.com/janedoe", byLabel["Portfolio"])
	assert.Equal(t, "https://x.com/janedoe", byLabel["Twitter"])
}

func TestExtractLinksSkipsEmailDomains(t *testing.T) {
	links := ExtractLinks("contact jane@gmail.com or bob@outlook.com")
	assert.Empty(t, links)
}

func TestExtractLinksDedupes(t *testing.T) {
	links := ExtractLinks("github.com/janedoe and again github.com/janedoe")
	require.Len(t, links, 1)
	assert.Equal(t, types.SocialLink{Label: "GitHub", URL: "https://github.com/janedoe"}, links[0])
}

func TestExtractLinksEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractLinks(""))
	assert.Empty(t, ExtractLinks("no links in here"))
}
