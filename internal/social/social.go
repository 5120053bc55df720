// Package social extracts labeled profile and portfolio links from
// resume text.
package social

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-parser/internal/types"
)

var (
	reLinkedIn = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w-]+`)
	reGitHub   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w-]+`)
	reTwitter  = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:twitter\.com|x\.com)/[\w-]+`)
	reWebsite  = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?[\w-]+\.(?:com|net|org|io|dev|me|co)(?:/[\w-]*)*`)
)

// socialDomains already have a dedicated label and never count as
// portfolio sites. Matched against the whole host so domains that merely
// contain one of these as a substring (wix.com, box.com) pass through.
var socialDomains = []string{"linkedin.com", "github.com", "twitter.com", "x.com"}

// emailDomains are never portfolio sites.
var emailDomains = []string{"gmail.com", "yahoo.com", "outlook.com", "hotmail.com"}

// ExtractLinks finds LinkedIn, GitHub, Twitter, and portfolio URLs in the
// text, labeled by kind, deduplicated case-insensitively in first-seen
// order. Bare domains gain an https:// prefix.
func ExtractLinks(text string) []types.SocialLink {
	links := []types.SocialLink{}
	if strings.TrimSpace(text) == "" {
		return links
	}

	add := func(label, url string) {
		if !strings.HasPrefix(strings.ToLower(url), "http") {
			url = "https://" + url
		}
		links = append(links, types.SocialLink{Label: label, URL: url})
	}

	for _, m := range reLinkedIn.FindAllString(text, -1) {
		add("LinkedIn", m)
	}
	for _, m := range reGitHub.FindAllString(text, -1) {
		add("GitHub", m)
	}
	for _, m := range reTwitter.FindAllString(text, -1) {
		add("Twitter", m)
	}
	for _, m := range reWebsite.FindAllString(text, -1) {
		host := linkHost(m)
		if hostMatches(host, socialDomains) || hostMatches(host, emailDomains) {
			continue
		}
		add("Portfolio", m)
	}

	return dedupe(links)
}

// linkHost returns the lowercased host part of a matched URL.
func linkHost(url string) string {
	s := strings.ToLower(url)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	if i := strings.IndexAny(s, "/?#"); i >= 0 {
		s = s[:i]
	}
	return s
}

// hostMatches reports whether the host is one of the domains or a
// subdomain of one.
func hostMatches(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func dedupe(links []types.SocialLink) []types.SocialLink {
	seen := map[string]bool{}
	out := links[:0]
	for _, l := range links {
		key := strings.ToLower(l.URL)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, l)
	}
	return out
}
