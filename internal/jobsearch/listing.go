package jobsearch

import (
	"strings"
)

// Listing is a single job opportunity surfaced by the discovery pipeline.
type Listing struct {
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	URL           string   `json:"url"`
	Description   string   `json:"description"`
	Score         int      `json:"score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// SearchResult is the outcome of a discovery run. TotalFound counts every
// listing that survived filtering, even those beyond the scored page.
type SearchResult struct {
	Jobs       []Listing `json:"jobs"`
	TotalFound int       `json:"total_found"`
	Query      string    `json:"query"`
}

// maxDescriptionLen bounds a listing description. Search snippets are short,
// but a backend may echo a whole page body into content.
const maxDescriptionLen = 2000

// listingURL substitutes the placeholder for source URLs that point nowhere.
func listingURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" || strings.EqualFold(url, "about:blank") {
		return mockURLPrefix + "unlisted"
	}
	return url
}

// capDescription bounds a description to maxDescriptionLen runes.
func capDescription(s string) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= maxDescriptionLen {
		return string(runes)
	}
	return string(runes[:maxDescriptionLen])
}

// companyFromURL derives a readable company name from a listing URL host.
// "https://careers.acme.com/roles/42" becomes "acme".
func companyFromURL(url string) string {
	host := url
	if idx := strings.Index(host, "://"); idx >= 0 {
		host = host[idx+3:]
	}
	if idx := strings.IndexAny(host, "/?#"); idx >= 0 {
		host = host[:idx]
	}
	host = strings.TrimPrefix(host, "www.")
	for _, prefix := range []string{"careers.", "jobs.", "apply.", "boards.", "job-boards."} {
		host = strings.TrimPrefix(host, prefix)
	}
	if idx := strings.Index(host, "."); idx >= 0 {
		host = host[:idx]
	}
	if host == "" {
		return "Unknown"
	}
	return host
}
