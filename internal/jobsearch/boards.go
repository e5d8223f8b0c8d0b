package jobsearch

import "strings"

// aggregatorFragments is the single shared denylist of job-board brands.
// Entries are domain-name fragments, not host suffixes, so country-specific
// top-level-domain variants of the same brand (indeed.com, indeed.ca,
// indeed.co.uk) are all excluded. Both the raw-search filter and the ranking
// filter consume this table.
var aggregatorFragments = []string{
	"indeed.",
	"linkedin.",
	"glassdoor.",
	"ziprecruiter.",
	"monster.",
	"simplyhired.",
	"careerbuilder.",
	"dice.com",
	"adzuna.",
	"jooble.",
	"talent.com",
	"jobrapido.",
	"bebee.",
	"lensa.",
	"snagajob.",
	"wellfound.",
	"weworkremotely.",
	"remoteok.",
	"remote.co",
	"flexjobs.",
	"reed.co",
	"totaljobs.",
	"seek.com",
	"stepstone.",
	"hh.ru",
	"reddit.",
}

// isAggregatorURL reports whether the URL belongs to a denylisted job board.
func isAggregatorURL(url string) bool {
	lower := strings.ToLower(url)
	for _, fragment := range aggregatorFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
