package jobsearch

import (
	"strings"

	"go.uber.org/zap"

	"github.com/resumatch/resumatch/internal/websearch"
)

// Filter is a single filtering step applied to raw search results.
type Filter interface {
	Name() string
	Apply(results []websearch.Result) ([]websearch.Result, Step)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// runFilters executes the supplied filters sequentially, logging a summary
// line per step.
func runFilters(log *zap.Logger, steps []Filter, results []websearch.Result) []websearch.Result {
	for _, step := range steps {
		next, info := step.Apply(results)
		if log != nil {
			log.Debug("filter step",
				zap.String("name", step.Name()),
				zap.Int("initial", info.Initial),
				zap.Int("dropped", info.Dropped),
				zap.Int("left", info.Left),
			)
		}
		results = next
	}
	return results
}

// defaultFilters returns the standard chain in evaluation order.
func defaultFilters() []Filter {
	return []Filter{
		NewAggregatorFilter(),
		NewListingPageFilter(),
		NewArticleFilter(),
		NewPostingIndicatorFilter(),
	}
}

type aggregatorFilter struct{}

// NewAggregatorFilter creates a filter that removes results hosted on
// job-board aggregators. Those pages rarely hold a full description and
// often require login to view.
func NewAggregatorFilter() Filter { return &aggregatorFilter{} }

func (f *aggregatorFilter) Name() string { return "aggregators" }

func (f *aggregatorFilter) Apply(results []websearch.Result) ([]websearch.Result, Step) {
	initial := len(results)
	kept := results[:0:0]
	for _, r := range results {
		if isAggregatorURL(r.URL) {
			continue
		}
		kept = append(kept, r)
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}

// listingPageFragments mark URLs that point at search or index pages rather
// than a single posting.
var listingPageFragments = []string{
	"/search?",
	"/search/",
	"/jobs?",
	"?q=",
	"&q=",
	"keywords=",
	"/browse",
	"/categories/",
	"/tags/",
}

// listingTitleFragments mark titles of multi-job index pages.
var listingTitleFragments = []string{
	"jobs in ",
	"job openings",
	"job listings",
	"open positions at",
	"vacancies in",
	"search results",
	"browse jobs",
}

type listingPageFilter struct{}

// NewListingPageFilter creates a filter that removes search and index pages.
func NewListingPageFilter() Filter { return &listingPageFilter{} }

func (f *listingPageFilter) Name() string { return "listing_pages" }

func (f *listingPageFilter) Apply(results []websearch.Result) ([]websearch.Result, Step) {
	initial := len(results)
	kept := results[:0:0]
	for _, r := range results {
		if isListingPage(r) {
			continue
		}
		kept = append(kept, r)
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}

func isListingPage(r websearch.Result) bool {
	url := strings.ToLower(r.URL)
	for _, fragment := range listingPageFragments {
		if strings.Contains(url, fragment) {
			return true
		}
	}
	title := strings.ToLower(r.Title)
	for _, fragment := range listingTitleFragments {
		if strings.Contains(title, fragment) {
			return true
		}
	}
	return false
}

// articleFragments mark editorial content masquerading as postings in
// search results.
var articleFragments = []string{
	"how to",
	"top 10",
	"top 5",
	"best companies",
	"career advice",
	"interview questions",
	"salary guide",
	"guide to",
	"tips for",
	"what is a",
	"/blog/",
	"/articles/",
	"/news/",
}

type articleFilter struct{}

// NewArticleFilter creates a filter that removes guides, blog posts and
// other editorial content.
func NewArticleFilter() Filter { return &articleFilter{} }

func (f *articleFilter) Name() string { return "articles" }

func (f *articleFilter) Apply(results []websearch.Result) ([]websearch.Result, Step) {
	initial := len(results)
	kept := results[:0:0]
	for _, r := range results {
		if isArticle(r) {
			continue
		}
		kept = append(kept, r)
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}

func isArticle(r websearch.Result) bool {
	title := strings.ToLower(r.Title)
	url := strings.ToLower(r.URL)
	for _, fragment := range articleFragments {
		if strings.Contains(title, fragment) || strings.Contains(url, fragment) {
			return true
		}
	}
	return false
}

// postingIndicators are phrases a real job posting almost always carries in
// its title or snippet.
var postingIndicators = []string{
	"hiring",
	"apply",
	"we are looking",
	"we're looking",
	"join our team",
	"join us",
	"responsibilities",
	"requirements",
	"qualifications",
	"job description",
	"position",
	"opening",
	"careers",
	"/careers",
	"/jobs/",
	"greenhouse.io",
	"lever.co",
	"workable.com",
	"ashbyhq.com",
	"myworkdayjobs.com",
	"smartrecruiters.com",
	"bamboohr.com",
}

type postingIndicatorFilter struct{}

// NewPostingIndicatorFilter creates a filter that keeps only results whose
// title, snippet or URL carries a posting indicator. If nothing passes, the
// input is returned unchanged so a run over unusual but legitimate postings
// still produces candidates.
func NewPostingIndicatorFilter() Filter { return &postingIndicatorFilter{} }

func (f *postingIndicatorFilter) Name() string { return "posting_indicators" }

func (f *postingIndicatorFilter) Apply(results []websearch.Result) ([]websearch.Result, Step) {
	initial := len(results)
	kept := results[:0:0]
	for _, r := range results {
		if !looksLikePosting(r) {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) == 0 {
		return results, Step{Initial: initial, Dropped: 0, Left: initial}
	}
	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}
}

func looksLikePosting(r websearch.Result) bool {
	haystack := strings.ToLower(r.Title + " " + r.Content + " " + r.URL)
	for _, indicator := range postingIndicators {
		if strings.Contains(haystack, indicator) {
			return true
		}
	}
	return false
}
