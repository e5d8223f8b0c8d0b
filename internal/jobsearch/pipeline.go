package jobsearch

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/resumatch/resumatch/internal/analysis"
	"github.com/resumatch/resumatch/internal/websearch"
)

const (
	// queryIntent biases web search toward pages where someone is actually
	// hiring rather than discussing the role.
	queryIntent = "job opening hiring apply"

	defaultMaxScored   = 3
	defaultConcurrency = 2
)

// Searcher fetches raw web results for a query. A nil Searcher means no
// provider is configured and the pipeline serves sample listings instead.
type Searcher interface {
	Search(ctx context.Context, query, location string) ([]websearch.Result, error)
}

// Scorer produces a match report for one posting against a resume.
type Scorer interface {
	Analyze(ctx context.Context, jobText, resumeText string) (*analysis.Result, error)
}

// Pipeline discovers postings on the web, filters out everything that is not
// a real posting and scores the best candidates against a resume.
type Pipeline struct {
	searcher    Searcher
	scorer      Scorer
	log         *zap.Logger
	filters     []Filter
	maxScored   int
	concurrency int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMaxScored caps how many filtered candidates receive a full match
// report per run.
func WithMaxScored(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.maxScored = n
		}
	}
}

// WithFilters replaces the default filter chain.
func WithFilters(filters []Filter) Option {
	return func(p *Pipeline) { p.filters = filters }
}

// New creates a discovery pipeline. searcher may be nil, in which case runs
// return the built-in sample listings.
func New(searcher Searcher, scorer Scorer, log *zap.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		searcher:    searcher,
		scorer:      scorer,
		log:         log,
		filters:     defaultFilters(),
		maxScored:   defaultMaxScored,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// BuildQuery assembles the search query for a role. Exported so callers can
// show the user what was actually searched.
func BuildQuery(role string) string {
	return fmt.Sprintf("%s %s", strings.TrimSpace(role), queryIntent)
}

// Find runs the full discovery pipeline: search, filter, score, rank.
// Provider failures degrade to an empty result rather than an error since a
// flaky search backend should not take the whole session down.
func (p *Pipeline) Find(ctx context.Context, role, location, resumeText string) (*SearchResult, error) {
	query := BuildQuery(role)

	candidates, totalFound := p.gather(ctx, role, query, location)
	if len(candidates) > p.maxScored {
		candidates = candidates[:p.maxScored]
	}

	p.score(ctx, candidates, resumeText)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	return &SearchResult{
		Jobs:       candidates,
		TotalFound: totalFound,
		Query:      query,
	}, nil
}

// gather produces the filtered candidate list and the total count before
// truncation to the scored page.
func (p *Pipeline) gather(ctx context.Context, role, query, location string) ([]Listing, int) {
	if p.searcher == nil {
		if p.log != nil {
			p.log.Info("no search provider configured, serving sample listings")
		}
		listings := mockListings(role)
		return listings, len(listings)
	}

	results, err := p.searcher.Search(ctx, query, location)
	if err != nil {
		if p.log != nil {
			p.log.Warn("web search failed", zap.Error(err))
		}
		return nil, 0
	}

	filtered := runFilters(p.log, p.filters, results)

	listings := make([]Listing, 0, len(filtered))
	for _, r := range filtered {
		url := listingURL(r.URL)
		listings = append(listings, Listing{
			Title:       r.Title,
			Company:     companyFromURL(url),
			URL:         url,
			Description: capDescription(r.Content),
		})
	}
	return listings, len(listings)
}

// score fills in match reports in place. A candidate whose scoring fails
// keeps score zero and stays in the list.
func (p *Pipeline) score(ctx context.Context, listings []Listing, resumeText string) {
	if p.scorer == nil || len(listings) == 0 {
		return
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(p.concurrency)

	for i := range listings {
		group.Go(func() error {
			l := &listings[i]
			res, err := p.scorer.Analyze(ctx, l.Title+"\n\n"+l.Description, resumeText)
			if err != nil {
				if p.log != nil {
					p.log.Warn("scoring failed",
						zap.String("url", l.URL),
						zap.Error(err),
					)
				}
				return nil
			}
			l.Score = res.Score
			l.MatchedSkills = res.MatchedSkills
			l.MissingSkills = res.MissingSkills
			return nil
		})
	}

	// Workers never return errors, failures only zero out one candidate.
	_ = group.Wait()
}
