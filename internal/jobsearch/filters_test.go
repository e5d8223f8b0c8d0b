package jobsearch

import (
	"testing"

	"github.com/resumatch/resumatch/internal/websearch"
)

func TestAggregatorFilterDropsBoardVariants(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		url  string
		drop bool
	}{
		{name: "indeed com", url: "https://www.indeed.com/viewjob?jk=1", drop: true},
		{name: "indeed ca", url: "https://ca.indeed.ca/viewjob?jk=2", drop: true},
		{name: "indeed co uk", url: "https://www.indeed.co.uk/viewjob?jk=3", drop: true},
		{name: "linkedin", url: "https://www.linkedin.com/jobs/view/12345", drop: true},
		{name: "glassdoor", url: "https://www.glassdoor.com/job-listing/abc", drop: true},
		{name: "company careers page", url: "https://careers.acme.com/roles/backend", drop: false},
		{name: "greenhouse hosted", url: "https://boards.greenhouse.io/acme/jobs/42", drop: false},
	}

	filter := NewAggregatorFilter()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in := []websearch.Result{{Title: "Backend Engineer", URL: tc.url}}
			out, step := filter.Apply(in)

			wantLeft := 1
			if tc.drop {
				wantLeft = 0
			}
			if len(out) != wantLeft {
				t.Fatalf("expected %d results, got %d for %s", wantLeft, len(out), tc.url)
			}
			if step.Initial != 1 || step.Left != wantLeft {
				t.Fatalf("unexpected step stats: %+v", step)
			}
		})
	}
}

func TestListingPageFilter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		result websearch.Result
		drop   bool
	}{
		{
			name:   "search url",
			result: websearch.Result{Title: "Backend Engineer", URL: "https://example.com/jobs?q=backend"},
			drop:   true,
		},
		{
			name:   "index page title",
			result: websearch.Result{Title: "250 Backend Engineer Jobs in Berlin", URL: "https://example.com/de/berlin"},
			drop:   true,
		},
		{
			name:   "single posting",
			result: websearch.Result{Title: "Backend Engineer", URL: "https://careers.acme.com/roles/backend-42"},
			drop:   false,
		},
	}

	filter := NewListingPageFilter()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, _ := filter.Apply([]websearch.Result{tc.result})
			if tc.drop && len(out) != 0 {
				t.Fatalf("expected drop, kept %+v", out)
			}
			if !tc.drop && len(out) != 1 {
				t.Fatal("expected keep, result was dropped")
			}
		})
	}
}

func TestArticleFilter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		result websearch.Result
		drop   bool
	}{
		{
			name:   "howto guide",
			result: websearch.Result{Title: "How to Become a Backend Engineer in 2026", URL: "https://example.com/posts/1"},
			drop:   true,
		},
		{
			name:   "blog url",
			result: websearch.Result{Title: "Backend Engineer", URL: "https://example.com/blog/hiring-backend"},
			drop:   true,
		},
		{
			name:   "interview prep",
			result: websearch.Result{Title: "Backend Engineer Interview Questions", URL: "https://example.com/prep"},
			drop:   true,
		},
		{
			name:   "real posting",
			result: websearch.Result{Title: "Backend Engineer", URL: "https://careers.acme.com/roles/42"},
			drop:   false,
		},
	}

	filter := NewArticleFilter()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out, _ := filter.Apply([]websearch.Result{tc.result})
			if tc.drop && len(out) != 0 {
				t.Fatalf("expected drop, kept %+v", out)
			}
			if !tc.drop && len(out) != 1 {
				t.Fatal("expected keep, result was dropped")
			}
		})
	}
}

func TestPostingIndicatorFilterKeepsPostings(t *testing.T) {
	t.Parallel()

	in := []websearch.Result{
		{Title: "Backend Engineer", Content: "Responsibilities include building services. Apply now.", URL: "https://acme.com/r/1"},
		{Title: "Backend Engineer musings", Content: "Random thoughts on backends.", URL: "https://someblog.dev/p/2"},
		{Title: "Backend Engineer", Content: "", URL: "https://boards.greenhouse.io/acme/jobs/3"},
	}

	out, step := NewPostingIndicatorFilter().Apply(in)

	if len(out) != 2 {
		t.Fatalf("expected 2 results, got %d", len(out))
	}
	if out[0].URL != in[0].URL || out[1].URL != in[2].URL {
		t.Fatalf("unexpected survivors: %+v", out)
	}
	if step.Dropped != 1 {
		t.Fatalf("expected 1 dropped, got %d", step.Dropped)
	}
}

func TestPostingIndicatorFilterEscapeHatch(t *testing.T) {
	t.Parallel()

	in := []websearch.Result{
		{Title: "Untitled", Content: "nothing recognizable", URL: "https://a.example.net/1"},
		{Title: "Untitled", Content: "nothing recognizable", URL: "https://b.example.net/2"},
	}

	out, step := NewPostingIndicatorFilter().Apply(in)

	if len(out) != len(in) {
		t.Fatalf("expected passthrough of %d results, got %d", len(in), len(out))
	}
	if step.Dropped != 0 {
		t.Fatalf("expected 0 dropped on passthrough, got %d", step.Dropped)
	}
}

func TestRunFiltersChain(t *testing.T) {
	t.Parallel()

	in := []websearch.Result{
		{Title: "Backend Engineer", Content: "Apply now", URL: "https://www.indeed.co.uk/viewjob?jk=3"},
		{Title: "How to Become a Backend Engineer", Content: "", URL: "https://example.com/posts/1"},
		{Title: "Backend Engineer", Content: "Responsibilities and requirements inside.", URL: "https://careers.acme.com/roles/42"},
	}

	out := runFilters(nil, defaultFilters(), in)

	if len(out) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(out))
	}
	if out[0].URL != "https://careers.acme.com/roles/42" {
		t.Fatalf("unexpected survivor: %+v", out[0])
	}
}
