package jobsearch

import "strings"

// mockURLPrefix marks sample listings returned when no search provider is
// configured. Consumers can detect it to label results as samples.
const mockURLPrefix = "https://example.com/jobs/"

// IsMockURL reports whether the listing came from the built-in sample set.
func IsMockURL(url string) bool {
	return strings.HasPrefix(url, mockURLPrefix)
}

// mockCatalog holds the sample postings returned when no search provider is
// configured. Descriptions are complete enough for the scorer to produce a
// meaningful match report. The catalog never exceeds the scored page size,
// so an unconfigured run still reports the whole sample set.
var mockCatalog = []Listing{
	{
		Title:       "Senior Backend Engineer",
		Company:     "Streamline Systems",
		URL:         mockURLPrefix + "senior-backend-engineer",
		Description: "We are hiring a senior backend engineer to design and operate high-throughput services. Requirements: 5+ years with Golang or Python, PostgreSQL, Redis, Docker, Kubernetes, and AWS. You will own services end to end, from API design through deployment and monitoring.",
	},
	{
		Title:       "Full Stack Developer",
		Company:     "Brightpath Labs",
		URL:         mockURLPrefix + "full-stack-developer",
		Description: "Join our product team as a full stack developer. Responsibilities include building React frontends and Node.js services backed by PostgreSQL. Experience with TypeScript, REST API design, CI/CD, and Docker required. Remote friendly.",
	},
	{
		Title:       "Data Engineer",
		Company:     "Northwind Analytics",
		URL:         mockURLPrefix + "data-engineer",
		Description: "We are looking for a data engineer to build batch and streaming pipelines. Requirements: Python, SQL, Spark, Airflow, Kafka, and a public cloud (AWS or GCP). Experience with dbt and Snowflake is a plus.",
	},
}

// mockListings returns sample postings matching the requested role. When the
// role matches nothing, the full catalog is returned so the pipeline always
// has candidates to score.
func mockListings(role string) []Listing {
	terms := strings.Fields(strings.ToLower(role))
	if len(terms) == 0 {
		return append([]Listing(nil), mockCatalog...)
	}

	var matched []Listing
	for _, l := range mockCatalog {
		haystack := strings.ToLower(l.Title + " " + l.Description)
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				matched = append(matched, l)
				break
			}
		}
	}
	if len(matched) == 0 {
		return append([]Listing(nil), mockCatalog...)
	}
	return matched
}
