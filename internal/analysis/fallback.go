package analysis

import (
	"fmt"
	"math"
	"strings"
)

// skillVocabulary is the fixed candidate-skill list for the deterministic
// fallback path. Matching is case-insensitive substring presence.
var skillVocabulary = []string{
	"python", "java", "javascript", "typescript", "golang", "rust", "c++", "c#",
	"ruby", "php", "swift", "kotlin", "scala", "sql", "html", "css",
	"react", "angular", "vue", "svelte", "node.js", "django", "flask",
	"spring", "rails", ".net", "graphql", "rest api", "grpc",
	"postgresql", "mysql", "mongodb", "redis", "elasticsearch", "sqlite",
	"kafka", "rabbitmq", "spark", "hadoop", "airflow",
	"docker", "kubernetes", "terraform", "ansible", "jenkins", "ci/cd",
	"aws", "azure", "gcp", "linux", "git",
	"pandas", "numpy", "tensorflow", "pytorch", "scikit-learn",
	"machine learning", "deep learning", "data analysis", "nlp",
	"microservices", "distributed systems", "system design",
	"agile", "scrum",
}

// Fallback is the deterministic keyword-based analyzer used whenever the
// model path is unavailable or returns unusable output. It is a pure
// function: identical inputs always produce identical output.
func Fallback(jobText, resumeText string) *Result {
	jobSkills := vocabularyIn(jobText)
	resumeSkills := vocabularyIn(resumeText)

	matched := make([]string, 0, len(jobSkills))
	missing := make([]string, 0, len(jobSkills))
	for _, skill := range jobSkills {
		if containsSkill(resumeSkills, skill) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	score := int(math.Round(100 * float64(len(matched)) / math.Max(1, float64(len(jobSkills)))))

	return &Result{
		Score:         score,
		MatchedSkills: matched,
		MissingSkills: missing,
		Suggestions:   fallbackSuggestions(matched, missing),
		Summary: fmt.Sprintf("Keyword analysis found %d of %d required skills in the resume.",
			len(matched), len(jobSkills)),
		Source: SourceFallback,
	}
}

// vocabularyIn returns the vocabulary entries present in the text, in
// vocabulary order.
func vocabularyIn(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, 16)
	for _, skill := range skillVocabulary {
		if strings.Contains(lower, skill) {
			found = append(found, skill)
		}
	}
	return found
}

func containsSkill(skills []string, skill string) bool {
	for _, s := range skills {
		if s == skill {
			return true
		}
	}
	return false
}

func fallbackSuggestions(matched, missing []string) []string {
	if len(matched) == 0 && len(missing) == 0 {
		return []string{"Add specific technology names to the resume so required skills can be matched against the job description."}
	}

	suggestions := make([]string, 0, 3)
	if len(missing) > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"Gain experience with or highlight these missing skills: %s.",
			strings.Join(topN(missing, 3), ", ")))
	}
	if len(matched) > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"Emphasize proven experience with %s near the top of the resume.",
			strings.Join(topN(matched, 3), ", ")))
	}
	suggestions = append(suggestions, "Mirror the job description's terminology for the skills you already have.")
	return suggestions
}

func topN(values []string, n int) []string {
	if len(values) <= n {
		return values
	}
	return values[:n]
}
