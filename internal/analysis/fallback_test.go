package analysis

import (
	"reflect"
	"testing"
)

func TestFallbackScenario(t *testing.T) {
	t.Parallel()

	res := Fallback("Senior engineer needs Python, Docker", "5 years Python experience")

	if !reflect.DeepEqual(res.MatchedSkills, []string{"python"}) {
		t.Fatalf("unexpected matched skills: %v", res.MatchedSkills)
	}
	if !reflect.DeepEqual(res.MissingSkills, []string{"docker"}) {
		t.Fatalf("unexpected missing skills: %v", res.MissingSkills)
	}
	if res.Score != 50 {
		t.Fatalf("expected score 50, got %d", res.Score)
	}
	if res.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %s", res.Source)
	}
}

func TestFallbackIsPure(t *testing.T) {
	t.Parallel()

	job := "Backend role: Go (golang), PostgreSQL, Kafka, Kubernetes, Terraform"
	resume := "Golang services on Kubernetes with PostgreSQL, some Kafka"

	first := Fallback(job, resume)
	second := Fallback(job, resume)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("fallback is not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestFallbackScoreBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		job    string
		resume string
	}{
		{name: "no skills anywhere", job: "We need a nice person", resume: "I am a nice person"},
		{name: "everything matches", job: "python docker", resume: "python docker"},
		{name: "nothing matches", job: "rust kafka terraform", resume: "watercolor painting"},
		{name: "empty job text", job: "", resume: "python"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Fallback(tt.job, tt.resume)
			if res.Score < 0 || res.Score > 100 {
				t.Fatalf("score out of range: %d", res.Score)
			}
			if len(res.Suggestions) == 0 {
				t.Fatal("expected at least one suggestion")
			}
			for _, m := range res.MatchedSkills {
				for _, s := range res.MissingSkills {
					if m == s {
						t.Fatalf("skill %q in both lists", m)
					}
				}
			}
		})
	}
}

func TestFallbackGenericSuggestionWhenNoSkillsFound(t *testing.T) {
	t.Parallel()

	res := Fallback("We need a friendly colleague", "I am friendly")
	if len(res.Suggestions) != 1 {
		t.Fatalf("expected single generic suggestion, got %v", res.Suggestions)
	}
	if res.Score != 0 {
		t.Fatalf("expected zero score, got %d", res.Score)
	}
}
