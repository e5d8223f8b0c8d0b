package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/resumatch/resumatch/internal/ai"
)

type stubGenerator struct {
	response   string
	err        error
	streamErr  error
	lastPrompt string
}

func (s *stubGenerator) Name() ai.Provider { return ai.ProviderAnthropic }

func (s *stubGenerator) Model() string { return "stub-model" }

func (s *stubGenerator) Generate(_ context.Context, prompt string) (ai.Stream, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return nil, s.err
	}
	return &ai.SliceStream{
		Events: []ai.Event{{Kind: ai.EventTextDelta, Text: s.response}},
		Error:  s.streamErr,
	}, nil
}

func TestAnalyzeModelPath(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: `{"score": 140, "matched_skills": ["Python"], "missing_skills": ["Python"], "summary": "fit"}`}
	analyzer := New(stub, zap.NewNop())

	res, err := analyzer.Analyze(context.Background(), "Requires Python", "Python developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Source != SourceModel {
		t.Fatalf("expected model source, got %s", res.Source)
	}
	if res.Score != 100 {
		t.Fatalf("expected clamped score 100, got %d", res.Score)
	}
	if len(res.MatchedSkills) != 1 || res.MatchedSkills[0] != "Python" {
		t.Fatalf("unexpected matched skills: %v", res.MatchedSkills)
	}
	if len(res.MissingSkills) != 0 {
		t.Fatalf("expected corrected missing skills, got %v", res.MissingSkills)
	}
	if !strings.Contains(stub.lastPrompt, "Requires Python") {
		t.Fatal("expected job text in prompt")
	}
}

func TestAnalyzeFallsBackOnProviderError(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{err: errors.New("authentication_error: invalid x-api-key")}
	analyzer := New(stub, zap.NewNop())

	res, err := analyzer.Analyze(context.Background(), "Senior engineer needs Python, Docker", "5 years Python experience")
	if err != nil {
		t.Fatalf("provider error escaped the analyzer: %v", err)
	}

	if res.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %s", res.Source)
	}
	if res.Score != 50 {
		t.Fatalf("expected deterministic fallback score 50, got %d", res.Score)
	}
}

func TestAnalyzeFallsBackOnStreamError(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: `{"score": 90`, streamErr: errors.New("overloaded_error")}
	analyzer := New(stub, zap.NewNop())

	res, err := analyzer.Analyze(context.Background(), "Python job", "Python resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %s", res.Source)
	}
}

func TestAnalyzeFallsBackOnUnusableOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response string
	}{
		{name: "prose only", response: "I am sorry, I cannot help with that."},
		{name: "empty output", response: "   "},
		{name: "error object", response: `{"error": "rate limited"}`},
		{name: "wrong shape", response: `{"score": "excellent"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			stub := &stubGenerator{response: tt.response}
			analyzer := New(stub, zap.NewNop())

			res, err := analyzer.Analyze(context.Background(), "Python job", "Python resume")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Source != SourceFallback {
				t.Fatalf("expected fallback source, got %s", res.Source)
			}
			if res.Score < 0 || res.Score > 100 {
				t.Fatalf("score out of range: %d", res.Score)
			}
		})
	}
}

func TestAnalyzeWithoutGeneratorUsesFallback(t *testing.T) {
	t.Parallel()

	analyzer := New(nil, zap.NewNop())
	res, err := analyzer.Analyze(context.Background(), "Python job", "Python resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %s", res.Source)
	}
}

func TestAnalyzeRejectsEmptyResume(t *testing.T) {
	t.Parallel()

	analyzer := New(nil, zap.NewNop())
	if _, err := analyzer.Analyze(context.Background(), "Python job", "  "); !errors.Is(err, ErrEmptyResume) {
		t.Fatalf("expected ErrEmptyResume, got %v", err)
	}
	if _, err := analyzer.Strength(context.Background(), ""); !errors.Is(err, ErrEmptyResume) {
		t.Fatalf("expected ErrEmptyResume, got %v", err)
	}
}

func TestStrengthModelAndFallbackPaths(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: `{"overall_score": 85, "ats_score": 90, "skill_diversity_score": 70, "experience_depth_score": 80, "summary": "strong"}`}
	analyzer := New(stub, zap.NewNop())

	res, err := analyzer.Strength(context.Background(), "Experienced Python developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceModel || res.Overall != 85 {
		t.Fatalf("unexpected result: %+v", res)
	}

	broken := New(&stubGenerator{err: errors.New("quota exceeded")}, zap.NewNop())
	res, err = broken.Strength(context.Background(), "Experienced Python developer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceFallback {
		t.Fatalf("expected fallback source, got %s", res.Source)
	}
	for _, score := range []int{res.Overall, res.ATS, res.SkillDiversity, res.ExperienceDepth} {
		if score < 0 || score > 100 {
			t.Fatalf("score out of range: %d", score)
		}
	}
}

func TestStrengthFallbackIsPure(t *testing.T) {
	t.Parallel()

	resume := "Experience\nBuilt and scaled Python services, reduced latency 40%.\nSkills: Python, Docker, Kubernetes\nEducation: BSc\nalice@example.com"
	first := StrengthFallback(resume)
	second := StrengthFallback(resume)
	if first.Overall != second.Overall || first.ATS != second.ATS ||
		first.SkillDiversity != second.SkillDiversity || first.ExperienceDepth != second.ExperienceDepth {
		t.Fatalf("strength fallback not deterministic:\n%+v\n%+v", first, second)
	}
}
