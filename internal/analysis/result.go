package analysis

import (
	"fmt"
	"strings"
)

// Source tells the caller which path produced a result.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Result is the outcome of matching a resume against a job description.
// Matched and missing skill lists are ordered sets with case-insensitive
// uniqueness and are disjoint once the consistency corrector has run.
type Result struct {
	Score         int      `json:"score" mapstructure:"score"`
	MatchedSkills []string `json:"matched_skills" mapstructure:"matched_skills"`
	MissingSkills []string `json:"missing_skills" mapstructure:"missing_skills"`
	Suggestions   []string `json:"suggestions" mapstructure:"suggestions"`
	Summary       string   `json:"summary" mapstructure:"summary"`
	Source        Source   `json:"source" mapstructure:"-"`
}

// StrengthResult scores a resume on its own, independent of any job.
type StrengthResult struct {
	Overall         int      `json:"overall_score" mapstructure:"overall_score"`
	ATS             int      `json:"ats_score" mapstructure:"ats_score"`
	SkillDiversity  int      `json:"skill_diversity_score" mapstructure:"skill_diversity_score"`
	ExperienceDepth int      `json:"experience_depth_score" mapstructure:"experience_depth_score"`
	Strengths       []string `json:"strengths" mapstructure:"strengths"`
	Weaknesses      []string `json:"weaknesses" mapstructure:"weaknesses"`
	Suggestions     []string `json:"improvement_suggestions" mapstructure:"improvement_suggestions"`
	Summary         string   `json:"summary" mapstructure:"summary"`
	Source          Source   `json:"source" mapstructure:"-"`
}

// Stage identifies where in the pipeline a failure happened.
type Stage string

const (
	StageProvider Stage = "provider"
	StageStream   Stage = "stream"
	StageExtract  Stage = "extract"
)

// PipelineError is the single error type flowing through the orchestrator.
// It never escapes Analyze; the orchestrator converts it into the fallback
// result at one decision point.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func pipelineErr(stage Stage, err error) *PipelineError {
	return &PipelineError{Stage: stage, Err: err}
}

// dedupeFold removes duplicates case-insensitively while preserving the first
// occurrence and its original casing.
func dedupeFold(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
