package analysis

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// The extractor pulls a structured object out of free-form model output.
// Strategies are tried in order: a fenced code block, the first non-greedy
// {...} span, then the largest greedy span. The greedy span exists for nested
// objects where the non-greedy match cuts the object short.
var (
	fencedBlockRe   = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	minimalObjectRe = regexp.MustCompile(`(?s)\{.*?\}`)
	greedyObjectRe  = regexp.MustCompile(`(?s)\{.*\}`)
)

// extractObject returns the first parseable JSON object found in text, or
// false when no strategy produces one or the object carries an explicit
// error indicator.
func extractObject(text string) (map[string]any, bool) {
	spans := make([]string, 0, 3)
	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		spans = append(spans, m[1])
	}
	if m := minimalObjectRe.FindString(text); m != "" {
		spans = append(spans, m)
	}
	if m := greedyObjectRe.FindString(text); m != "" {
		spans = append(spans, m)
	}

	for _, span := range spans {
		var obj map[string]any
		if err := json.Unmarshal([]byte(span), &obj); err != nil {
			continue
		}
		if hasErrorIndicator(obj) {
			return nil, false
		}
		return obj, true
	}

	return nil, false
}

func hasErrorIndicator(obj map[string]any) bool {
	v, ok := obj["error"]
	if !ok {
		return false
	}
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case bool:
		return val
	default:
		return true
	}
}

// ExtractResult validates and decodes a fit-analysis object from raw model
// output. It returns false when no usable object is present: the caller is
// expected to fall back to the deterministic analyzer.
func ExtractResult(text string) (*Result, bool) {
	obj, ok := extractObject(text)
	if !ok {
		return nil, false
	}

	if !isNumeric(obj["score"]) {
		return nil, false
	}
	if !isListShaped(obj, "matched_skills") || !isListShaped(obj, "missing_skills") {
		return nil, false
	}

	var res Result
	if err := decodeWeak(obj, &res); err != nil {
		return nil, false
	}

	res.Score = clampScore(numeric(obj["score"]))
	res.MatchedSkills = dedupeFold(res.MatchedSkills)
	res.MissingSkills = dedupeFold(res.MissingSkills)
	res.Suggestions = boundSuggestions(res.Suggestions)

	return &res, true
}

// ExtractStrength validates and decodes a resume-strength object.
func ExtractStrength(text string) (*StrengthResult, bool) {
	obj, ok := extractObject(text)
	if !ok {
		return nil, false
	}

	if !isNumeric(obj["overall_score"]) {
		return nil, false
	}

	var res StrengthResult
	if err := decodeWeak(obj, &res); err != nil {
		return nil, false
	}

	res.Overall = clampScore(numeric(obj["overall_score"]))
	res.ATS = clampScore(numeric(obj["ats_score"]))
	res.SkillDiversity = clampScore(numeric(obj["skill_diversity_score"]))
	res.ExperienceDepth = clampScore(numeric(obj["experience_depth_score"]))
	res.Strengths = dedupeFold(res.Strengths)
	res.Weaknesses = dedupeFold(res.Weaknesses)
	res.Suggestions = boundSuggestions(res.Suggestions)

	return &res, true
}

func decodeWeak(obj map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(obj)
}

func isNumeric(v any) bool {
	switch v.(type) {
	case float64, int, json.Number:
		return true
	default:
		return false
	}
}

func numeric(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// isListShaped reports whether the key, when present, holds a list. An absent
// key is acceptable and decodes to an empty list.
func isListShaped(obj map[string]any, key string) bool {
	v, ok := obj[key]
	if !ok || v == nil {
		return true
	}
	_, isList := v.([]any)
	return isList
}

// clampScore forces the value into [0,100]. Out-of-range values are expected
// model miscalculations and are clamped, not rejected.
func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}

// defaultSuggestion fills the suggestions list when the model offers nothing
// usable, keeping it at one to five entries.
const defaultSuggestion = "Tailor the resume to the requirements stated in the job description."

// boundSuggestions trims the list to at most five non-empty entries and
// never returns an empty list.
func boundSuggestions(suggestions []string) []string {
	out := make([]string, 0, 5)
	for _, s := range suggestions {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == 5 {
			break
		}
	}
	if len(out) == 0 {
		return []string{defaultSuggestion}
	}
	return out
}
