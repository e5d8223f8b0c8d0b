package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRe      = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phoneRe      = regexp.MustCompile(`(\+?\d[\d\s().-]{7,}\d)`)
	yearsRe      = regexp.MustCompile(`(?i)(\d+)\+?\s*years?`)
	quantifiedRe = regexp.MustCompile(`\d+\s*(%|percent|x\b|users|requests|ms\b|qps\b)`)
)

var resumeSections = []string{"experience", "education", "skills", "projects", "summary"}

var actionVerbs = []string{
	"built", "designed", "led", "launched", "implemented", "migrated",
	"optimized", "reduced", "improved", "automated", "delivered", "scaled",
	"developed", "maintained", "mentored", "architected",
}

// StrengthFallback scores a resume deterministically when the model path is
// unavailable. Heuristics only: section presence and contact details drive
// the ATS score, vocabulary coverage drives skill diversity, and years plus
// quantified, verb-led bullets drive experience depth.
func StrengthFallback(resumeText string) *StrengthResult {
	lower := strings.ToLower(resumeText)

	ats := 20
	for _, section := range resumeSections {
		if strings.Contains(lower, section) {
			ats += 12
		}
	}
	if emailRe.MatchString(resumeText) {
		ats += 10
	}
	if phoneRe.MatchString(resumeText) {
		ats += 10
	}
	ats = clampScore(float64(ats))

	skills := vocabularyIn(resumeText)
	diversity := clampScore(float64(len(skills) * 8))

	depth := 10
	if m := yearsRe.FindStringSubmatch(resumeText); m != nil {
		depth += 30
	}
	verbs := 0
	for _, verb := range actionVerbs {
		if strings.Contains(lower, verb) {
			verbs++
		}
	}
	depth += verbs * 5
	if quantifiedRe.MatchString(lower) {
		depth += 15
	}
	depth = clampScore(float64(depth))

	overall := clampScore(float64(ats)*0.3 + float64(diversity)*0.35 + float64(depth)*0.35)

	res := &StrengthResult{
		Overall:         overall,
		ATS:             ats,
		SkillDiversity:  diversity,
		ExperienceDepth: depth,
		Summary: fmt.Sprintf("Heuristic review: %d recognizable skills, ATS readiness %d/100, experience depth %d/100.",
			len(skills), ats, depth),
		Source: SourceFallback,
	}

	if len(skills) >= 8 {
		res.Strengths = append(res.Strengths, "Broad, concrete technology coverage.")
	}
	if verbs >= 4 {
		res.Strengths = append(res.Strengths, "Accomplishments are framed with strong action verbs.")
	}
	if len(res.Strengths) == 0 {
		res.Strengths = append(res.Strengths, "Resume text was readable and parseable.")
	}

	if len(skills) < 5 {
		res.Weaknesses = append(res.Weaknesses, "Few named technologies; automated screens may find little to match.")
		res.Suggestions = append(res.Suggestions, "Name the specific languages, frameworks and tools you have used.")
	}
	if !quantifiedRe.MatchString(lower) {
		res.Weaknesses = append(res.Weaknesses, "Accomplishments are not quantified.")
		res.Suggestions = append(res.Suggestions, "Add measurable outcomes (percentages, latency, user counts) to key bullets.")
	}
	if ats < 60 {
		res.Weaknesses = append(res.Weaknesses, "Standard resume sections or contact details are hard to locate.")
		res.Suggestions = append(res.Suggestions, "Use conventional section headings (Experience, Education, Skills) and include contact details.")
	}
	if len(res.Suggestions) == 0 {
		res.Suggestions = append(res.Suggestions, "Tailor the skill list to each job description you apply for.")
	}

	return res
}
