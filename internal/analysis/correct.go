package analysis

import "strings"

// nonSkillTerms is a denylist of things models like to report as skills:
// benefits, compensation, soft skills and employment-type words. Matched by
// case-insensitive substring containment against each skill entry.
var nonSkillTerms = []string{
	"salary",
	"compensation",
	"benefit",
	"insurance",
	"401k",
	"pension",
	"equity",
	"bonus",
	"vacation",
	"paid time off",
	"pto",
	"full-time",
	"full time",
	"part-time",
	"part time",
	"contract position",
	"permanent position",
	"communication skills",
	"teamwork",
	"team player",
	"leadership skills",
	"work ethic",
	"self-starter",
	"fast-paced",
	"detail-oriented",
	"problem solving",
	"problem-solving",
	"interpersonal",
	"bachelor",
	"master's degree",
	"degree in",
	"years of experience",
	"competitive",
	"hybrid work",
	"on-site",
	"onsite",
	"relocation",
	"visa sponsorship",
}

// CorrectSkills repairs the matched/missing skill lists against the original
// input texts. The model is not trusted: optimistic matches are dropped,
// hallucinated requirements are removed, and skills marked missing but
// present in the resume are reclassified as matched. After correction the
// two lists are disjoint. The operation is idempotent.
func CorrectSkills(res *Result, jobText, resumeText string) {
	if res == nil {
		return
	}

	job := strings.ToLower(jobText)
	resume := strings.ToLower(resumeText)

	matched := make([]string, 0, len(res.MatchedSkills))
	for _, skill := range res.MatchedSkills {
		skill = strings.TrimSpace(skill)
		if skill == "" || isNonSkillTerm(skill) {
			continue
		}
		lower := strings.ToLower(skill)
		if strings.Contains(job, lower) && strings.Contains(resume, lower) {
			matched = append(matched, skill)
		}
	}

	missing := make([]string, 0, len(res.MissingSkills))
	for _, skill := range res.MissingSkills {
		skill = strings.TrimSpace(skill)
		if skill == "" || isNonSkillTerm(skill) {
			continue
		}
		lower := strings.ToLower(skill)
		if !strings.Contains(job, lower) {
			// Hallucinated requirement: not in the job text at all.
			continue
		}
		if strings.Contains(resume, lower) {
			// The most common model mistake: a present skill marked missing.
			matched = append(matched, skill)
			continue
		}
		missing = append(missing, skill)
	}

	res.MatchedSkills = dedupeFold(matched)
	res.MissingSkills = dedupeFold(missing)
}

func isNonSkillTerm(skill string) bool {
	lower := strings.ToLower(skill)
	for _, term := range nonSkillTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
