package analysis

import (
	"fmt"
	"strings"
)

const fitPromptTemplate = `You are a technical recruiter comparing a resume against a job description.

Rules for what counts as a skill:
- Concrete technologies only: languages, frameworks, databases, tools, platforms, protocols, methodologies with a recognized name.
- Exclude soft skills (communication, leadership, teamwork), benefits, compensation, employment type, degrees and years of experience.
- A skill is "matched" only when it appears in BOTH the job description and the resume.
- A skill is "missing" only when the job description requires it and the resume does not mention it.
- Never invent skills that appear in neither text.

Respond with ONLY one JSON object, no markdown, no commentary:
{
  "score": <integer 0-100, the share of required skills the resume covers>,
  "matched_skills": ["<skill>", ...],
  "missing_skills": ["<skill>", ...],
  "suggestions": ["<short actionable suggestion>", ... up to 5],
  "summary": "<one or two sentences on overall fit>"
}

Job description:
"""
%s
"""

Resume:
"""
%s
"""`

const strengthPromptTemplate = `You are a resume reviewer. Score the resume below on its own merits.

Scoring dimensions, each an integer 0-100:
- overall_score: weighted overall quality
- ats_score: how well automated tracking systems can parse it (sections, contact details, plain formatting)
- skill_diversity_score: breadth of concrete, named technologies
- experience_depth_score: seniority signals, quantified outcomes, action-verb-led accomplishments

Respond with ONLY one JSON object, no markdown, no commentary:
{
  "overall_score": <int>,
  "ats_score": <int>,
  "skill_diversity_score": <int>,
  "experience_depth_score": <int>,
  "strengths": ["<short observation>", ...],
  "weaknesses": ["<short observation>", ...],
  "improvement_suggestions": ["<short actionable suggestion>", ... up to 5],
  "summary": "<one or two sentences>"
}

Resume:
"""
%s
"""`

func buildFitPrompt(jobText, resumeText string) string {
	return fmt.Sprintf(fitPromptTemplate, strings.TrimSpace(jobText), strings.TrimSpace(resumeText))
}

func buildStrengthPrompt(resumeText string) string {
	return fmt.Sprintf(strengthPromptTemplate, strings.TrimSpace(resumeText))
}
