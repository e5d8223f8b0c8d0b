package letter

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/resumatch/resumatch/internal/analysis"
)

const promptTemplate = `Write a professional cover letter for the job below, based on the candidate's resume.

- Three to four short paragraphs of body text.
- Reference concrete skills the candidate actually has.
- No placeholders like [Company Name]; omit what you do not know.
- Output the letter only: no commentary, no markdown.

Job description:
"""
%s
"""

Resume:
"""
%s
"""`

// Writer drafts cover letters through the analysis orchestrator and cleans
// the output. Draft never fails: unusable or missing model output degrades
// to the generic template.
type Writer struct {
	analyzer *analysis.Analyzer
	log      *zap.Logger
}

func NewWriter(analyzer *analysis.Analyzer, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{analyzer: analyzer, log: log}
}

// Draft produces a cleaned letter body for the given job and resume.
func (w *Writer) Draft(ctx context.Context, jobText, resumeText string) (string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return "", analysis.ErrEmptyResume
	}

	prompt := fmt.Sprintf(promptTemplate, strings.TrimSpace(jobText), strings.TrimSpace(resumeText))
	raw, err := w.analyzer.Complete(ctx, prompt)
	if err != nil {
		w.log.Info("cover letter generation failed, using generic template", zap.Error(err))
		return GenericLetter, nil
	}

	return Clean(raw), nil
}
