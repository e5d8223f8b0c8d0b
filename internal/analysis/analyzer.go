package analysis

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/resumatch/resumatch/internal/ai"
	"github.com/resumatch/resumatch/internal/logger"
	"github.com/resumatch/resumatch/internal/utils"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultMaxLogLen = 200
)

// ErrEmptyResume reports a caller-contract violation: analysis without any
// resume text is meaningless and is the only condition surfaced as an error.
var ErrEmptyResume = errors.New("resume text is required")

// Analyzer orchestrates the model-backed analysis pipeline. Provider
// failures, unusable output and internal errors all collapse into the
// deterministic fallback at exactly one decision point; callers always
// receive a well-formed result.
type Analyzer struct {
	generator ai.Generator // nil when no provider is configured
	log       *zap.Logger
	timeout   time.Duration
	maxLogLen int
}

// Option adjusts analyzer construction.
type Option func(*Analyzer)

// WithTimeout overrides the per-call deadline for provider requests.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithMaxLogLength bounds logged prompt/response previews.
func WithMaxLogLength(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxLogLen = n
		}
	}
}

// New creates an Analyzer. A nil generator is valid and forces the fallback
// path for every call.
func New(generator ai.Generator, log *zap.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		generator: generator,
		log:       log,
		timeout:   defaultTimeout,
		maxLogLen: defaultMaxLogLen,
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	if generator != nil {
		a.log = logger.WithCommonFields(a.log, string(generator.Name()), generator.Model())
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze matches the resume against the job description. The returned
// result is always structurally valid; its Source field tells whether the
// model or the fallback produced it.
func (a *Analyzer) Analyze(ctx context.Context, jobText, resumeText string) (*Result, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrEmptyResume
	}

	res, perr := a.modelAnalysis(ctx, jobText, resumeText)
	if perr != nil {
		a.log.Info("falling back to keyword analysis",
			zap.String("stage", string(perr.Stage)),
			zap.String(logger.FieldSource, string(SourceFallback)),
			zap.Error(perr.Err),
		)
		return Fallback(jobText, resumeText), nil
	}
	return res, nil
}

func (a *Analyzer) modelAnalysis(ctx context.Context, jobText, resumeText string) (*Result, *PipelineError) {
	raw, perr := a.complete(ctx, buildFitPrompt(jobText, resumeText))
	if perr != nil {
		return nil, perr
	}

	res, ok := ExtractResult(raw)
	if !ok {
		return nil, pipelineErr(StageExtract, errors.New("no valid analysis object in model output"))
	}

	CorrectSkills(res, jobText, resumeText)
	res.Source = SourceModel

	a.log.Debug("model analysis accepted",
		zap.String(logger.FieldSource, string(SourceModel)),
		zap.Int("score", res.Score),
		zap.Int("matched", len(res.MatchedSkills)),
		zap.Int("missing", len(res.MissingSkills)),
	)
	return res, nil
}

// Strength scores resume quality. Same resilience contract as Analyze.
func (a *Analyzer) Strength(ctx context.Context, resumeText string) (*StrengthResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, ErrEmptyResume
	}

	raw, perr := a.complete(ctx, buildStrengthPrompt(resumeText))
	if perr == nil {
		if res, ok := ExtractStrength(raw); ok {
			res.Source = SourceModel
			return res, nil
		}
		perr = pipelineErr(StageExtract, errors.New("no valid strength object in model output"))
	}

	a.log.Info("falling back to heuristic strength review",
		zap.String("stage", string(perr.Stage)),
		zap.String(logger.FieldSource, string(SourceFallback)),
		zap.Error(perr.Err),
	)
	return StrengthFallback(resumeText), nil
}

// Complete runs a free-form prose task through the provider and returns the
// reconstructed text. Unlike Analyze there is no structural fallback here;
// callers that need one (cover letters) supply their own.
func (a *Analyzer) Complete(ctx context.Context, prompt string) (string, error) {
	raw, perr := a.complete(ctx, prompt)
	if perr != nil {
		return "", perr
	}
	return raw, nil
}

// complete invokes the provider with a deadline and reconstructs the
// streamed response into one buffer.
func (a *Analyzer) complete(ctx context.Context, prompt string) (string, *PipelineError) {
	if a.generator == nil {
		return "", pipelineErr(StageProvider, ai.ErrNotConfigured)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	a.log.Debug("provider request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	stream, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return "", pipelineErr(StageProvider, err)
	}

	raw, err := ai.CollectText(stream)
	if err != nil {
		return "", pipelineErr(StageStream, err)
	}
	if strings.TrimSpace(raw) == "" {
		return "", pipelineErr(StageStream, errors.New("provider returned empty output"))
	}

	a.log.Debug("provider response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)
	return raw, nil
}
