package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/resumatch/resumatch/internal/ai"
	"github.com/resumatch/resumatch/internal/utils"
)

const (
	defaultModel      = "gemini-2.5-pro"
	defaultMaxRetries = 2
)

// Generator wraps the Google GenAI client behind the ai.Generator contract.
// Gemini responses are not streamed; the finalized candidate content is
// reported as a single message event with ordered text blocks.
type Generator struct {
	client     *genai.Client
	modelName  string
	maxRetries int
	logger     *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, cfg ai.ProviderConfig, logger *zap.Logger) (*Generator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{client: client, modelName: model, maxRetries: maxRetries, logger: logger}, nil
}

func (g *Generator) Name() ai.Provider { return ai.ProviderGemini }

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

// Generate sends the prompt to Gemini, retrying temporary API errors, and
// returns the finalized response as a one-event stream.
func (g *Generator) Generate(ctx context.Context, prompt string) (ai.Stream, error) {
	if g == nil || g.client == nil {
		return nil, errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt must not be empty")
	}

	var resp *genai.GenerateContentResponse
	var err error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Debug("retrying gemini request",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			if waitErr := utils.WaitFor(ctx, time.Duration(attempt)*time.Second); waitErr != nil {
				return nil, waitErr
			}
		}

		resp, err = g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
		if err == nil {
			break
		}
		if !isRetryable(err) {
			return nil, fmt.Errorf("generate content: %w", err)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	blocks := collectBlocks(resp)
	if len(blocks) == 0 {
		return nil, errors.New("gemini api returned empty response")
	}

	return &ai.SliceStream{Events: []ai.Event{{Kind: ai.EventMessage, Blocks: blocks}}}, nil
}

// collectBlocks flattens candidate content parts into ordered text blocks.
func collectBlocks(resp *genai.GenerateContentResponse) []ai.TextBlock {
	if resp == nil {
		return nil
	}

	var blocks []ai.TextBlock
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Text == "" {
				continue
			}
			blocks = append(blocks, ai.TextBlock{Text: part.Text})
		}
	}
	return blocks
}

// isRetryable reports whether the error is a temporary API condition worth
// another attempt: rate limiting or a server-side failure.
func isRetryable(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
}
