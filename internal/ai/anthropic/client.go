package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
	"go.uber.org/zap"

	"github.com/resumatch/resumatch/internal/ai"
)

const (
	defaultModel     = "claude-sonnet-4-5"
	defaultMaxTokens = 2048
)

// Generator wraps the Anthropic SDK behind the ai.Generator contract. The
// response arrives as a true event stream; text deltas are surfaced in
// arrival order.
type Generator struct {
	client    sdk.Client
	modelName string
	logger    *zap.Logger
}

// NewGenerator creates a Generator for the Anthropic Messages API. An
// alternate base endpoint from the provider config is passed to the SDK
// client directly, never through process-wide state.
func NewGenerator(cfg ai.ProviderConfig, logger *zap.Logger) (*Generator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{client: sdk.NewClient(opts...), modelName: model, logger: logger}, nil
}

func (g *Generator) Name() ai.Provider { return ai.ProviderAnthropic }

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

// Generate opens a streaming message request for the prompt.
func (g *Generator) Generate(ctx context.Context, prompt string) (ai.Stream, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt must not be empty")
	}

	stream := g.client.Messages.NewStreaming(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(g.modelName),
		MaxTokens: defaultMaxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
	})
	if err := stream.Err(); err != nil {
		return nil, fmt.Errorf("open message stream: %w", err)
	}

	return &eventStream{inner: stream}, nil
}

// eventStream adapts the SDK server-sent event stream to ai.Stream,
// forwarding text deltas and dropping bookkeeping events.
type eventStream struct {
	inner   *ssestream.Stream[sdk.MessageStreamEventUnion]
	current ai.Event
}

func (s *eventStream) Next() bool {
	for s.inner.Next() {
		event := s.inner.Current()
		delta, ok := event.AsAny().(sdk.ContentBlockDeltaEvent)
		if !ok {
			continue
		}
		text, ok := delta.Delta.AsAny().(sdk.TextDelta)
		if !ok {
			continue
		}
		s.current = ai.Event{Kind: ai.EventTextDelta, Text: text.Text}
		return true
	}
	return false
}

func (s *eventStream) Current() ai.Event {
	return s.current
}

func (s *eventStream) Err() error {
	return s.inner.Err()
}
