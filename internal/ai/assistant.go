package ai

import (
	"context"
	"errors"
	"strings"
)

// Provider identifies a configured LLM backend.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// ErrNotConfigured is returned when no backend credential is available.
var ErrNotConfigured = errors.New("no ai provider is configured")

// ProviderConfig carries everything needed to talk to one backend. It is an
// explicit value handed to the generator constructor; nothing here leaks into
// process-wide state.
type ProviderConfig struct {
	Provider   Provider
	APIKey     string
	BaseURL    string // optional alternate endpoint, anthropic only
	Model      string
	MaxRetries int
}

// EventKind discriminates the stream event variants a backend may emit.
type EventKind int

const (
	// EventTextDelta carries an incremental text fragment.
	EventTextDelta EventKind = iota
	// EventMessage carries a finalized message with ordered text blocks.
	EventMessage
)

// TextBlock is a single "text" content block of a finalized message.
type TextBlock struct {
	Text string
}

// Event is one element of a backend response stream.
type Event struct {
	Kind   EventKind
	Text   string      // set for EventTextDelta
	Blocks []TextBlock // set for EventMessage
}

// Stream is an ordered sequence of response events. A failed stream reports
// its error through Err after Next returns false.
type Stream interface {
	Next() bool
	Current() Event
	Err() error
}

// Generator is the provider-agnostic content generation contract.
type Generator interface {
	Name() Provider
	Model() string
	Generate(ctx context.Context, prompt string) (Stream, error)
}

// SelectProvider resolves the backend from available credentials with a fixed
// precedence order: the anthropic credential wins over the gemini one. There
// is no retry across providers.
func SelectProvider(anthropic, gemini ProviderConfig) (ProviderConfig, error) {
	if strings.TrimSpace(anthropic.APIKey) != "" {
		anthropic.Provider = ProviderAnthropic
		return anthropic, nil
	}
	if strings.TrimSpace(gemini.APIKey) != "" {
		gemini.Provider = ProviderGemini
		return gemini, nil
	}
	return ProviderConfig{}, ErrNotConfigured
}

// CollectText reconstructs the full response text from a stream: incremental
// fragments are appended in arrival order, finalized messages contribute
// their text blocks in block order. A stream error aborts collection and is
// returned as-is.
func CollectText(s Stream) (string, error) {
	var b strings.Builder
	for s.Next() {
		event := s.Current()
		switch event.Kind {
		case EventTextDelta:
			b.WriteString(event.Text)
		case EventMessage:
			for _, block := range event.Blocks {
				b.WriteString(block.Text)
			}
		}
	}
	if err := s.Err(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// SliceStream is a Stream over a fixed event list. Tests and the gemini
// backend use it to present non-streamed responses through the same contract.
type SliceStream struct {
	Events []Event
	Error  error
	pos    int
}

func (s *SliceStream) Next() bool {
	if s.pos >= len(s.Events) {
		return false
	}
	s.pos++
	return true
}

func (s *SliceStream) Current() Event {
	return s.Events[s.pos-1]
}

func (s *SliceStream) Err() error {
	return s.Error
}
