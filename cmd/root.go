package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/resumatch/resumatch/internal/ai"
	"github.com/resumatch/resumatch/internal/ai/anthropic"
	"github.com/resumatch/resumatch/internal/ai/gemini"
	"github.com/resumatch/resumatch/internal/analysis"
	"github.com/resumatch/resumatch/internal/secrets"
	"github.com/resumatch/resumatch/internal/websearch"
)

const (
	app = "resumatch"
)

type Config struct {
	AI     *AIConfig     `mapstructure:"ai"`
	Search *SearchConfig `mapstructure:"search"`
}

type AIConfig struct {
	Anthropic    *AnthropicConfig `mapstructure:"anthropic"`
	Gemini       *GeminiConfig    `mapstructure:"gemini"`
	MaxLogLength int              `mapstructure:"max-log-length"`
}

type AnthropicConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	BaseURL    string `mapstructure:"base-url"`
	Model      string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	MaxRetries int    `mapstructure:"max-retries"`
}

type SearchConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	BaseURL    string `mapstructure:"base-url"`
	MaxResults int    `mapstructure:"max-results"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resumatch matches resumes against job descriptions, finds job postings and drafts cover letters",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	bindings := map[string]string{
		"ai.anthropic.api-key":      "ANTHROPIC_API_KEY",
		"ai.anthropic.api-key-file": "ANTHROPIC_API_KEY_FILE",
		"ai.anthropic.base-url":     "ANTHROPIC_BASE_URL",
		"ai.gemini.api-key":         "GEMINI_API_KEY",
		"ai.gemini.api-key-file":    "GEMINI_API_KEY_FILE",
		"search.api-key":            "TAVILY_API_KEY",
		"search.api-key-file":       "TAVILY_API_KEY_FILE",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resumatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// A missing default config file is fine, env variables alone are a
	// complete configuration. An explicitly requested file must exist.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && (errors.As(err, &notFound) || os.IsNotExist(err)) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Anthropic == nil {
		config.AI.Anthropic = &AnthropicConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.Search == nil {
		config.Search = &SearchConfig{}
	}
	return config, nil
}

// newGenerator resolves the backend from the configured credentials. A nil
// generator with a nil error means no credential is set and callers should
// run with the deterministic fallback only.
func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	anthropicKey, err := secrets.LoadOptional(secrets.Source{
		Name:  "anthropic api key",
		Value: cfg.Anthropic.APIKey,
		File:  cfg.Anthropic.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("loading anthropic credential: %w", err)
	}

	geminiKey, err := secrets.LoadOptional(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("loading gemini credential: %w", err)
	}

	selected, err := ai.SelectProvider(
		ai.ProviderConfig{
			APIKey:  anthropicKey,
			BaseURL: strings.TrimSpace(cfg.Anthropic.BaseURL),
			Model:   cfg.Anthropic.Model,
		},
		ai.ProviderConfig{
			APIKey:     geminiKey,
			Model:      cfg.Gemini.Model,
			MaxRetries: cfg.Gemini.MaxRetries,
		},
	)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			logger.Warn("no ai provider configured, deterministic analysis only",
				zap.String("hint", "set ANTHROPIC_API_KEY or GEMINI_API_KEY"),
			)
			return nil, nil
		}
		return nil, err
	}

	switch selected.Provider {
	case ai.ProviderAnthropic:
		return anthropic.NewGenerator(selected, logger)
	case ai.ProviderGemini:
		return gemini.NewGenerator(ctx, selected, logger)
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", selected.Provider)
	}
}

// newAnalyzer builds the analysis orchestrator from config.
func newAnalyzer(ctx context.Context, config *Config, logger *zap.Logger) (*analysis.Analyzer, error) {
	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		return nil, err
	}

	var opts []analysis.Option
	if config.AI.MaxLogLength > 0 {
		opts = append(opts, analysis.WithMaxLogLength(config.AI.MaxLogLength))
	}

	return analysis.New(generator, logger, opts...), nil
}

// newSearcher builds the web search client, or returns nil when no search
// credential is configured.
func newSearcher(config *SearchConfig, logger *zap.Logger) (*websearch.Client, error) {
	key, err := secrets.LoadOptional(secrets.Source{
		Name:  "search api key",
		Value: config.APIKey,
		File:  config.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("loading search credential: %w", err)
	}
	if key == "" {
		return nil, nil
	}

	return websearch.New(websearch.Config{
		APIKey:     key,
		BaseURL:    config.BaseURL,
		MaxResults: config.MaxResults,
	}, logger)
}

// readTextFile loads a required plain-text input such as a resume or a job
// description.
func readTextFile(path, what string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%s file path is required", what)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", what, err)
	}
	return string(data), nil
}
