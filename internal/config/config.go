package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FindingsConfig locates the default findings library and the worksheet to read.
type FindingsConfig struct {
	DefaultPath  string `yaml:"default_path"`
	Sheet        string `yaml:"sheet"`
	EnforceSheet bool   `yaml:"enforce_sheet"`
}

// IndexConfig tunes the lexical index builder.
type IndexConfig struct {
	MaxFeatures int `yaml:"max_features" validate:"gte=1"`
	NGramMax    int `yaml:"ngram_max" validate:"gte=1,lte=3"`
	// Stopwords drops common English words from documents and queries.
	Stopwords bool `yaml:"stopwords"`
}

// RankingConfig holds ranking defaults.
type RankingConfig struct {
	TopK int `yaml:"top_k" validate:"gte=1"`
}

// AssistConfig configures the OpenAI-compatible text-generation endpoint.
type AssistConfig struct {
	BaseURL     string  `yaml:"base_url" validate:"omitempty,url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	TimeoutSecs int     `yaml:"timeout_secs" validate:"gte=0"`
	Temperature float32 `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `yaml:"max_tokens" validate:"gte=0"`
}

// SummarizerConfig configures the extractive fallback drafter.
type SummarizerConfig struct {
	MaxSentences int `yaml:"max_sentences" validate:"gte=1"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
}

// OutputConfig names the files produced by the CLI.
type OutputConfig struct {
	IssuesPath string `yaml:"issues_path"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Findings   FindingsConfig   `yaml:"findings"`
	Index      IndexConfig      `yaml:"index"`
	Ranking    RankingConfig    `yaml:"ranking"`
	Assist     AssistConfig     `yaml:"assist"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Log        LogConfig        `yaml:"log"`
	Output     OutputConfig     `yaml:"output"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	// Keys absent from the file keep their built-in value.
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault tries ./planner.yaml first, then ~/.config/planner/config.yaml.
// If neither exists, it writes defaults to ~/.config/planner/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "planner.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks field constraints declared on the config structs.
func Validate(cfg *AppConfig) error {
	return validator.New().Struct(cfg)
}

// APIKey resolves the assist API key from the configured environment variable.
func (c AssistConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "planner", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{
		Findings: FindingsConfig{DefaultPath: "FindingsLibrary.csv", Sheet: "Data"},
		Index:    IndexConfig{MaxFeatures: 20000, NGramMax: 2},
		Ranking:  RankingConfig{TopK: 8},
		Assist: AssistConfig{
			BaseURL:     "https://api.opentyphoon.ai/v1",
			APIKeyEnv:   "TYPHOON_API_KEY",
			Model:       "typhoon-v2.1-12b-instruct",
			TimeoutSecs: 60,
			Temperature: 0.7,
			MaxTokens:   2048,
		},
		Summarizer: SummarizerConfig{MaxSentences: 5},
		Log:        LogConfig{Level: "info"},
		Output:     OutputConfig{IssuesPath: "audit_issues.csv"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Findings.DefaultPath == "" {
		cfg.Findings.DefaultPath = def.Findings.DefaultPath
	}
	if cfg.Findings.Sheet == "" {
		cfg.Findings.Sheet = def.Findings.Sheet
	}
	if cfg.Index.MaxFeatures == 0 {
		cfg.Index.MaxFeatures = def.Index.MaxFeatures
	}
	if cfg.Index.NGramMax == 0 {
		cfg.Index.NGramMax = def.Index.NGramMax
	}
	if cfg.Ranking.TopK == 0 {
		cfg.Ranking.TopK = def.Ranking.TopK
	}
	if cfg.Assist.BaseURL == "" {
		cfg.Assist.BaseURL = def.Assist.BaseURL
	}
	if cfg.Assist.APIKeyEnv == "" {
		cfg.Assist.APIKeyEnv = def.Assist.APIKeyEnv
	}
	if cfg.Assist.Model == "" {
		cfg.Assist.Model = def.Assist.Model
	}
	if cfg.Assist.TimeoutSecs == 0 {
		cfg.Assist.TimeoutSecs = def.Assist.TimeoutSecs
	}
	if cfg.Assist.MaxTokens == 0 {
		cfg.Assist.MaxTokens = def.Assist.MaxTokens
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = def.Summarizer.MaxSentences
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Output.IssuesPath == "" {
		cfg.Output.IssuesPath = def.Output.IssuesPath
	}
}
