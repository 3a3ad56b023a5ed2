// Package config provides configuration loading and validation for the PathFinder service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/pathfinder/internal/llm"
)

// Default values applied by Defaults.
const (
	DefaultPort       = 8080
	DefaultJobsPath   = "data/jobs.json"
	DefaultLLMTimeout = "60s"
	DefaultLogLevel   = "info"
)

// Config represents the service configuration. It can be loaded from a JSON
// file and from the environment; all fields are optional and fall back to Defaults.
type Config struct {
	// HTTP
	Port int `json:"port,omitempty"` // Port to listen on

	// Model
	Provider     string `json:"provider,omitempty"`      // "gemini" or "vertex"
	APIKey       string `json:"api_key,omitempty"`       // Gemini API key (gemini provider)
	Project      string `json:"project,omitempty"`       // Google Cloud project (vertex provider)
	Location     string `json:"location,omitempty"`      // Vertex AI region
	RoadmapModel string `json:"roadmap_model,omitempty"` // Model used for roadmaps
	CompareModel string `json:"compare_model,omitempty"` // Model used for comparisons
	LLMTimeout   string `json:"llm_timeout,omitempty"`   // Bound on a single model call, e.g. "45s"

	// Roadmap table sources
	JobsPath    string `json:"jobs_path,omitempty"`    // Path to the pre-authored roadmap JSON file
	DatabaseURL string `json:"database_url,omitempty"` // Optional PostgreSQL roadmap source

	// Logging
	LogLevel string `json:"log_level,omitempty"` // debug, info, warn, error
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:       DefaultPort,
		Project:    llm.DefaultProject,
		Location:   llm.DefaultLocation,
		LLMTimeout: DefaultLLMTimeout,
		JobsPath:   DefaultJobsPath,
		LogLevel:   DefaultLogLevel,
	}
}

// FromEnv reads configuration from environment variables. Unset variables
// leave the corresponding field empty so they can be merged with other sources.
func FromEnv() Config {
	cfg := Config{
		Provider:     os.Getenv("LLM_PROVIDER"),
		APIKey:       os.Getenv("GEMINI_API_KEY"),
		Project:      os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Location:     os.Getenv("GOOGLE_CLOUD_LOCATION"),
		RoadmapModel: os.Getenv("ROADMAP_MODEL"),
		CompareModel: os.Getenv("COMPARE_MODEL"),
		LLMTimeout:   os.Getenv("LLM_TIMEOUT"),
		JobsPath:     os.Getenv("JOBS_PATH"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	return cfg
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: environment over the optional
// config file over Defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := FromEnv()

	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	cfg = cfg.MergeWithDefaults(Defaults())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	switch llm.Provider(c.Provider) {
	case "", llm.ProviderGemini, llm.ProviderVertex:
	default:
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}

	if llm.Provider(c.Provider) == llm.ProviderGemini && c.APIKey == "" {
		return fmt.Errorf("config error: 'api_key' is required for the gemini provider")
	}

	if c.LLMTimeout != "" {
		if _, err := c.Timeout(); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: unknown log level %q", c.LogLevel)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Project == "" {
		result.Project = defaults.Project
	}
	if result.Location == "" {
		result.Location = defaults.Location
	}
	if result.RoadmapModel == "" {
		result.RoadmapModel = defaults.RoadmapModel
	}
	if result.CompareModel == "" {
		result.CompareModel = defaults.CompareModel
	}
	if result.LLMTimeout == "" {
		result.LLMTimeout = defaults.LLMTimeout
	}
	if result.JobsPath == "" {
		result.JobsPath = defaults.JobsPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	return result
}

// Timeout parses LLMTimeout
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.LLMTimeout)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid 'llm_timeout' %q: %w", c.LLMTimeout, err)
	}
	return d, nil
}

// LLMConfig builds the model client configuration. Without an explicit
// provider, an API key selects the Gemini API and its absence selects Vertex AI.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()

	switch {
	case c.Provider != "":
		cfg.Provider = llm.Provider(c.Provider)
	case c.APIKey != "":
		cfg.Provider = llm.ProviderGemini
	}

	if c.Project != "" {
		cfg.Project = c.Project
	}
	if c.Location != "" {
		cfg.Location = c.Location
	}
	if c.RoadmapModel != "" {
		cfg = cfg.WithModel(llm.TierStandard, c.RoadmapModel)
	}
	if c.CompareModel != "" {
		cfg = cfg.WithModel(llm.TierLite, c.CompareModel)
	}
	return cfg
}
