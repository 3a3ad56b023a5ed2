// Package llm provides centralized LLM configuration and client abstractions.
// Roadmap generation and role comparison go through the same Client so the
// provider can be switched between the Gemini API and Vertex AI.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short comparative answers
	TierLite ModelTier = "lite"
	// TierStandard is for roadmap generation
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for callers that opt into the larger model
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Gemini API, authenticated with an API key
	ProviderGemini Provider = "gemini"
	// ProviderVertex is Vertex AI, authenticated with application default credentials
	ProviderVertex Provider = "vertex"
)

const (
	// DefaultProject is used when no Google Cloud project is configured
	DefaultProject = "pathfinder-ai-477617"
	// DefaultLocation is the Vertex AI region used when none is configured
	DefaultLocation = "us-central1"
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Project     string
	Location    string
	Temperature float32
}

// DefaultConfig returns the default configuration (Vertex AI)
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderVertex,
		Models:      defaultModels(),
		Project:     DefaultProject,
		Location:    DefaultLocation,
		Temperature: 0.4,
	}
}

// DefaultGeminiConfig returns the default Gemini API configuration
func DefaultGeminiConfig() *Config {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	return cfg
}

func defaultModels() map[ModelTier]string {
	return map[ModelTier]string{
		TierLite:     "gemini-2.5-flash-lite",
		TierStandard: "gemini-2.5-flash",
		TierAdvanced: "gemini-2.5-pro",
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}
