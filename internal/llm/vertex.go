package llm

import (
	"context"
	"fmt"
	"strings"

	vertexai "google.golang.org/genai"
)

// VertexClient implements Client for Gemini models served by Vertex AI.
// Credentials come from the environment (application default credentials).
type VertexClient struct {
	client *vertexai.Client
	config *Config
}

// NewVertexClient creates a Vertex AI backed client for config.Project and config.Location
func NewVertexClient(ctx context.Context, config *Config) (*VertexClient, error) {
	project := config.Project
	if project == "" {
		project = DefaultProject
	}
	location := config.Location
	if location == "" {
		location = DefaultLocation
	}

	client, err := vertexai.NewClient(ctx, &vertexai.ClientConfig{
		Project:  project,
		Location: location,
		Backend:  vertexai.BackendVertexAI,
	})
	if err != nil {
		return nil, &APICallError{Message: "failed to create Vertex AI client", Cause: err}
	}

	return &VertexClient{client: client, config: config}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *VertexClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	temperature := c.config.Temperature
	resp, err := c.client.Models.GenerateContent(ctx, modelName,
		vertexai.Text(prompt),
		&vertexai.GenerateContentConfig{Temperature: &temperature},
	)
	if err != nil {
		return "", &APICallError{Message: "failed to generate content", Cause: err}
	}

	return extractVertexText(resp)
}

// GetModel returns the model name for a tier
func (c *VertexClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the Vertex AI client holds no closable resources
func (c *VertexClient) Close() error {
	return nil
}

func extractVertexText(resp *vertexai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &ResponseError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &ResponseError{Message: "no content in response"}
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" && !part.Thought {
			sb.WriteString(part.Text)
		}
	}

	if sb.Len() == 0 {
		return "", &ResponseError{Message: "no text parts in response"}
	}

	return sb.String(), nil
}
