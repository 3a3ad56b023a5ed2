package roadmap

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/jonathan/pathfinder/internal/llm"
	"github.com/stretchr/testify/require"
)

// fakeClient is an llm.Client that returns canned output and records calls
type fakeClient struct {
	mu       sync.Mutex
	text     string
	err      error
	prompts  []string
	tiers    []llm.ModelTier
	deadline bool
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.tiers = append(f.tiers, tier)
	_, f.deadline = ctx.Deadline()
	return f.text, f.err
}

func (f *fakeClient) GetModel(tier llm.ModelTier) string {
	return "fake-" + string(tier)
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

const dataScientistRoadmap = `{
	"skills": ["Python", "Statistics", "SQL"],
	"courses": [{"title": "Intro to ML", "url": "https://example.com/ml"}],
	"duration_months": 6,
	"avg_salary_usd": "$100k - $140k"
}`

func newTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(map[string]json.RawMessage{
		"data scientist": json.RawMessage(dataScientistRoadmap),
		"Web Developer":  json.RawMessage(`{"skills": ["HTML", "CSS"], "duration_months": 4}`),
	})
	require.NoError(t, err)
	return table
}
