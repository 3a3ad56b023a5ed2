package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jonathan/pathfinder/internal/roadmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoResolver answers with a record naming the requested role
type echoResolver struct {
	calls atomic.Int32
}

func (e *echoResolver) Cached(string) bool { return false }

func (e *echoResolver) Resolve(_ context.Context, role string) roadmap.Record {
	e.calls.Add(1)
	return roadmap.Record{"role": role, "ai_generated": false}
}

func (e *echoResolver) Compare(_ context.Context, roleA, roleB string) roadmap.Record {
	return roadmap.Record{"role_a": roleA, "role_b": roleB, "ai_generated": true}
}

func TestNormalizeRoles(t *testing.T) {
	roles, err := normalizeRoles([]string{" Data Scientist ", "Nurse"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Data Scientist", "Nurse"}, roles)

	_, err = normalizeRoles([]string{"Nurse", "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role 2")
	assert.Contains(t, err.Error(), "Job title required.")
}

func TestResolveRoles_PreservesOrder(t *testing.T) {
	resolver := &echoResolver{}
	roles := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	records, err := resolveRoles(context.Background(), resolver, roles)
	require.NoError(t, err)

	require.Len(t, records, len(roles))
	for i, rec := range records {
		assert.Equal(t, roles[i], rec.Role())
	}
	assert.Equal(t, int32(len(roles)), resolver.calls.Load())
}

func TestResolveRoles_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolveRoles(ctx, &echoResolver{}, []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, roadmap.Record{"role": "Nurse", "ai_generated": false}))

	assert.JSONEq(t, `{"role": "Nurse", "ai_generated": false}`, buf.String())
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestRoadmapCommand_TableHitJSON(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "roadmap", "--json", "Data Scientist")
	cmd.Dir = "../.."
	cmd.Env = append(cmd.Environ(), "LLM_PROVIDER=gemini", "GEMINI_API_KEY=unused", "DATABASE_URL=")
	output, err := cmd.Output()
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(output, &rec))
	assert.Equal(t, "Data Scientist", rec["role"])
	assert.Equal(t, false, rec["ai_generated"])
}

func TestRoadmapCommand_ArgsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{name: "no roles", args: []string{"roadmap"}, errorString: "requires at least 1 arg"},
		{name: "blank role", args: []string{"roadmap", "  "}, errorString: "Job title required."},
		{name: "compare needs two roles", args: []string{"compare", "Nurse"}, errorString: "accepts 2 arg"},
		{name: "compare blank role", args: []string{"compare", "Nurse", " "}, errorString: "Both roles are required."},
	}

	binaryPath := getBinaryPath(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			output, err := cmd.CombinedOutput()

			assert.Error(t, err)
			assert.Contains(t, string(output), tt.errorString)
		})
	}
}
