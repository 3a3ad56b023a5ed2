package roadmap

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_ValidJSONKeepsAllKeys(t *testing.T) {
	raw := `  {"skills": ["Go", "SQL"], "duration_months": 5, "extra": {"nested": true}}  `

	rec := Normalize(raw, roleStamp("Backend Engineer"))

	assert.True(t, rec.AIGenerated())
	assert.Equal(t, "Backend Engineer", rec.Role())
	assert.Equal(t, []string{"Go", "SQL"}, rec.Strings(FieldSkills))
	assert.Equal(t, json.Number("5"), rec[FieldDurationMonths])
	assert.Equal(t, map[string]any{"nested": true}, rec["extra"])
	assert.False(t, rec.Has(FieldAIText))
}

func TestNormalize_OverwritesModelProvenance(t *testing.T) {
	raw := `{"ai_generated": false, "role": "something else"}`

	rec := Normalize(raw, roleStamp("Nurse"))

	assert.True(t, rec.AIGenerated())
	assert.Equal(t, "Nurse", rec.Role())
}

func TestNormalize_NonJSONFallsBackToText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"prose", "Here is your roadmap: learn Go.", "Here is your roadmap: learn Go."},
		{"surrounding whitespace", "\n\n  not json \t", "not json"},
		{"code fence is not stripped", "```json\n{\"skills\": []}\n```", "```json\n{\"skills\": []}\n```"},
		{"array", `["Go", "SQL"]`, `["Go", "SQL"]`},
		{"null", "null", "null"},
		{"truncated", `{"skills": ["Go"`, `{"skills": ["Go"`},
		{"trailing text", `{"skills": []} thanks!`, `{"skills": []} thanks!`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec Record
			require.NotPanics(t, func() {
				rec = Normalize(tt.raw, roleStamp("Chef"))
			})

			text, ok := rec.AIText()
			require.True(t, ok)
			assert.Equal(t, tt.want, text)
			assert.True(t, rec.AIGenerated())
			assert.Equal(t, "Chef", rec.Role())
			assert.False(t, rec.Has(FieldError))
		})
	}
}

func TestNormalize_ReportsParseOutcome(t *testing.T) {
	rec, parsed := normalize(`{"ai_text": "model chose this key", "skills": []}`, roleStamp("Chef"))
	assert.True(t, parsed, "an object with an ai_text key is still parsed output")
	assert.Equal(t, "model chose this key", rec[FieldAIText])

	_, parsed = normalize("not json", roleStamp("Chef"))
	assert.False(t, parsed)

	_, parsed = normalize(`["an", "array"]`, roleStamp("Chef"))
	assert.False(t, parsed)
}

func TestNormalize_CompareStamp(t *testing.T) {
	rec := Normalize(`{"summary": "close cousins"}`, compareStamp("Data Scientist", "ML Engineer"))

	assert.Equal(t, "close cousins", rec[FieldSummary])
	assert.Equal(t, "Data Scientist", rec[FieldRoleA])
	assert.Equal(t, "ML Engineer", rec[FieldRoleB])
	assert.False(t, rec.Has(FieldRole))
	assert.True(t, rec.AIGenerated())
}

func TestFallback(t *testing.T) {
	rec := Fallback("", errors.New("deadline exceeded"), roleStamp("Pilot"))

	text, ok := rec.AIText()
	require.True(t, ok)
	assert.Equal(t, NoResponseText, text)
	assert.Equal(t, "deadline exceeded", rec[FieldError])
	assert.Equal(t, "Pilot", rec.Role())
	assert.True(t, rec.AIGenerated())
}

func TestFallback_KeepsPartialText(t *testing.T) {
	rec := Fallback(" partial ", nil, roleStamp("Pilot"))

	text, _ := rec.AIText()
	assert.Equal(t, "partial", text)
	assert.False(t, rec.Has(FieldError))
}

func TestRecord_Courses(t *testing.T) {
	rec := Normalize(`{"courses": [
		{"title": "CS50", "url": "https://cs50.harvard.edu"},
		"not a course",
		{"title": "", "url": ""},
		{"title": "Untitled link"}
	]}`, roleStamp("Developer"))

	assert.Equal(t, []Course{
		{Title: "CS50", URL: "https://cs50.harvard.edu"},
		{Title: "Untitled link"},
	}, rec.Courses())
}

func TestRecord_MissingFields(t *testing.T) {
	rec := Record{}

	assert.Equal(t, "", rec.Role())
	assert.False(t, rec.AIGenerated())
	assert.Nil(t, rec.Strings(FieldSkills))
	assert.Nil(t, rec.Courses())
}
