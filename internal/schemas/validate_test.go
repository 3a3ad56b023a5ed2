package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoadmapTableSchema_ValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(RoadmapTableSchema()), &v))
	assert.Equal(t, "object", v["type"])
}

func TestValidateRoadmapTable_Valid(t *testing.T) {
	data := `{
		"data scientist": {
			"skills": ["Python", "Statistics"],
			"courses": [{"title": "Intro to ML", "url": "https://example.com/ml"}],
			"duration_months": 6,
			"avg_salary_usd": "$100k - $140k"
		},
		"designer": {}
	}`

	assert.NoError(t, ValidateRoadmapTable([]byte(data)))
}

func TestValidateRoadmapTable_Empty(t *testing.T) {
	assert.NoError(t, ValidateRoadmapTable([]byte(`{}`)))
}

func TestValidateRoadmapTable_WrongTypes(t *testing.T) {
	data := `{
		"data scientist": {
			"skills": "Python",
			"duration_months": "six"
		}
	}`

	err := ValidateRoadmapTable([]byte(data))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Errors, 2)

	fields := []string{validationErr.Errors[0].Field, validationErr.Errors[1].Field}
	assert.ElementsMatch(t, []string{"data scientist.skills", "data scientist.duration_months"}, fields)
}

func TestValidateRoadmapTable_CourseMissingURL(t *testing.T) {
	data := `{"dev": {"courses": [{"title": "Go by Example"}]}}`

	err := ValidateRoadmapTable([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url")
}

func TestValidateRoadmapTable_NotAnObject(t *testing.T) {
	err := ValidateRoadmapTable([]byte(`["data scientist"]`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateJSONString_InvalidSchema(t *testing.T) {
	err := ValidateJSONString(`{not json`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidationError_Format(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "a.skills", Message: "Invalid type"},
	}}

	assert.Contains(t, err.Error(), "1. a.skills: Invalid type")
}
