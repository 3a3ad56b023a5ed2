// Package roadmap resolves career roadmaps for job roles, answering from the
// pre-authored table when it can and from the model otherwise.
package roadmap

// Record field names shared by roadmap and comparison records.
const (
	FieldRole        = "role"
	FieldRoleA       = "role_a"
	FieldRoleB       = "role_b"
	FieldAIGenerated = "ai_generated"
	FieldAIText      = "ai_text"
	FieldError       = "error"

	FieldSkills         = "skills"
	FieldCourses        = "courses"
	FieldDurationMonths = "duration_months"
	FieldAvgSalaryUSD   = "avg_salary_usd"

	FieldSummary       = "summary"
	FieldTable         = "table"
	FieldSkillsOverlap = "skills_overlap"
	FieldUniqueA       = "unique_a"
	FieldUniqueB       = "unique_b"
	FieldSuggestions   = "suggestions"
)

// Record is a roadmap or comparison answer. Only the provenance field and the
// request fields (role, or role_a and role_b) are guaranteed; everything else is
// whatever the table entry or the model supplied.
type Record map[string]any

// Role returns the role the record was requested for
func (r Record) Role() string {
	s, _ := r[FieldRole].(string)
	return s
}

// AIGenerated reports whether the record came from the model
func (r Record) AIGenerated() bool {
	b, _ := r[FieldAIGenerated].(bool)
	return b
}

// AIText returns the raw model text kept when the answer was not valid JSON
func (r Record) AIText() (string, bool) {
	s, ok := r[FieldAIText].(string)
	return s, ok
}

// Has reports whether key is present
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Strings returns key as a list of strings, skipping non-string items
func (r Record) Strings(key string) []string {
	items, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Course is a single course recommendation
type Course struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Courses returns the courses list, skipping malformed entries
func (r Record) Courses() []Course {
	items, ok := r[FieldCourses].([]any)
	if !ok {
		return nil
	}
	out := make([]Course, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		title, _ := m["title"].(string)
		url, _ := m["url"].(string)
		if title == "" && url == "" {
			continue
		}
		out = append(out, Course{Title: title, URL: url})
	}
	return out
}
