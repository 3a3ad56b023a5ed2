package roadmap

import "strings"

// NoResponseText stands in for the model text when a call produced none
const NoResponseText = "No response from model."

// Normalize turns raw model output into a Record.
// The text is whitespace-trimmed and parsed as a JSON object; code fences are
// not stripped, so fenced output takes the fallback branch. A parsed object
// keeps every key the model produced, with ai_generated and the stamp fields
// overwritten. Anything else becomes {ai_text, ai_generated, stamp...}.
func Normalize(raw string, stamp map[string]string) Record {
	rec, _ := normalize(raw, stamp)
	return rec
}

// normalize is Normalize that also reports whether raw parsed as an object
func normalize(raw string, stamp map[string]string) (Record, bool) {
	text := strings.TrimSpace(raw)

	rec, err := decodeObject([]byte(text))
	if err != nil {
		return stampRecord(Record{FieldAIText: text}, true, stamp), false
	}

	return stampRecord(rec, true, stamp), true
}

// Fallback builds the record returned when the model call itself failed.
// raw is whatever text is available, possibly none.
func Fallback(raw string, cause error, stamp map[string]string) Record {
	text := strings.TrimSpace(raw)
	if text == "" {
		text = NoResponseText
	}

	rec := Record{FieldAIText: text}
	if cause != nil {
		rec[FieldError] = cause.Error()
	}
	return stampRecord(rec, true, stamp)
}

func stampRecord(rec Record, aiGenerated bool, stamp map[string]string) Record {
	for k, v := range stamp {
		rec[k] = v
	}
	rec[FieldAIGenerated] = aiGenerated
	return rec
}

// roleStamp is the stamp for single-role records
func roleStamp(role string) map[string]string {
	return map[string]string{FieldRole: role}
}

// compareStamp is the stamp for comparison records
func compareStamp(roleA, roleB string) map[string]string {
	return map[string]string{FieldRoleA: roleA, FieldRoleB: roleB}
}
