package roadmap

import "fmt"

// TableLoadError represents a failure loading the pre-authored roadmap table
type TableLoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *TableLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load roadmap table from %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load roadmap table from %s: %s", e.Source, e.Message)
}

func (e *TableLoadError) Unwrap() error {
	return e.Cause
}
