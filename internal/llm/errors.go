package llm

import "fmt"

// APICallError represents a failure talking to the model provider
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ResponseError represents a provider response that carried no usable text
type ResponseError struct {
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("empty model response: %s", e.Message)
}
