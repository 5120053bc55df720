package llm

import "fmt"

// ResponseError reports an LLM response that could not be decoded into a
// parse result.
type ResponseError struct {
	Message string
	Cause   error
}

func (e *ResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm response error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm response error: %s", e.Message)
}

func (e *ResponseError) Unwrap() error {
	return e.Cause
}
