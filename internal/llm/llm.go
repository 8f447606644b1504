// Package llm provides the narrow completion capability the enrichment and
// recommendation pipeline depends on. Components take the Client interface;
// the OpenAI implementation is wiring detail.
package llm

import "context"

// Request describes a single completion call
type Request struct {
	Model        string
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
	// JSONMode asks the model for a single JSON object response where the
	// backing API supports it
	JSONMode bool
}

// Client is the raw LLM transport capability
type Client interface {
	// Complete sends one prompt pair and returns the reply text
	Complete(ctx context.Context, req Request) (string, error)
}

// Error represents an LLM transport or API failure
type Error struct {
	Operation string
	Message   string
	Err       error
}

func (e *Error) Error() string {
	msg := "llm " + e.Operation + " failed: " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
