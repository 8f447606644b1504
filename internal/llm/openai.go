package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// openAIClient implements Client against the OpenAI chat-completions API
type openAIClient struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

// NewOpenAIClient creates an OpenAI-backed LLM client
func NewOpenAIClient(baseURL, apiKey string, timeout time.Duration) Client {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second)

	return &openAIClient{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// OpenAI chat-completions wire structures
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends one chat-completion request and returns the reply content
func (c *openAIClient) Complete(ctx context.Context, req Request) (string, error) {
	body := chatCompletionRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	var result chatCompletionResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post(c.baseURL + "/chat/completions")

	if err != nil {
		return "", &Error{
			Operation: "complete",
			Message:   "request failed",
			Err:       err,
		}
	}

	if resp.StatusCode() != http.StatusOK {
		msg := fmt.Sprintf("API returned status %d", resp.StatusCode())
		if result.Error != nil && result.Error.Message != "" {
			msg += ": " + result.Error.Message
		}
		return "", &Error{
			Operation: "complete",
			Message:   msg,
		}
	}

	if len(result.Choices) == 0 {
		return "", &Error{
			Operation: "complete",
			Message:   "response contained no choices",
		}
	}

	return result.Choices[0].Message.Content, nil
}
