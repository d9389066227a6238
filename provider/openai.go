package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ZaguanLabs/gotdict"
)

// OpenAI translates with a chat completion model.
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float32
	configured  bool
}

// OpenAIConfig holds configuration for the OpenAI backend.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key (uses OPENAI_API_KEY env var if empty)
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.2)
	BaseURL     string  // Custom base URL (optional)
}

// NewOpenAI creates a new OpenAI backend.
func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	config := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	return &OpenAI{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
		configured:  apiKey != "",
	}
}

// Translate translates a single definition or example sentence.
func (p *OpenAI) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	if !p.configured {
		return "", gotdict.ErrBackendUnavailable
	}
	if strings.TrimSpace(req.Text) == "" {
		return "", nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: req.Text},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", &gotdict.BackendError{
			Backend:   "openai",
			Message:   "API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &gotdict.BackendError{
			Backend:   "openai",
			Message:   "no response",
			Retryable: true,
		}
	}

	return p.parseResponse(resp.Choices[0].Message.Content)
}

func (p *OpenAI) buildSystemPrompt(req TranslateRequest) string {
	source := gotdict.LanguageName(sourceLang(req))
	target := gotdict.LanguageName(targetLang(req))

	return fmt.Sprintf(`# Role
You are a bilingual lexicographer writing a %[1]s-%[2]s learner's dictionary.

# Task
Translate the %[1]s dictionary definition or example sentence from the user into natural %[2]s.

# Style Guide
- Definitions: use the concise register of a printed dictionary. Verbs end in the dictionary form (e.g. -다).
- Examples: translate the whole sentence naturally, keeping names and numbers.
- Do not add explanations, romanization, labels or quotes.

# Format
Return a valid JSON object with a single key "translation" holding the %[2]s text.
Example: { "translation": "명확하게 설명하다" }`, source, target)
}

func (p *OpenAI) parseResponse(content string) (string, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err == nil {
		if s, ok := obj["translation"].(string); ok {
			return s, nil
		}
		// Some models pick a different key.
		for _, v := range obj {
			if s, ok := v.(string); ok {
				return s, nil
			}
		}
	}

	return "", &gotdict.BackendError{
		Backend: "openai",
		Message: "invalid response format",
	}
}

func isRetryableError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{"rate limit", "connection refused", "temporary"} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// Verify OpenAI implements Backend
var _ Backend = (*OpenAI)(nil)
