package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Client performs one structured generation call. result must be a pointer
// the provider response is decoded into.
type Client interface {
	Chat(ctx context.Context, req Request, result any) (*Response, error)
	Model() string
}

type Request struct {
	SystemPrompt string
	UserPrompt   string
	SchemaName   string
	Schema       any
	MaxTokens    int
	Temperature  *float64 // nil = model default
}

type Response struct {
	PromptTokens     int
	CompletionTokens int
}

type Config struct {
	Provider  string // "openai" or "anthropic"
	APIKey    string
	BaseURL   string // Optional: custom endpoint or gateway
	Model     string
	MaxTokens int
}

// New picks the provider named in cfg. OpenAI is the default.
func New(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	switch cfg.Provider {
	case "", ProviderOpenAI:
		return newOpenAIClient(cfg), nil
	case ProviderAnthropic:
		return newAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

// GenerateSchema reflects T into an inline JSON schema suitable for strict
// structured output.
func GenerateSchema[T any]() any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

func Temp(t float64) *float64 {
	return &t
}

// DecodeJSON unmarshals model text into result. Providers without a strict
// JSON mode sometimes wrap the payload in a markdown fence or add prose around
// it, so the outermost JSON value is extracted first.
func DecodeJSON(text string, result any) error {
	payload := extractJSON([]byte(text))
	if len(payload) == 0 {
		return fmt.Errorf("no JSON payload in response")
	}
	if err := json.Unmarshal(payload, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func extractJSON(b []byte) []byte {
	b = bytes.TrimSpace(b)
	start := bytes.IndexAny(b, "[{")
	if start < 0 {
		return nil
	}
	closer := byte('}')
	if b[start] == '[' {
		closer = ']'
	}
	end := bytes.LastIndexByte(b, closer)
	if end < start {
		return nil
	}
	return b[start : end+1]
}
