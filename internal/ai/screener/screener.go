// Package screener implements the LLM provider adapters that turn a prepared
// screening context into a canonical screening result.
package screener

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Abraxas-365/sift/screening"
)

// Default model identifiers per provider.
const (
	DefaultOpenAIModel = "gpt-4o"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// New returns the provider adapter for the given kind. Credentials are read
// from the environment but only checked on the first call.
func New(kind screening.ProviderKind) (screening.Provider, error) {
	switch kind {
	case screening.ProviderOpenAI:
		return NewOpenAI(), nil
	case screening.ProviderGemini:
		return NewGemini(), nil
	}
	return nil, screening.ErrUnknownProvider(string(kind))
}

// DefaultModel returns the default model identifier for the given kind.
func DefaultModel(kind screening.ProviderKind) string {
	if kind == screening.ProviderGemini {
		return DefaultGeminiModel
	}
	return DefaultOpenAIModel
}

// parseResult validates a raw provider response against the canonical result
// contract. Scores are clamped; an unknown recommendation value is rejected,
// never coerced.
func parseResult(kind screening.ProviderKind, raw string) (*screening.Result, error) {
	content := stripCodeFence(strings.TrimSpace(raw))
	if content == "" {
		return nil, screening.ErrEmptyResponse(kind)
	}

	var result screening.Result
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, screening.ErrMalformedResponse(kind, err)
	}

	result.ClampScores()
	if !result.Recommendation.IsValid() {
		return nil, screening.ErrMalformedResponse(kind,
			fmt.Errorf("recommendation %q is not a valid value", result.Recommendation))
	}
	return &result, nil
}

// stripCodeFence removes a surrounding markdown code fence some backends wrap
// around JSON output despite instructions.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// checkContext lets adapters honor cancellation before spending a network call.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
