package factory

import (
	"fmt"

	"tribe-chatbot-be/pkg/llm"
	"tribe-chatbot-be/pkg/llm/ollama"
	"tribe-chatbot-be/pkg/llm/openai"
)

// NewLLMProvider selects a generation backend by name. One backend per
// deployment; the switch is explicit configuration, never runtime fallback.
func NewLLMProvider(provider, model, ollamaBaseURL, openAIKey string) (llm.LLMProvider, error) {
	switch provider {
	case "ollama", "":
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	case "openai":
		if openAIKey == "" {
			return nil, fmt.Errorf("llm factory: openai provider selected but no API key configured")
		}
		return openai.NewOpenAIProvider(openAIKey, model), nil
	default:
		return nil, fmt.Errorf("llm factory: unknown provider %q", provider)
	}
}
