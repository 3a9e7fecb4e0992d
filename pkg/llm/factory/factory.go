package factory

import (
	"fmt"

	"invention-disclosure-be/pkg/llm"
	"invention-disclosure-be/pkg/llm/gemini"
	"invention-disclosure-be/pkg/llm/ollama"
)

// NewLLMProvider resolves a concrete chat provider from configuration.
func NewLLMProvider(providerType, modelName, ollamaBaseURL, geminiApiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "gemini":
		if geminiApiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an api key")
		}
		return gemini.NewGeminiProvider(geminiApiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider type: %s", providerType)
	}
}
