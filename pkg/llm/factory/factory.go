package factory

import (
	"fmt"

	"github.com/Fordjour12/monthly-zen-sub002/pkg/llm"
	"github.com/Fordjour12/monthly-zen-sub002/pkg/llm/huggingface"
	"github.com/Fordjour12/monthly-zen-sub002/pkg/llm/ollama"
)

// NewLLMProvider selects a chat backend by name. Ollama is the local
// default; huggingface needs an API key.
func NewLLMProvider(providerType, modelName, ollamaBaseURL, hfApiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "huggingface":
		if hfApiKey == "" {
			return nil, fmt.Errorf("huggingface provider requires an API key")
		}
		return huggingface.NewHuggingFaceProvider(hfApiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", providerType)
	}
}
