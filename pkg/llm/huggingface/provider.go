package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Fordjour12/monthly-zen-sub002/pkg/llm"
)

const defaultBaseURL = "https://router.huggingface.co/v1"

type HuggingFaceProvider struct {
	ApiKey    string
	ModelName string
	BaseURL   string
	Client    *http.Client
}

var _ llm.LLMProvider = &HuggingFaceProvider{}

func NewHuggingFaceProvider(apiKey, modelName string) *HuggingFaceProvider {
	return &HuggingFaceProvider{
		ApiKey:    apiKey,
		ModelName: modelName,
		BaseURL:   defaultBaseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// OpenAI-compatible chat completion payloads, which the HF router speaks.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message llm.Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (h *HuggingFaceProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := &llm.Options{
		Temperature: 0.7,
		MaxTokens:   500,
	}
	for _, opt := range opts {
		opt(options)
	}

	messages := make([]llm.Message, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = llm.Message{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := h.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
		Stream:      false,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := h.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.ApiKey)

	resp, err := h.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("huggingface request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("huggingface error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var hfResp chatResponse
	if err := json.Unmarshal(bodyBytes, &hfResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if hfResp.Error != nil {
		return "", fmt.Errorf("huggingface error: %s", hfResp.Error.Message)
	}

	if len(hfResp.Choices) == 0 {
		return "", fmt.Errorf("huggingface returned no choices")
	}

	return hfResp.Choices[0].Message.Content, nil
}

func (h *HuggingFaceProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return h.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
