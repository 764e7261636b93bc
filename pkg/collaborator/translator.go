package collaborator

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// FonTranslator translates summary strings to Fon through an OpenAI-compatible
// chat completion endpoint. without an API key it is a no-op passthrough, and
// every failure degrades to the input text at the caller.
type FonTranslator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewFonTranslator(apiKey, baseURL, model string, logger *zap.Logger) *FonTranslator {
	if apiKey == "" {
		return &FonTranslator{logger: logger}
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &FonTranslator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

func (tr *FonTranslator) Translate(ctx context.Context, text string) (string, error) {
	if tr.client == nil {
		return text, nil
	}

	prompt := fmt.Sprintf("Translate the following text to Fon (Benin language). "+
		"Ensure to translate 'Total' to 'Bǐ' and 'Saison' to 'Hwenu'. "+
		"Translate 'Bus', 'Taxi', 'Suggestion' appropriately. "+
		"Keep numbers, prices, and special characters (like |) exactly as is. "+
		"Output ONLY the translated text, no markdown, no explanations. "+
		"Text: '%s'", text)

	resp, err := tr.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: tr.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("translator returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
