package brain

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const systemPrompt = "You are an empathetic voice assistant that controls a smart home " +
	"cockpit. Provide concise and actionable replies."

const defaultModel = "gpt-4o-mini"

// OpenAIAdapter talks to the OpenAI chat completions API.
type OpenAIAdapter struct {
	client openai.Client
	model  string
}

func NewOpenAIAdapter(apiKey, model string) *OpenAIAdapter {
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &OpenAIAdapter{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (a *OpenAIAdapter) Complete(ctx context.Context, req Request) (Response, error) {
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(req.InputText),
		},
		Model:     openai.ChatModel(a.model),
		MaxTokens: openai.Int(200),
	})
	if err != nil {
		return Response{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("no choices in completion response")
	}
	return Response{Text: strings.TrimSpace(resp.Choices[0].Message.Content)}, nil
}
