package provider

import (
	"context"
	"fmt"

	"tradevision/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/trace"
)

// OpenAIClient is the alternate completion backend, selected with
// AI_PROVIDER=openai. It satisfies the same TextCompleter contract as the
// Gemini client.
type OpenAIClient struct {
	tracer trace.Tracer
	client openai.Client
	model  string
}

func NewOpenAIClient(tracer trace.Tracer, apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		tracer: tracer,
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

func (c *OpenAIClient) Name() string { return "OpenAI " + c.model }

func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "openai-client.complete")
	defer span.End()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", &domain.ProviderError{Provider: "openai", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &domain.ProviderError{Provider: "openai", Err: fmt.Errorf("empty choice list")}
	}
	return resp.Choices[0].Message.Content, nil
}
