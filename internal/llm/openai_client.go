package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
)

const openAISystemPrompt = "You are a precise research assistant for international students. You answer with raw JSON only."

// openAIClient uses the chat completions API. Plain chat models have no search tool, so
// grounding is best effort and citations are always empty.
type openAIClient struct {
	api   openai.Client
	model string
	log   zerolog.Logger
}

func newOpenAIClient(apiKey, model, baseURL string, httpClient *http.Client, log zerolog.Logger) *openAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &openAIClient{
		api:   openai.NewClient(opts...),
		model: model,
		log:   log,
	}
}

func (c *openAIClient) Name() string {
	return fmt.Sprintf("OpenAI (%s)", c.model)
}

func (c *openAIClient) Search(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return Response{}, fmt.Errorf("prompt cannot be empty")
	}
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(openAISystemPrompt),
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return Response{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("openai API returned no choices")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.log.Debug().Int("chars", len(text)).Str("finish_reason", string(resp.Choices[0].FinishReason)).Msg("openai completion finished")
	return Response{Text: text}, nil
}
