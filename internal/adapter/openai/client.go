package openai

import (
	"context"

	openaiapi "github.com/sashabaranov/go-openai"

	"docassist/internal/domain"
	"docassist/internal/usecase/chat"
)

// Client talks to any OpenAI-compatible chat endpoint. The default base URL
// is Ollama's /v1 API, which accepts any token.
type Client struct {
	api *openaiapi.Client
}

func NewClient(token, baseURL string) *Client {
	cfg := openaiapi.DefaultConfig(token)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api: openaiapi.NewClientWithConfig(cfg),
	}
}

func (c *Client) Stream(ctx context.Context, req chat.CompletionRequest) (chat.Stream, error) {
	apiReq := openaiapi.ChatCompletionRequest{
		Model:               req.Model,
		MaxCompletionTokens: req.MaxCompletionTokens,
		Stream:              true,
		Messages:            toAPIMessages(req.Messages),
	}

	stream, err := c.api.CreateChatCompletionStream(ctx, apiReq)
	if err != nil {
		return nil, err
	}
	return &chunkStream{stream: stream}, nil
}

type chunkStream struct {
	stream *openaiapi.ChatCompletionStream
}

// Recv skips deltas without choices (usage frames, keep-alives) and passes
// io.EOF through unchanged.
func (s *chunkStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		return resp.Choices[0].Delta.Content, nil
	}
}

func (s *chunkStream) Close() error {
	return s.stream.Close()
}

func toAPIMessages(msgs []domain.Message) []openaiapi.ChatCompletionMessage {
	res := make([]openaiapi.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, openaiapi.ChatCompletionMessage{
			Role:    toAPIRole(m.Role),
			Content: m.Content,
		})
	}
	return res
}

func toAPIRole(r domain.Role) string {
	switch r {
	case domain.RoleSystem:
		return openaiapi.ChatMessageRoleSystem
	case domain.RoleAssistant:
		return openaiapi.ChatMessageRoleAssistant
	default:
		return openaiapi.ChatMessageRoleUser
	}
}
