package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"docassist/internal/config"
	"docassist/internal/domain"
	"docassist/internal/observability"
)

var ErrEmptyMessage = errors.New("empty message")

// Client starts a streamed completion over the full message list.
type Client interface {
	Stream(ctx context.Context, req CompletionRequest) (Stream, error)
}

// Stream yields text chunks in arrival order. Recv returns io.EOF once the
// reply is complete.
type Stream interface {
	Recv() (string, error)
	Close() error
}

type CompletionRequest struct {
	Model               string
	Messages            []domain.Message
	MaxCompletionTokens int
}

type Service struct {
	client Client
	cfg    config.Config
}

func NewService(client Client, cfg config.Config) *Service {
	return &Service{
		client: client,
		cfg:    cfg,
	}
}

// Reply appends text as a user message, streams the model's answer into w
// and appends it as an assistant message. If the call fails or ctx is
// cancelled no assistant message is added; the user message stays.
func (s *Service) Reply(ctx context.Context, conv *domain.Conversation, text string, w io.Writer) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyMessage
	}

	if err := conv.Append(domain.Message{Role: domain.RoleUser, Content: text}); err != nil {
		return "", err
	}

	resp, err := s.stream(ctx, conv.Messages(), w)
	if err != nil {
		observability.WithFields("model", s.cfg.Model).Warn("chat request failed", "err", err)
		return "", err
	}

	if err := conv.Append(domain.Message{Role: domain.RoleAssistant, Content: resp}); err != nil {
		return "", err
	}
	return resp, nil
}

func (s *Service) stream(ctx context.Context, msgs []domain.Message, w io.Writer) (string, error) {
	stream, err := s.client.Stream(ctx, CompletionRequest{
		Model:               s.cfg.Model,
		Messages:            msgs,
		MaxCompletionTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var full strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return full.String(), nil
		}
		if err != nil {
			return "", err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		full.WriteString(chunk)
		if _, err := io.WriteString(w, chunk); err != nil {
			return "", fmt.Errorf("write chunk: %w", err)
		}
	}
}
