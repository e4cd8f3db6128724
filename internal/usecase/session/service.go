package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"docassist/internal/config"
	"docassist/internal/domain"
	"docassist/internal/observability"
	"docassist/internal/usecase/extract"
)

var (
	ErrNothingExtracted = errors.New("no text extracted")
	ErrEmptySession     = errors.New("saved session has no messages")
)

type Extractor interface {
	Extract(ctx context.Context, paths []string, lang domain.Language, kind domain.SourceKind) extract.Report
}

type StartInput struct {
	Paths    []string
	Language domain.Language
	Kind     domain.SourceKind
}

type Service struct {
	extractor Extractor
	store     domain.SessionStore
	cfg       config.Config
}

func NewService(extractor Extractor, store domain.SessionStore, cfg config.Config) *Service {
	return &Service{
		extractor: extractor,
		store:     store,
		cfg:       cfg,
	}
}

// Start extracts the documents and seeds a new conversation with them. The
// report is returned even on ErrNothingExtracted so callers can show why.
func (s *Service) Start(ctx context.Context, in StartInput) (*domain.Conversation, extract.Report, error) {
	report := s.extractor.Extract(ctx, in.Paths, in.Language, in.Kind)
	if !report.HasText() {
		return nil, report, ErrNothingExtracted
	}

	observability.Logger().Info("session started",
		"files", len(in.Paths), "items", len(report.Items), "lang", in.Language.Code, "kind", in.Kind)
	return domain.NewConversation(BuildSystemPrompt(s.cfg.SystemPreamble, report.Text())), report, nil
}

func BuildSystemPrompt(preamble, text string) string {
	return preamble + text
}

func (s *Service) Resume(name string) (*domain.Conversation, error) {
	conv, err := s.store.Load(name)
	if err != nil {
		observability.WithFields("session", name).Warn("load failed", "err", err)
		return nil, err
	}
	if conv.Len() == 0 {
		observability.WithFields("session", name).Warn("load failed", "err", ErrEmptySession)
		return nil, fmt.Errorf("%w: %s", ErrEmptySession, name)
	}
	return conv, nil
}

// Saved lists saved sessions, keeping only names that match the glob
// pattern when one is given.
func (s *Service) Saved(pattern string) ([]string, error) {
	names, err := s.store.List()
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		return names, nil
	}

	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	var out []string
	for _, n := range names {
		if g.Match(n) || g.Match(strings.TrimSuffix(n, domain.SessionExt)) {
			out = append(out, n)
		}
	}
	return out, nil
}

// ParsePaths splits comma-separated input and trims each entry.
func ParsePaths(raw string) []string {
	parts := strings.Split(raw, ",")
	paths := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		paths = append(paths, p)
	}
	return paths
}
