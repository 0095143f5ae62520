package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/readnest-backend/internal/platform/logger"
)

// Summarizer condenses a book description into a short reader-facing blurb.
// Callers treat any failure as "no summary"; it never gates a request.
type Summarizer interface {
	Summarize(ctx context.Context, title, description string) (string, error)
	Enabled() bool
}

type summarizer struct {
	log    *logger.Logger
	client Client
}

// NewSummarizer accepts a nil client, in which case the summarizer is
// disabled (no API key configured).
func NewSummarizer(log *logger.Logger, client Client) Summarizer {
	return &summarizer{
		log:    log.With("service", "Summarizer"),
		client: client,
	}
}

func (s *summarizer) Enabled() bool { return s.client != nil }

func (s *summarizer) Summarize(ctx context.Context, title, description string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("summarizer disabled")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return "", fmt.Errorf("empty description")
	}

	system := "You summarize book descriptions for a book discovery app. Reply with 2-3 plain sentences, no spoilers, no markdown."
	user := fmt.Sprintf("Title: %s\n\nDescription:\n%s", title, description)

	out, err := s.client.GenerateText(ctx, system, user)
	if err != nil {
		s.log.Warn("Summary generation failed", "title", title, "error", err)
		return "", err
	}
	return out, nil
}
