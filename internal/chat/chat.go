// Package chat answers questions grounded on the saved links.
package chat

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/linkvault/internal/ai"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// failureMessage is shown to the user for any failed turn.
const failureMessage = "could not get a response from the AI, check the API key"

// Message is one chat turn. Sources index into the links used for that turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Sources []int  `json:"sources"`
}

// Citation resolves a source index to the link it pointed to.
type Citation struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Reply struct {
	Message
	Citations []Citation `json:"citations"`
}

type Service struct {
	client  ai.Client
	log     logger.Logger
	metrics *metrics.Metrics
}

func NewService(client ai.Client, log logger.Logger, m *metrics.Metrics) *Service {
	return &Service{client: client, log: log, metrics: m}
}

// Ask runs one stateless turn over links. It never returns an error: a
// failed turn becomes an assistant message starting with "Error: ".
func (s *Service) Ask(ctx context.Context, question string, links []*domain.Link) Reply {
	start := time.Now()

	raw, err := s.client.Complete(ctx, ai.Completion{
		System: SystemPrompt(links),
		User:   question,
		JSON:   true,
	})
	if err != nil {
		return s.failed(err)
	}

	answer, sources, err := ParseAnswer(raw, len(links))
	if err != nil {
		return s.failed(err)
	}

	s.metrics.Chat(nil)
	s.log.Info("chat answered",
		logger.Int("links", len(links)),
		logger.Int("sources", len(sources)),
		logger.Duration("took", time.Since(start)),
	)

	return Reply{
		Message: Message{
			Role:    RoleAssistant,
			Content: answer,
			Sources: sources,
		},
		Citations: citations(sources, links),
	}
}

func (s *Service) failed(err error) Reply {
	s.metrics.Chat(err)
	s.log.Warn("chat turn failed", logger.Error(err))
	return Reply{
		Message: Message{
			Role:    RoleAssistant,
			Content: "Error: " + failureMessage,
			Sources: []int{},
		},
		Citations: []Citation{},
	}
}

func citations(sources []int, links []*domain.Link) []Citation {
	out := make([]Citation, 0, len(sources))
	for _, i := range sources {
		l := links[i]
		out = append(out, Citation{
			Index: i,
			ID:    l.ID,
			Title: l.DisplayTitle(),
			URL:   l.URL,
		})
	}
	return out
}
