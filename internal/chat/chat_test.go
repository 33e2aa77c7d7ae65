package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/MrSnakeDoc/linkvault/internal/ai/aitest"
	"github.com/MrSnakeDoc/linkvault/internal/domain"
	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
)

func sampleLinks() []*domain.Link {
	return []*domain.Link{
		{ID: "a", URL: "https://a.io", Title: "Internal linking", Category: domain.CategorySEO, Content: "internal links help"},
		{ID: "b", URL: "https://b.io", Category: domain.CategoryProduct, Content: "roadmaps"},
	}
}

func TestBuildContext(t *testing.T) {
	got := BuildContext(sampleLinks())

	for _, want := range []string{
		"[0] Internal linking\nCategory: SEO\nContent: internal links help...\n",
		"[1] https://b.io\nCategory: Product\nContent: roadmaps...\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BuildContext() missing %q in:\n%s", want, got)
		}
	}
}

func TestBuildContextTruncatesContent(t *testing.T) {
	links := []*domain.Link{{URL: "https://x.io", Category: domain.CategoryBusiness, Content: strings.Repeat("ü", ContentPrefixRunes+10)}}
	got := BuildContext(links)

	start := strings.Index(got, "Content: ") + len("Content: ")
	end := strings.LastIndex(got, "...")
	if n := utf8.RuneCountInString(got[start:end]); n != ContentPrefixRunes {
		t.Errorf("content runes = %d, want %d", n, ContentPrefixRunes)
	}
}

func TestSystemPromptWithoutLinks(t *testing.T) {
	got := SystemPrompt(nil)
	if strings.Contains(got, "Context from saved links") {
		t.Error("SystemPrompt(nil) contains a context block")
	}
	if !strings.Contains(got, NotFoundAnswer) {
		t.Error("SystemPrompt(nil) is missing the not-found sentence")
	}
}

func TestAsk(t *testing.T) {
	fake := &aitest.Fake{Reply: `{"answer":"Use internal links.","sources":[0,0,7]}`}
	s := NewService(fake, logger.Nop(), metrics.New())

	reply := s.Ask(context.Background(), "how do I do link building?", sampleLinks())

	if reply.Role != RoleAssistant || reply.Content != "Use internal links." {
		t.Errorf("Ask() = %+v", reply.Message)
	}
	if len(reply.Sources) != 1 || reply.Sources[0] != 0 {
		t.Errorf("Ask() sources = %v, want [0]", reply.Sources)
	}
	if len(reply.Citations) != 1 || reply.Citations[0].ID != "a" || reply.Citations[0].URL != "https://a.io" {
		t.Errorf("Ask() citations = %+v", reply.Citations)
	}

	c := fake.Completions[0]
	if !c.JSON || c.User != "how do I do link building?" {
		t.Errorf("Complete() got %+v", c)
	}
}

func TestAskFailures(t *testing.T) {
	tests := []struct {
		name string
		fake *aitest.Fake
	}{
		{"transport", &aitest.Fake{CompleteErr: errors.New("401")}},
		{"bad json", &aitest.Fake{Reply: "not json"}},
		{"empty answer", &aitest.Fake{Reply: `{"answer":"","sources":[0]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(tt.fake, logger.Nop(), nil)
			reply := s.Ask(context.Background(), "q", sampleLinks())

			if !strings.HasPrefix(reply.Content, "Error: ") {
				t.Errorf("Ask() content = %q, want an Error: prefix", reply.Content)
			}
			if reply.Sources == nil || len(reply.Sources) != 0 {
				t.Errorf("Ask() sources = %#v, want empty non-nil", reply.Sources)
			}
		})
	}
}

func TestAskWithNoLinks(t *testing.T) {
	fake := &aitest.Fake{Reply: `{"answer":"` + NotFoundAnswer + `","sources":[]}`}
	s := NewService(fake, logger.Nop(), nil)

	reply := s.Ask(context.Background(), "anything?", nil)
	if reply.Content != NotFoundAnswer || len(reply.Sources) != 0 {
		t.Errorf("Ask() = %+v", reply.Message)
	}
}
