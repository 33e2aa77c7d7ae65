package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/responses"
	"github.com/openai/openai-go/v2/shared"

	"github.com/MrSnakeDoc/linkvault/internal/logger"
	"github.com/MrSnakeDoc/linkvault/internal/metrics"
)

const (
	DefaultModel = "gpt-4o-mini"

	opGenerate = "generate"
	opComplete = "complete"
)

const includeSearchSources = responses.ResponseIncludable("web_search_call.action.sources")

type Config struct {
	APIKey  string
	BaseURL string
	// Model is used for chat completions, and for page analysis when no
	// stored prompt is configured.
	Model         string
	PromptID      string
	PromptVersion string
}

// OpenAI implements Client on top of the official SDK. Each call is a single
// attempt: SDK retries are disabled.
type OpenAI struct {
	client  openai.Client
	cfg     Config
	log     logger.Logger
	metrics *metrics.Metrics
}

func NewOpenAI(cfg Config, log logger.Logger, m *metrics.Metrics) *OpenAI {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}

	return &OpenAI{
		client:  openai.NewClient(opts...),
		cfg:     cfg,
		log:     log,
		metrics: m,
	}
}

func (o *OpenAI) Generate(ctx context.Context, url string) ([]byte, error) {
	start := time.Now()

	params := responses.ResponseNewParams{
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String("URL:\n" + url),
		},
		Store: openai.Bool(true),
	}
	if o.cfg.PromptID != "" {
		params.Prompt = responses.ResponsePromptParam{ID: o.cfg.PromptID}
		if o.cfg.PromptVersion != "" {
			params.Prompt.Version = openai.String(o.cfg.PromptVersion)
		}
		params.Include = []responses.ResponseIncludable{
			responses.ResponseIncludable("reasoning.encrypted_content"),
			includeSearchSources,
		}
	} else {
		// the stored prompt carries its own tools; here the page is read through web search
		params.Model = shared.ResponsesModel(o.cfg.Model)
		params.Instructions = openai.String(analysisInstructions)
		params.Tools = []responses.ToolUnionParam{
			responses.ToolParamOfWebSearch(responses.WebSearchToolTypeWebSearch),
		}
		params.Include = []responses.ResponseIncludable{includeSearchSources}
	}

	resp, err := o.client.Responses.New(ctx, params)
	o.metrics.ObserveAI(opGenerate, start, err)
	if err != nil {
		o.log.Warn("content generation failed",
			logger.String("url", url),
			logger.Duration("took", time.Since(start)),
			logger.Error(err),
		)
		return nil, fmt.Errorf("generate: %w", err)
	}

	raw := resp.RawJSON()
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyResponse
	}

	o.log.Debug("content generated",
		logger.String("url", url),
		logger.String("response_id", resp.ID),
		logger.Duration("took", time.Since(start)),
	)
	return []byte(raw), nil
}

func (o *OpenAI) Complete(ctx context.Context, c Completion) (string, error) {
	start := time.Now()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.System),
			openai.UserMessage(c.User),
		},
	}
	if c.JSON {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	o.metrics.ObserveAI(opComplete, start, err)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}

	return completion.Choices[0].Message.Content, nil
}
