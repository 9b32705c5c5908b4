package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/lawnquote/estimates-engine/internal/llm"
	"github.com/lawnquote/estimates-engine/internal/observability"
)

// Client implements llm.EstimateGenerator on top of the OpenAI chat
// completions API, with an optional Redis response cache.
type Client struct {
	cfg   Config
	api   *goopenai.Client
	cache *ResponseCache
	log   *slog.Logger
}

func NewClient(cfg Config, cache *ResponseCache, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &Client{
		cfg:   cfg,
		api:   goopenai.NewClientWithConfig(apiCfg),
		cache: cache,
		log:   logger,
	}
}

// GenerateEstimate asks the model for an estimate and returns its raw
// text. The line-items schema is sent as the output contract and the
// response is checked against it, but drift is only logged: the
// normalization pipeline downstream is built to digest anything.
func (c *Client) GenerateEstimate(ctx context.Context, req llm.EstimateRequest) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	schema := llm.BuildLineItemsJSONSchema()
	sys := llm.BuildSystemPrompt(req)
	user := llm.BuildUserPrompt(req) + "\n\nReturn ONLY JSON that matches the provided schema."
	prompt := sys + "\n" + user

	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, prompt); ok {
			observability.GeneratorCacheHits.Inc()
			c.log.Info("llm.generate.cache_hit", "req_id", rid, "content_len", len(cached))
			return cached, nil
		}
	}

	c.log.Info("llm.generate.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"job_len", len(req.JobDescription),
		"materials", len(req.Materials),
	)
	observability.GeneratorCalls.Inc()

	cctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(cctx, goopenai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: sys},
			{Role: goopenai.ChatMessageRoleUser, Content: user},
			{Role: goopenai.ChatMessageRoleSystem, Content: "JSON Schema:\n" + mustJSON(schema)},
		},
	})
	if err != nil {
		c.log.Error("llm.generate.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		c.log.Error("llm.generate.no_choices",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", fmt.Errorf("no choices in openai response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := llm.ValidateJSONAgainstSchema(schema, []byte(content)); err != nil {
		c.log.Warn("llm.generate.schema_drift",
			"req_id", rid, "error", err, "content_len", len(content),
		)
	}

	if c.cache != nil {
		c.cache.Set(ctx, prompt, content)
	}

	c.log.Info("llm.generate.ok",
		"req_id", rid,
		"content_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}
