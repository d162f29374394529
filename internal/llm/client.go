package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/muhammadolammi/hrassist/internal/metrics"
	"github.com/muhammadolammi/hrassist/internal/retry"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("empty model response")

type Config struct {
	APIKey        string
	Model         string
	Temperature   float32
	RatePerMinute int
	Attempts      int
	Cache         Cache
	CacheTTL      time.Duration
	Metrics       *metrics.Metrics
}

// Client sends single-turn prompts to a Gemini model.
type Client struct {
	generate func(ctx context.Context, prompt string) (string, error)
	model    string
	limiter  *rate.Limiter
	attempts int
	cache    Cache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	limit := rate.Inf
	if cfg.RatePerMinute > 0 {
		limit = rate.Limit(float64(cfg.RatePerMinute) / 60)
	}
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 3
	}

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(cfg.Temperature),
	}
	generate := func(ctx context.Context, prompt string) (string, error) {
		resp, err := gc.Models.GenerateContent(ctx, cfg.Model, genai.Text(prompt), genConfig)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}

	return &Client{
		generate: generate,
		model:    cfg.Model,
		limiter:  rate.NewLimiter(limit, 1),
		attempts: attempts,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		metrics:  cfg.Metrics,
	}, nil
}

// Complete returns the model's reply to prompt. Identical prompts are served
// from the cache while their entry is fresh.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	key := CacheKey(c.model, prompt)
	if c.cache != nil && c.cacheTTL > 0 {
		cached, ok := c.cache.Get(ctx, key)
		c.metrics.ObserveCacheLookup(ok)
		if ok {
			return cached, nil
		}
	}

	out, err := retry.Do(ctx, c.attempts, func() (string, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
		text, err := c.generate(ctx, prompt)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if c.cache != nil && c.cacheTTL > 0 {
		c.cache.Set(ctx, key, out, c.cacheTTL)
	}
	return out, nil
}
