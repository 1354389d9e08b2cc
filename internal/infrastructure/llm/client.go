package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pantrychef/backend/internal/domain"
)

// Config holds settings for an OpenAI-compatible chat completions API
type Config struct {
	APIKey            string
	BaseURL           string
	Model             string
	MaxTokens         int
	Temperature       float64
	RequestsPerMinute int
	HTTPTimeout       time.Duration
}

// Client sends prompts to the suggestion model. It makes exactly one request
// per call; retries are the caller's decision.
type Client struct {
	http        *resty.Client
	model       string
	maxTokens   int
	temperature float64
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new chat completions client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 60 * time.Second
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1024
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), rpm)

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Title", "PantryChef").
		SetTimeout(cfg.HTTPTimeout)

	return &Client{
		http:        httpClient,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		rateLimiter: limiter,
		logger:      logger,
	}
}

// Complete sends a single user message and returns the model's text answer.
// 429 and 5xx responses wrap domain.ErrSuggestionRetryable.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	}

	req := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrSuggestionUnavailable, ctxErr)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrSuggestionRetryable, err)
	}

	c.logger.Debug("chat completion response",
		zap.Int("status", resp.StatusCode()),
		zap.Duration("latency", time.Since(start)))

	if err := statusError(resp.StatusCode(), resp.Body()); err != nil {
		return "", err
	}

	return contentFromResponse(resp.Body())
}

func statusError(status int, body []byte) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status %d: %s", domain.ErrSuggestionRetryable, status, apiErrorMessage(body))
	default:
		return fmt.Errorf("%w: status %d: %s", domain.ErrSuggestionUnavailable, status, apiErrorMessage(body))
	}
}
