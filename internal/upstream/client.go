package upstream

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/yungtweek/openclaw-agent/internal/config"
	"github.com/yungtweek/openclaw-agent/internal/logger"
)

// Statuses that mean "the upstream is degraded, answer with a mock instead".
// Everything else non-200 is surfaced to the caller unchanged.
func isDegradedStatus(status int) bool {
	switch status {
	case 401, 403, 500, 503:
		return true
	}
	return false
}

// Client performs exactly one HTTPS call to the Anthropic messages API per
// task. No retries: a failed attempt is terminal for that request.
type Client struct {
	api       anthropic.Client
	model     string
	forceMock bool
}

func NewClient(cfg config.Config) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.UpstreamTimeout),
	}
	if cfg.UpstreamBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.UpstreamBaseURL))
	}
	return &Client{
		api:       anthropic.NewClient(opts...),
		model:     cfg.UpstreamModel,
		forceMock: cfg.UseMock,
	}
}

// Complete sends one chat completion request and classifies the outcome.
// When mock mode is forced the network is skipped entirely and the result is
// immediately degraded.
func (c *Client) Complete(ctx context.Context, task, systemPrompt string, maxTokens int) Result {
	if c.forceMock {
		return Result{Outcome: OutcomeDegraded, Reason: "mock mode forced"}
	}

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(task)),
		},
	})
	if err != nil {
		var apierr *anthropic.Error
		if errors.As(err, &apierr) {
			if isDegradedStatus(apierr.StatusCode) {
				logger.Log.Warnw("[upstream] degraded status", "status", apierr.StatusCode)
				return Result{Outcome: OutcomeDegraded, Reason: fmt.Sprintf("status %d", apierr.StatusCode)}
			}
			logger.Log.Warnw("[upstream] unmasked error", "status", apierr.StatusCode)
			detail := apierr.RawJSON()
			if detail == "" {
				detail = apierr.Error()
			}
			return Result{Outcome: OutcomeError, Status: apierr.StatusCode, Detail: detail}
		}
		// Connection error, DNS failure, or timeout.
		logger.Log.Warnw("[upstream] transport failure", "err", err)
		return Result{Outcome: OutcomeDegraded, Reason: err.Error()}
	}

	return Result{Outcome: OutcomeSuccess, Message: fromAnthropic(msg)}
}

func fromAnthropic(msg *anthropic.Message) *Message {
	out := &Message{
		Model: string(msg.Model),
		Usage: Usage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
	}
	for _, block := range msg.Content {
		cb := ContentBlock{Type: string(block.Type)}
		if cb.Type == "text" {
			cb.Text = block.Text
		}
		out.Content = append(out.Content, cb)
	}
	return out
}
