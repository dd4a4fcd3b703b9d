package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/yungbote/garage-backend/internal/platform/logger"
)

const defaultAnthropicModel = "claude-3-5-haiku-latest"

type anthropicClient struct {
	client *anthropic.Client
	model  string
	log    *logger.Logger
}

func newAnthropic(cfg Config, log *logger.Logger) Client {
	opts := []anthropic.ClientOption{anthropic.WithHTTPClient(cfg.HTTPClient)}
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		opts = append(opts, anthropic.WithBaseURL(base))
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultAnthropicModel
	}
	return &anthropicClient{
		client: anthropic.NewClient(cfg.APIKey, opts...),
		model:  model,
		log:    log.With("client", "Anthropic", "model", model),
	}
}

func (c *anthropicClient) Provider() string { return ProviderAnthropic }

func (c *anthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	temp := float32(req.Temperature)
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(req.User)},
			},
		},
		MaxTokens:   req.MaxTokens,
		System:      req.System,
		Temperature: &temp,
	})
	if err != nil {
		return "", mapAnthropicError(err)
	}
	if len(resp.Content) == 0 {
		return "", nil
	}
	return resp.Content[0].GetText(), nil
}

// anthropicStatus recovers the HTTP status for an API error envelope, which the
// client library returns without one.
var anthropicStatus = map[anthropic.ErrType]int{
	anthropic.ErrTypeInvalidRequest: http.StatusBadRequest,
	anthropic.ErrTypeAuthentication: http.StatusUnauthorized,
	anthropic.ErrTypePermission:     http.StatusForbidden,
	anthropic.ErrTypeNotFound:       http.StatusNotFound,
	anthropic.ErrTypeTooLarge:       http.StatusRequestEntityTooLarge,
	anthropic.ErrTypeRateLimit:      http.StatusTooManyRequests,
	anthropic.ErrTypeApi:            http.StatusInternalServerError,
	anthropic.ErrTypeOverloaded:     http.StatusServiceUnavailable,
}

func mapAnthropicError(err error) error {
	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		return &HTTPError{Provider: ProviderAnthropic, StatusCode: reqErr.StatusCode, Body: string(reqErr.Body)}
	}
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		status, ok := anthropicStatus[apiErr.Type]
		if !ok {
			status = http.StatusBadGateway
		}
		return &HTTPError{Provider: ProviderAnthropic, StatusCode: status, Body: apiErr.Error()}
	}
	return fmt.Errorf("anthropic complete: %w", err)
}
