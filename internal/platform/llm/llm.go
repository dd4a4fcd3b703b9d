// Package llm is a provider-neutral single-shot completion client.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/garage-backend/internal/platform/logger"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderDisabled  = "disabled"
)

// ErrDisabled is returned by every call of the disabled provider.
var ErrDisabled = errors.New("llm provider disabled")

type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

type Client interface {
	// Complete performs exactly one provider call and returns the first text choice.
	Complete(ctx context.Context, req Request) (string, error)
	Provider() string
}

// HTTPError is a non-2xx provider response.
type HTTPError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s http %d: %s", e.Provider, e.StatusCode, e.Body)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

type Config struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	// Timeout bounds the underlying HTTP client. Callers still pass their own deadline.
	Timeout    time.Duration
	HTTPClient *http.Client
}

func New(cfg Config, log *logger.Logger) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderOpenAI
	}
	if cfg.HTTPClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		cfg.HTTPClient = &http.Client{Timeout: timeout}
	}
	switch provider {
	case ProviderOpenAI:
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, fmt.Errorf("missing OPENAI_API_KEY")
		}
		return newOpenAI(cfg, log), nil
	case ProviderAnthropic:
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, fmt.Errorf("missing ANTHROPIC_API_KEY")
		}
		return newAnthropic(cfg, log), nil
	case ProviderDisabled:
		return Disabled(), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
}

type disabled struct{}

func Disabled() Client { return disabled{} }

func (disabled) Complete(context.Context, Request) (string, error) { return "", ErrDisabled }
func (disabled) Provider() string                                  { return ProviderDisabled }
