package brain

import (
	"context"
	"fmt"
	"strings"
)

// Request is the normalized completion request for one conversational turn.
type Request struct {
	UserID    string `json:"user_id"`
	InputText string `json:"input_text"`
}

// Response is the completion backend's text output.
type Response struct {
	Text string `json:"text"`
}

// Adapter bridges the cockpit pipeline with a text-completion backend.
type Adapter interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// Config controls adapter construction.
type Config struct {
	Mode   string
	APIKey string
	Model  string
}

// NewAdapter resolves the completion backend at construction time. "auto"
// picks the live backend when a key is configured and the canned one
// otherwise, so callers never need a nil check. The resolved mode is
// returned for the status read-model.
func NewAdapter(cfg Config) (Adapter, string, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.APIKey) != "" {
			return NewOpenAIAdapter(cfg.APIKey, cfg.Model), "openai", nil
		}
		return NewCannedAdapter(), "canned", nil
	case "openai":
		if strings.TrimSpace(cfg.APIKey) == "" {
			return nil, "", fmt.Errorf("completion API key is required for openai mode")
		}
		return NewOpenAIAdapter(cfg.APIKey, cfg.Model), "openai", nil
	case "canned":
		return NewCannedAdapter(), "canned", nil
	default:
		return nil, "", fmt.Errorf("unsupported brain adapter mode %q", cfg.Mode)
	}
}
