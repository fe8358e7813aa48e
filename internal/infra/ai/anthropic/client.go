package anthropic

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/bryanwahyu/leadscope/internal/domain/ai"
)

const (
	maxTokens = 8192
	// statusOverloaded is Anthropic's non-standard "overloaded_error" status.
	statusOverloaded = 529
)

type Client struct {
	client *anthropic.Client
	model  anthropic.Model
}

// NewClient fails when apiKey is empty. The SDK's own retries are disabled;
// callers wrap Complete in their retry policy.
func NewClient(apiKey, model string, opts ...option.RequestOption) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}, opts...)
	client := anthropic.NewClient(opts...)
	m := anthropic.ModelClaudeHaiku4_5
	if model != "" {
		m = anthropic.Model(model)
	}
	return &Client{client: &client, model: m}, nil
}

func (c *Client) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	system := req.System
	if req.Schema != nil {
		b, err := json.Marshal(req.Schema)
		if err != nil {
			return "", fmt.Errorf("anthropic: encode schema: %w", err)
		}
		system += "\n\nRespond only with a JSON object matching this JSON Schema:\n" + string(b)
	}

	var blocks []anthropic.ContentBlockParamUnion
	if req.Image != nil {
		blocks = append(blocks, anthropic.NewImageBlockBase64(req.Image.MIMEType, base64.StdEncoding.EncodeToString(req.Image.Data)))
	}
	blocks = append(blocks, anthropic.NewTextBlock(req.User))

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", ai.ErrEmptyResponse
	}
	return out.String(), nil
}

func classify(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("anthropic API error: %v: %w", err, ai.ErrQuotaExceeded)
		case http.StatusServiceUnavailable, statusOverloaded:
			return fmt.Errorf("anthropic API error: %v: %w", err, ai.ErrOverloaded)
		}
	}
	return fmt.Errorf("anthropic API error: %w", err)
}
