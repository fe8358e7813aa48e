package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/leadscope/internal/domain/ai"
)

const maxTokens = 8192

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

type Client struct {
	*openai.Client
	Model string
}

// NewClient fails when apiKey is empty so a misconfigured process stops at startup.
// baseURL is optional and points the client at a compatible endpoint.
func NewClient(apiKey, model, baseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai: api key is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}, nil
}

// schema adapts a JSON Schema map to json.Marshaler.
type schema map[string]any

func (s schema) MarshalJSON() ([]byte, error) { return json.Marshal(map[string]any(s)) }

func (c *Client) Complete(ctx context.Context, in ai.CompletionRequest) (string, error) {
	model := c.Model
	if model == "" {
		model = DefaultModel
	}

	var messages []openai.ChatCompletionMessage
	if in.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: in.System})
	}
	if in.Image != nil {
		dataURL := fmt.Sprintf("data:%s;base64,%s", in.Image.MIMEType, base64.StdEncoding.EncodeToString(in.Image.Data))
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: in.User},
				{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
			},
		})
	} else {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: in.User})
	}

	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	}
	if in.Schema != nil {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "report",
				Schema: schema(in.Schema),
			},
		}
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ai.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func classify(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	switch status {
	case http.StatusTooManyRequests:
		return fmt.Errorf("failed to create chat completion: %v: %w", err, ai.ErrQuotaExceeded)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("failed to create chat completion: %v: %w", err, ai.ErrOverloaded)
	}
	return fmt.Errorf("failed to create chat completion: %w", err)
}
