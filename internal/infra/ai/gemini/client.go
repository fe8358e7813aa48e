package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/bryanwahyu/leadscope/internal/domain/ai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

type Client struct {
	genai *genai.Client
	Model string
}

// NewClient fails when apiKey is empty so a misconfigured process stops at startup.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{genai: gc, Model: model}, nil
}

func (c *Client) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	var parts []*genai.Part
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
	}
	parts = append(parts, genai.NewPartFromText(req.User))
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	cfg := &genai.GenerateContentConfig{}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseJsonSchema = req.Schema
	}

	resp, err := c.genai.Models.GenerateContent(ctx, c.Model, contents, cfg)
	if err != nil {
		return "", classify(err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ai.ErrEmptyResponse
	}
	return text, nil
}

// classify maps provider failures onto the ai error taxonomy.
func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("gemini: %s: %w", apiErr.Message, ai.ErrQuotaExceeded)
		case apiErr.Code == http.StatusServiceUnavailable,
			strings.Contains(strings.ToLower(apiErr.Message), "overloaded"):
			return fmt.Errorf("gemini: %s: %w", apiErr.Message, ai.ErrOverloaded)
		}
		return fmt.Errorf("gemini: %w", err)
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"), strings.Contains(msg, "resource_exhausted"):
		return fmt.Errorf("gemini: %v: %w", err, ai.ErrQuotaExceeded)
	case strings.Contains(msg, "503"), strings.Contains(msg, "overloaded"):
		return fmt.Errorf("gemini: %v: %w", err, ai.ErrOverloaded)
	}
	return fmt.Errorf("gemini: %w", err)
}
