package ai

import "context"

// Image is an inline image attached to a completion request.
type Image struct {
	Data     []byte
	MIMEType string
}

// CompletionRequest is one structured-output call.
// Schema is a JSON Schema object; when set the provider is asked for JSON that conforms to it.
type CompletionRequest struct {
	System string
	User   string
	Schema map[string]any
	Image  *Image
}

// Client port (interface untuk provider model bahasa)
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ImageFetcher downloads an image and reports its content type.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}
