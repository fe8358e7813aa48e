package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/bryanwahyu/leadscope/internal/domain/ai"
)

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "  ", "")
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		transient bool
		want      error
	}{
		{"quota", genai.APIError{Code: 429, Message: "quota"}, true, ai.ErrQuotaExceeded},
		{"unavailable", genai.APIError{Code: 503, Message: "try later"}, true, ai.ErrOverloaded},
		{"overloaded message", genai.APIError{Code: 500, Message: "The model is overloaded"}, true, ai.ErrOverloaded},
		{"bad request", genai.APIError{Code: 400, Message: "invalid argument"}, false, nil},
		{"plain 429 text", errors.New("status 429 Too Many Requests"), true, ai.ErrQuotaExceeded},
		{"network", errors.New("connection reset"), false, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			assert.Equal(t, tc.transient, ai.IsTransient(got))
			if tc.want != nil {
				assert.ErrorIs(t, got, tc.want)
			}
		})
	}
}
