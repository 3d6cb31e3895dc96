package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seedsynth/entities"
)

func typesRequest() entities.ModelRequest {
	return entities.ModelRequest{
		Name:         "types",
		SystemPrompt: "You are a helpful assistant.",
		UserPrompt:   "For the SSH protocol, all client request message types are:",
		Temperature:  0.1,
		Schema: entities.ResponseSchema{
			Name:   "protocol_types",
			Schema: map[string]any{"type": "object"},
		},
		Timeout: time.Second,
	}
}

func TestCompleteSendsStructuredRequest(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, completionsPath, r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, sonic.Unmarshal(body, &got))

		_, _ = io.WriteString(w, `{"model":"gpt-4o-mini-2024","choices":[{"message":{"content":"\n{\"protocol_type_list\":[\"SSH_MSG_KEXINIT\"]}"},"finish_reason":"stop"}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL+"/", "secret", "gpt-4o-mini")
	resp, err := c.Complete(context.Background(), typesRequest())
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini-2024", resp.Model)
	assert.Equal(t, `{"protocol_type_list":["SSH_MSG_KEXINIT"]}`, resp.Content)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, 0.1, got.Temperature)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "json_schema", got.ResponseFormat.Type)
	assert.True(t, got.ResponseFormat.JSONSchema.Strict)
	assert.Equal(t, "protocol_types", got.ResponseFormat.JSONSchema.Name)
}

func TestCompleteTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	req := typesRequest()
	req.Timeout = 50 * time.Millisecond

	_, err := New(srv.URL, "", "gpt-4o-mini").Complete(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrCollaboratorTimeout))
}

func TestCompleteFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http error", status: http.StatusTooManyRequests, body: `{"error":{"message":"slow down"}}`},
		{name: "api error", status: http.StatusOK, body: `{"error":{"message":"bad schema","type":"invalid_request_error"}}`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "refusal", status: http.StatusOK, body: `{"choices":[{"message":{"refusal":"no"}}]}`},
		{name: "null content", status: http.StatusOK, body: `{"choices":[{"message":{},"finish_reason":"length"}]}`},
		{name: "garbage", status: http.StatusOK, body: `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL, "", "gpt-4o-mini").Complete(context.Background(), typesRequest())
			require.Error(t, err)
			assert.False(t, errors.Is(err, entities.ErrCollaboratorTimeout))
		})
	}
}
