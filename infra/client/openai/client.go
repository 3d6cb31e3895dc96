package openai

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"seedsynth/entities"
)

const (
	completionsPath = "/chat/completions"
	// ответ с ошибкой обрезаем, чтобы не заспамить лог
	maxErrorBody = 2048
	// используется, если в запросе не задан таймаут
	defaultTimeout = time.Minute
)

// Client - клиент к OpenAI совместимому chat completions API со structured outputs.
// Каждый запрос делается ровно один раз, повторов нет
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func New(baseURL, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) Complete(ctx context.Context, req entities.ModelRequest) (entities.ModelResponse, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := sonic.Marshal(chatRequest{
		Model:       c.model,
		Temperature: req.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		ResponseFormat: responseFormat{
			Type: "json_schema",
			JSONSchema: jsonSchema{
				Name:   req.Schema.Name,
				Strict: true,
				Schema: req.Schema.Schema,
			},
		},
	})
	if err != nil {
		return entities.ModelResponse{}, errors.Wrapf(err, "failed to marshal %s request", req.Name)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return entities.ModelResponse{}, errors.Wrapf(err, "failed to build %s request", req.Name)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(ctx, err) {
			return entities.ModelResponse{}, errors.Wrapf(entities.ErrCollaboratorTimeout, "%s after %s", req.Name, timeout)
		}
		return entities.ModelResponse{}, errors.Wrapf(err, "%s request failed", req.Name)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(ctx, err) {
			return entities.ModelResponse{}, errors.Wrapf(entities.ErrCollaboratorTimeout, "%s after %s", req.Name, timeout)
		}
		return entities.ModelResponse{}, errors.Wrapf(err, "failed to read %s response", req.Name)
	}
	if resp.StatusCode/100 != 2 {
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		return entities.ModelResponse{}, errors.Errorf("%s: model api returned %s: %s", req.Name, resp.Status, raw)
	}

	out := chatResponse{}
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return entities.ModelResponse{}, errors.Wrapf(err, "failed to unmarshal %s response", req.Name)
	}
	if out.Error != nil {
		return entities.ModelResponse{}, errors.Errorf("%s: model api error %s: %s", req.Name, out.Error.Type, out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return entities.ModelResponse{}, errors.Errorf("%s: model returned no choices", req.Name)
	}
	msg := out.Choices[0].Message
	if msg.Refusal != nil && *msg.Refusal != "" {
		return entities.ModelResponse{}, errors.Errorf("%s: model refused: %s", req.Name, *msg.Refusal)
	}
	if msg.Content == nil {
		return entities.ModelResponse{}, errors.Errorf("%s: model returned empty content (finish_reason=%s)", req.Name, out.Choices[0].FinishReason)
	}

	model := out.Model
	if model == "" {
		model = c.model
	}
	return entities.ModelResponse{
		Model:   model,
		Content: strings.TrimLeft(*msg.Content, "\n"),
	}, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
