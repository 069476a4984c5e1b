package drafts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	dErrors "civiclink/pkg/domain-errors"
)

const defaultGenerationTimeout = 30 * time.Second

// Generator produces a completion from a system and user message pair.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// OpenAIClient talks to an OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

// NewOpenAIClient builds the generation client. The base URL points at
// the API root, e.g. "https://api.openai.com/v1". A non-positive timeout
// falls back to the 30s default.
func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration) *OpenAIClient {
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	return &OpenAIClient{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: 0.3,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Configured reports whether an API key is present.
func (c *OpenAIClient) Configured() bool { return c.apiKey != "" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate implements Generator. An empty completion is a valid empty
// draft, not an error.
func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !c.Configured() {
		return "", dErrors.New(dErrors.CodeUpstreamUnavailable, "drafting is not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "encode generation request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "build generation request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.Is(err, context.DeadlineExceeded) ||
			(errors.As(err, &netErr) && netErr.Timeout()) {
			return "", dErrors.Wrap(err, dErrors.CodeUpstreamTimeout,
				"the drafting service took too long to respond, please try again")
		}
		return "", dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "drafting service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return "", dErrors.New(dErrors.CodeGeneration, "LLM error")
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeGeneration, "decode generation response")
	}
	if len(parsed.Choices) == 0 {
		return "", dErrors.New(dErrors.CodeGeneration, "LLM error")
	}
	return parsed.Choices[0].Message.Content, nil
}
