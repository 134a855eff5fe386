// Package smartsort calls an external OpenAI-compatible chat-completions
// endpoint to classify bookmark text into folder categories. The provider's
// reply is untrusted: anything that does not parse into the expected
// strict-JSON shape is rejected rather than passed downstream.
package smartsort

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/natekim416/tuckserver/internal/common"
)

const defaultTimeout = 30 * time.Second

const systemPrompt = `You are a smart filing assistant. Analyze the input text/URL and categorize it.

Rules:
1. Extract relevant TOPICS as folders.
2. Identify DEADLINES (format: YYYY-MM-DD).
3. Identify PRICE if present (number only).
4. Return STRICT JSON with keys: folders (array of strings), deadline (string or null), price (number or null).`

// Result is the typed classification outcome. Only Folders[0] is consumed
// by the folder resolver; the rest is informational output for the caller.
type Result struct {
	Folders  []string `json:"folders"`
	Deadline *string  `json:"deadline"`
	Price    *float64 `json:"price"`
}

// Client talks to one chat-completions endpoint with one credential and
// model. It is read-only after construction and safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient constructs a Client for the given endpoint. The transport-level
// timeout lives here: the core contract has no internal deadline, so the
// client imposes one and reports exceeding it as upstream-unavailable.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
	}
}

type chatRequest struct {
	Model          string         `json:"model"`
	ResponseFormat responseFormat `json:"response_format"`
	Messages       []chatMessage  `json:"messages"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChoice struct {
	Message struct {
		Content *string `json:"content"`
	} `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// Classify sends text to the provider and parses the reply into a Result.
// userExamples, when non-empty, is appended to the system prompt so the
// provider prefers reusing the caller's existing categories over inventing
// near-duplicates.
//
// Transport failures, timeouts and non-success statuses report
// common.ErrUpstreamUnavailable; replies that do not parse into the
// expected shape report common.ErrUpstreamBadResponse. Neither is retried.
func (c *Client) Classify(ctx context.Context, text, userExamples string) (*Result, error) {
	prompt := systemPrompt
	if userExamples != "" {
		prompt += "\n\nHere is how the user previously organized similar items:\n" + userExamples
	}

	body, err := json.Marshal(chatRequest{
		Model:          c.model,
		ResponseFormat: responseFormat{Type: "json_object"},
		Messages: []chatMessage{
			{Role: "system", Content: prompt},
			{Role: "user", Content: text},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for the log line; the caller only
		// sees the sentinel.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status=%d body=%s", common.ErrUpstreamUnavailable, resp.StatusCode, snippet)
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUpstreamBadResponse, err)
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message.Content == nil {
		return nil, fmt.Errorf("%w: missing completion content", common.ErrUpstreamBadResponse)
	}

	var result Result
	if err := json.Unmarshal([]byte(*decoded.Choices[0].Message.Content), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUpstreamBadResponse, err)
	}

	return &result, nil
}
