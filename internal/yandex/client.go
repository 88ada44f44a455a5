// Package yandex talks to the Yandex Cloud AI services: the Foundation
// Models completion API for text generation and SpeechKit for speech
// recognition. The Gateway on top of the raw client converts every
// failure into a typed safe default, so callers never see an error.
package yandex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default service endpoints. Overridable for tests.
const (
	DefaultGPTEndpoint = "https://llm.api.cloud.yandex.net/foundationModels/v1/completion"
	DefaultSTTEndpoint = "https://stt.api.cloud.yandex.net/speech/v1/stt:recognize"
)

// Speech recognition parameters: Russian speech, Telegram voice notes
// (OGG/Opus), general domain.
const (
	sttLanguage = "ru-RU"
	sttFormat   = "oggopus"
	sttTopic    = "general"
)

// ── Wire types ───────────────────────────────────────────────────

type completionRequest struct {
	ModelURI          string            `json:"modelUri"`
	CompletionOptions completionOptions `json:"completionOptions"`
	Messages          []message         `json:"messages"`
}

type completionOptions struct {
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

type message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type completionResponse struct {
	Result struct {
		Alternatives []struct {
			Message struct {
				Role string `json:"role"`
				Text string `json:"text"`
			} `json:"message"`
		} `json:"alternatives"`
	} `json:"result"`
}

type sttResponse struct {
	Result string `json:"result"`
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithGPTEndpoint overrides the completion endpoint (tests).
func WithGPTEndpoint(u string) ClientOption {
	return func(c *Client) { c.gptEndpoint = u }
}

// WithSTTEndpoint overrides the recognition endpoint (tests).
func WithSTTEndpoint(u string) ClientOption {
	return func(c *Client) { c.sttEndpoint = u }
}

// WithMaxTokens sets the response token limit.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) { c.maxTokens = n }
}

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// Client is a low-level caller of the Yandex completion and recognition
// APIs. It is stateless and safe for concurrent use.
type Client struct {
	gptEndpoint string
	sttEndpoint string
	apiKey      string
	folderID    string
	maxTokens   int
	http        *http.Client
	log         *zap.SugaredLogger
}

// NewClient creates a Yandex AI client authenticated with an API key.
// folderID selects the cloud folder owning the model.
func NewClient(apiKey, folderID string, log *zap.SugaredLogger, opts ...ClientOption) *Client {
	c := &Client{
		gptEndpoint: DefaultGPTEndpoint,
		sttEndpoint: DefaultSTTEndpoint,
		apiKey:      apiKey,
		folderID:    folderID,
		maxTokens:   1500,
		http:        &http.Client{Timeout: 60 * time.Second},
		log:         log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Complete sends a system instruction and a user turn to the completion
// API and returns the model's text reply.
func (c *Client) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	body := completionRequest{
		ModelURI: fmt.Sprintf("gpt://%s/yandexgpt/latest", c.folderID),
		CompletionOptions: completionOptions{
			Stream:      false,
			Temperature: temperature,
			MaxTokens:   c.maxTokens,
		},
		Messages: []message{
			{Role: "system", Text: system},
			{Role: "user", Text: user},
		},
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("yandex: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gptEndpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("yandex: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)
	req.Header.Set("x-folder-id", c.folderID)
	req.Header.Set("x-client-request-id", uuid.NewString())

	c.log.Debugf("yandex: POST %s (%d bytes)", c.gptEndpoint, len(jsonData))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("yandex: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("yandex: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("yandex: API %s: %s", resp.Status, string(respBody))
	}

	var result completionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("yandex: unmarshal response: %w", err)
	}

	if len(result.Result.Alternatives) == 0 {
		return "", fmt.Errorf("yandex: empty response (no alternatives)")
	}

	reply := result.Result.Alternatives[0].Message.Text
	c.log.Debugf("yandex: reply (%d chars): %s", len(reply), truncate(reply, 120))
	return reply, nil
}

// Transcribe sends raw voice audio to SpeechKit and returns the
// recognized text.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	q := url.Values{}
	q.Set("lang", sttLanguage)
	q.Set("format", sttFormat)
	q.Set("topic", sttTopic)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sttEndpoint+"?"+q.Encode(), bytes.NewReader(audio))
	if err != nil {
		return "", fmt.Errorf("yandex: create stt request: %w", err)
	}
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)
	req.Header.Set("x-client-request-id", uuid.NewString())

	c.log.Debugf("yandex: stt POST %s (%d bytes)", c.sttEndpoint, len(audio))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("yandex: stt request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("yandex: read stt response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("yandex: stt API %s: %s", resp.Status, string(respBody))
	}

	var result sttResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("yandex: unmarshal stt response: %w", err)
	}

	return result.Result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
