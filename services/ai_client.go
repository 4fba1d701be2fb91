package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	log "github.com/sirupsen/logrus"
)

const maxAIResponseBytes = 4 << 20

// Completer turns a prompt into generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerativeClient calls a generateContent-style endpoint once per prompt.
// There are no retries; each call is bounded by timeout and by ctx.
type GenerativeClient struct {
	endpoint string
	apiKey   string
	timeout  time.Duration
	http     *http.Client
	logger   *log.Logger
}

func NewGenerativeClient(endpoint, apiKey string, timeout time.Duration, httpClient *http.Client, logger *log.Logger) *GenerativeClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &GenerativeClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		timeout:  timeout,
		http:     httpClient,
		logger:   logger,
	}
}

func (c *GenerativeClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target, err := c.requestURL()
	if err != nil {
		return "", err
	}
	payload, err := sonic.Marshal(generateRequest{Contents: []content{{Parts: []part{{Text: prompt}}}}})
	if err != nil {
		return "", fmt.Errorf("encode ai request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build ai request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("call ai endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAIResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read ai response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WithFields(log.Fields{
			"status": resp.StatusCode,
			"body":   string(body),
		}).Error("ai endpoint returned an error")
		return "", &UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	return extractText(body)
}

func (c *GenerativeClient) requestURL() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse ai endpoint: %w", err)
	}
	if c.apiKey != "" {
		q := u.Query()
		q.Set("key", c.apiKey)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// extractText returns candidates[0].content.parts[0].text.
func extractText(body []byte) (string, error) {
	var decoded generateResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAIResponseMalformed, err)
	}
	if len(decoded.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrAIResponseMalformed)
	}
	parts := decoded.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == nil {
		return "", fmt.Errorf("%w: missing candidates[0].content.parts[0].text", ErrAIResponseMalformed)
	}
	return *parts[0].Text, nil
}
