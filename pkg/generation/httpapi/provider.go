package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-thinkspace-be/pkg/generation"
)

// HTTPProvider calls the generation endpoint over HTTP POST with a JSON body.
type HTTPProvider struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

// Ensure HTTPProvider implements Provider
var _ generation.Provider = &HTTPProvider{}

func NewHTTPProvider(baseURL, apiKey, model string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &HTTPProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Wire structs (internal to this package) ---

type generateRequest struct {
	Model string `json:"model,omitempty"`
	*generation.Request
}

func (p *HTTPProvider) Generate(ctx context.Context, genReq *generation.Request, opts ...generation.Option) (*generation.Response, error) {
	options := &generation.Options{}
	for _, opt := range opts {
		opt(options)
	}

	model := p.Model
	if options.Model != "" {
		model = options.Model
	}

	payloadBytes, err := json.Marshal(generateRequest{
		Model:   model,
		Request: genReq,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := p.BaseURL + "/v1/generate"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.APIKey)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("generation error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var genResp generation.Response
	if err := json.Unmarshal(bodyBytes, &genResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &genResp, nil
}
