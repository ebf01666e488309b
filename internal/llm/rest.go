package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"

	httpTimeout  = 30 * time.Second
	maxErrorBody = 4 << 10
)

// RESTClient calls the Gemini generateContent endpoint over plain HTTP.
type RESTClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewRESTClient constructs a RESTClient against the public endpoint.
func NewRESTClient(apiKey, model string) *RESTClient {
	return NewRESTClientWithURL(DefaultBaseURL, apiKey, model)
}

// NewRESTClientWithURL constructs a RESTClient pointing at a custom base URL (for tests).
func NewRESTClientWithURL(baseURL, apiKey, model string) *RESTClient {
	if model == "" {
		model = DefaultModel
	}
	return &RESTClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: httpTimeout},
	}
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
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt as a single text part and returns the first
// candidate's first part, or NoResponse when there is none.
func (c *RESTClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("encoding generate request: %w", err)
	}

	endpoint := c.baseURL + "/models/" + url.PathEscape(c.model) + ":generateContent?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		// The URL carries the key; keep it out of the error.
		return "", fmt.Errorf("POST generateContent for model %s: %w", c.model, unwrapURLError(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding generate response: %v", ErrMalformedResponse, err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 || out.Candidates[0].Content.Parts[0].Text == "" {
		return NoResponse, nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
