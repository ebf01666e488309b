package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// SDKClient generates replies through the official Gemini Go SDK. The
// underlying client is created on first use so a missing key only fails
// requests, never startup.
type SDKClient struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

// NewSDKClient constructs an SDKClient; an empty model selects DefaultModel.
func NewSDKClient(apiKey, model string) *SDKClient {
	if model == "" {
		model = DefaultModel
	}
	return &SDKClient{apiKey: apiKey, model: model}
}

func (c *SDKClient) genaiClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	c.client = client
	return client, nil
}

// Generate sends the prompt and returns the first candidate's text.
func (c *SDKClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	client, err := c.genaiClient(ctx)
	if err != nil {
		return "", err
	}

	resp, err := client.GenerativeModel(c.model).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			return "", &UpstreamError{StatusCode: gerr.Code, Body: gerr.Message}
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return NoResponse, nil
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok || text == "" {
		return NoResponse, nil
	}
	return string(text), nil
}

// Close releases the underlying client, if one was created.
func (c *SDKClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}
