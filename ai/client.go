// ABOUTME: Gemini client wrapper for all AI-assisted features
// ABOUTME: Centralizes model selection, JSON response mode, and error shaping
package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is used for all text generation unless overridden.
const DefaultModel = "gemini-2.5-flash"

// ErrNotConfigured is returned when no API key is available.
var ErrNotConfigured = errors.New("ai: no API key configured")

// ErrEmptyResponse is returned when the model produces no usable text.
var ErrEmptyResponse = errors.New("ai: model returned empty response")

// Client wraps the Gemini API for the application's AI features.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient creates an AI client. An empty API key yields ErrNotConfigured
// so callers can distinguish "not set up" from a transport failure.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{genai: client, model: DefaultModel}, nil
}

// SetModel overrides the generation model.
func (c *Client) SetModel(model string) {
	c.model = model
}

// generateText runs a plain text generation request.
func (c *Client) generateText(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	return resp, nil
}

// generateJSON runs a request in JSON response mode and decodes the reply
// strictly into out. A transport failure and a malformed reply surface as
// different error types.
func (c *Client) generateJSON(ctx context.Context, prompt string, out any) error {
	resp, err := c.generateText(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return err
	}

	text := resp.Text()
	if text == "" {
		return ErrEmptyResponse
	}

	if err := decodeStrict(text, out); err != nil {
		return &ParseError{Raw: text, Err: err}
	}
	return nil
}
