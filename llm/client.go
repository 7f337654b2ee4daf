/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package llm wraps the Ollama server behind typed ports for the three
// calls the pipeline makes: structured test extraction, test-name
// identity matching, and plain-language explanation generation. Every
// transport failure, timeout, and malformed response degrades to an
// empty result at the port boundary; callers never see an LLM error as
// anything other than "no information".
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Default timeouts and acceptance threshold. Extraction reads a whole
// page and is given the long timeout; matching and explanation prompts
// are short.
const (
	DefaultExtractTimeout = 300 * time.Second
	DefaultMatchTimeout   = 120 * time.Second
	DefaultMatchThreshold = 0.9
)

// Config holds the Ollama server configuration and pipeline tuning.
type Config struct {
	URL   string
	Model string

	// ExtractTimeout bounds the per-page extraction call.
	ExtractTimeout time.Duration
	// MatchTimeout bounds matching and explanation calls.
	MatchTimeout time.Duration
	// MatchThreshold is the minimum confidence at which an identity
	// match is accepted. Below it, the match is discarded.
	MatchThreshold float64
}

// LoadConfig loads Ollama configuration from environment variables.
func LoadConfig() (*Config, error) {
	url := os.Getenv("OLLAMA_URL")
	model := os.Getenv("OLLAMA_MODEL")

	if url == "" || model == "" {
		return nil, ErrConfigIncomplete
	}

	return &Config{
		URL:   url,
		Model: model,
	}, nil
}

// Client is an Ollama chat-completions client.
type Client struct {
	config Config
}

// NewClient returns a client with zero config fields replaced by
// defaults.
func NewClient(config *Config) *Client {
	c := *config
	if c.ExtractTimeout == 0 {
		c.ExtractTimeout = DefaultExtractTimeout
	}
	if c.MatchTimeout == 0 {
		c.MatchTimeout = DefaultMatchTimeout
	}
	if c.MatchThreshold == 0 {
		c.MatchThreshold = DefaultMatchThreshold
	}
	return &Client{config: c}
}

// OpenAI-compatible request/response structures
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// chatCompletion makes a single non-streaming request to Ollama's
// OpenAI-compatible endpoint and returns the assistant message content.
func (c *Client) chatCompletion(ctx context.Context, system, user string, timeout time.Duration) (string, error) {
	reqBody := chatRequest{
		Model: c.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := strings.TrimSuffix(c.config.URL, "/") + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		Timeout: timeout,
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("Ollama error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// stripFences removes a Markdown code fence around a JSON payload.
// Models instructed to output JSON only still fence it occasionally.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
