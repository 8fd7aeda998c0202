// Package ollama talks to a local Ollama server through its chat endpoint.
package ollama

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/chat-calendar/internal/model"
	"github.com/go-resty/resty/v2"
)

const chatPath = "/api/chat"

type Client struct {
	http  *resty.Client
	model string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewClient(baseURL, modelName string, timeout time.Duration) *Client {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}

	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
		model: modelName,
	}
}

// Invoke sends the system prompt, the prior turns and input as one
// non-streaming chat request and returns the reply text.
func (c *Client) Invoke(ctx context.Context, systemPrompt string, history []model.Message, input string) (string, error) {
	messages := make([]chatMessage, 0, len(history)+2)
	messages = append(messages, chatMessage{Role: string(model.RoleSystem), Content: systemPrompt})
	for _, m := range history {
		messages = append(messages, chatMessage{Role: string(m.Role), Content: m.Content})
	}
	messages = append(messages, chatMessage{Role: string(model.RoleUser), Content: input})

	var out chatResponse
	var errOut errorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(&chatRequest{Model: c.model, Messages: messages}).
		SetResult(&out).
		SetError(&errOut).
		Post(chatPath)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}

	if resp.IsError() {
		if errOut.Error != "" {
			return "", fmt.Errorf("ollama status %d: %s", resp.StatusCode(), errOut.Error)
		}
		return "", fmt.Errorf("ollama status %d", resp.StatusCode())
	}

	if out.Message.Content == "" {
		return "", errors.New("ollama returned an empty message")
	}

	return out.Message.Content, nil
}
