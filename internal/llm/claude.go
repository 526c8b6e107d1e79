package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/Vizlook/youtube-search/internal/apperr"
)

// claudeDefaultMaxTokens is required by the Messages API when the caller sets none.
const claudeDefaultMaxTokens = 1000

type ClaudeClient struct {
	client *anthropic.Client
	model  string
}

func NewClaudeClient(apiKey string, model string, baseURL string) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	client := anthropic.NewClient(apiKey, opts...)

	return &ClaudeClient{
		client: client,
		model:  model,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	o := NewOptions(opts...)

	maxTokens := o.MaxTokens
	if maxTokens <= 0 {
		maxTokens = claudeDefaultMaxTokens
	}

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(prompt),
				},
			},
		},
		MaxTokens:   maxTokens,
		Temperature: o.Temperature,
	})
	if err != nil {
		return "", classifyClaude(err)
	}

	var sb strings.Builder
	for _, content := range resp.Content {
		if content.Text != nil {
			sb.WriteString(*content.Text)
		}
	}
	if sb.Len() == 0 && len(resp.Content) == 0 {
		return "", apperr.Upstream(errors.New("claude: no response content"))
	}
	return sb.String(), nil
}
