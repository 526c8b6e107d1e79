package extraction

import (
	"context"

	"github.com/Vizlook/youtube-search/internal/llm"
)

type MockLLMClient struct {
	Response string
	Err      error

	Calls      int
	LastPrompt string
	LastOpts   llm.Options
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	m.Calls++
	m.LastPrompt = prompt
	m.LastOpts = llm.NewOptions(opts...)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
