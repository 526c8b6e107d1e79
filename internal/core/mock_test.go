package core

import (
	"context"
	"strings"
	"sync"

	"github.com/Vizlook/youtube-search/internal/core/model"
	"github.com/Vizlook/youtube-search/internal/llm"
)

// MockLLM answers extraction and answer prompts separately so tests can tell the stages apart.
type MockLLM struct {
	mu sync.Mutex

	ExtractionResponse string
	ExtractionErr      error
	AnswerResponse     string
	AnswerErr          error

	ExtractionCalls int
	AnswerCalls     int
}

func (m *MockLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.HasPrefix(prompt, "## 1. CORE DIRECTIVE") {
		m.AnswerCalls++
		return m.AnswerResponse, m.AnswerErr
	}
	m.ExtractionCalls++
	return m.ExtractionResponse, m.ExtractionErr
}

type MockProvider struct {
	Results []model.ResultItem
	Err     error

	Calls   int
	Queries []model.ProviderQuery
}

func (m *MockProvider) Search(ctx context.Context, q model.ProviderQuery) ([]model.ResultItem, error) {
	m.Calls++
	m.Queries = append(m.Queries, q)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}
