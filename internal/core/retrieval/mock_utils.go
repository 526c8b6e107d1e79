package retrieval

import (
	"context"

	"github.com/Vizlook/youtube-search/internal/core/model"
)

type MockProvider struct {
	Results []model.ResultItem
	Err     error

	Calls     int
	LastQuery model.ProviderQuery
}

func (m *MockProvider) Search(ctx context.Context, q model.ProviderQuery) ([]model.ResultItem, error) {
	m.Calls++
	m.LastQuery = q
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}
