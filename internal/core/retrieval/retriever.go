package retrieval

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Vizlook/youtube-search/internal/core/model"
	"github.com/Vizlook/youtube-search/internal/logger"
)

// Provider is a semantic video search backend. Implementations must be safe for concurrent use
// and report quota exhaustion with apperr.RateLimited.
type Provider interface {
	Search(ctx context.Context, q model.ProviderQuery) ([]model.ResultItem, error)
}

type Retriever struct {
	Provider   Provider
	MaxResults int
	Logger     logrus.FieldLogger
}

func NewRetriever(provider Provider, maxResults int, log logrus.FieldLogger) *Retriever {
	return &Retriever{
		Provider:   provider,
		MaxResults: maxResults,
		Logger:     log,
	}
}

// Search runs one provider call. Empty hints are left out of the query rather than sent as "".
func (r *Retriever) Search(ctx context.Context, query string, intent model.ExtractedIntent) ([]model.ResultItem, error) {
	log := logger.FromContext(ctx, r.Logger).WithField("stage", "retrieval")

	q := model.ProviderQuery{
		Query:                query,
		ContainSpokenText:    intent.VoiceText,
		ContainScreenText:    intent.ScreenText,
		MaxResults:           r.MaxResults,
		IncludeTranscription: true,
		IncludeSummary:       true,
	}

	items, err := r.Provider.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}

	results := normalize(items, log)
	log.WithFields(logrus.Fields{
		"received": len(items),
		"kept":     len(results),
	}).Debug("retrieval complete")

	return results, nil
}

// normalize keeps provider order, drops repeated urls after the first and rejects
// items that break the result contract.
func normalize(items []model.ResultItem, log logrus.FieldLogger) []model.ResultItem {
	results := make([]model.ResultItem, 0, len(items))
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		if err := item.Validate(); err != nil {
			log.WithField("url", item.URL).WithError(err).Warn("rejecting search result")
			continue
		}
		if seen[item.URL] {
			log.WithField("url", item.URL).Warn("rejecting duplicate search result")
			continue
		}
		seen[item.URL] = true
		results = append(results, item)
	}
	return results
}
