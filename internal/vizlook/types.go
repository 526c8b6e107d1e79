package vizlook

import "github.com/Vizlook/youtube-search/internal/core/model"

// searchRequest is the body of POST /search. Empty constraints are omitted, never sent as "".
type searchRequest struct {
	Query                string `json:"query"`
	ContainSpokenText    string `json:"containSpokenText,omitempty"`
	ContainScreenText    string `json:"containScreenText,omitempty"`
	MaxResults           int    `json:"maxResults"`
	IncludeTranscription bool   `json:"includeTranscription"`
	IncludeSummary       bool   `json:"includeSummary"`
}

type searchResponse struct {
	Results []model.ResultItem `json:"results"`
}

func newSearchRequest(q model.ProviderQuery) searchRequest {
	return searchRequest{
		Query:                q.Query,
		ContainSpokenText:    q.ContainSpokenText,
		ContainScreenText:    q.ContainScreenText,
		MaxResults:           q.MaxResults,
		IncludeTranscription: q.IncludeTranscription,
		IncludeSummary:       q.IncludeSummary,
	}
}
