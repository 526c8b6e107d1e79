package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vizlook/youtube-search/internal/apperr"
	"github.com/Vizlook/youtube-search/internal/config"
	"github.com/Vizlook/youtube-search/internal/core/citation"
	"github.com/Vizlook/youtube-search/internal/core/model"
	"github.com/Vizlook/youtube-search/internal/logger"
)

const noHints = `{"voice_text": "", "screen_text": ""}`

func testResults() []model.ResultItem {
	return []model.ResultItem{
		{URL: "https://www.youtube.com/watch?v=a", Title: "A", Author: model.Author{Name: "Alice"}, Duration: 100,
			Highlights: []model.Highlight{{StartTime: 10, EndTime: 20}}},
		{URL: "https://www.youtube.com/watch?v=b", Title: "B", Author: model.Author{Name: "Bob"}, Duration: 200},
	}
}

func newTestPipeline(m *MockLLM, p *MockProvider) *Pipeline {
	return NewPipeline(m, p, config.Default(), logger.Discard())
}

func TestRun_SearchModeHasNoAnswer(t *testing.T) {
	m := &MockLLM{ExtractionResponse: noHints}
	p := &MockProvider{Results: testResults()}

	resp, err := newTestPipeline(m, p).Run(context.Background(), model.Request{Query: "cats", Mode: model.ModeSearch})

	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)
	assert.Nil(t, resp.Answer)
	assert.Equal(t, 1, m.ExtractionCalls)
	assert.Zero(t, m.AnswerCalls)
}

func TestRun_AnswerModeWithoutResults(t *testing.T) {
	m := &MockLLM{ExtractionResponse: noHints, AnswerResponse: "should not be used"}
	p := &MockProvider{Results: []model.ResultItem{}}

	resp, err := newTestPipeline(m, p).Run(context.Background(), model.Request{Query: "nothing", Mode: model.ModeAnswer})

	require.NoError(t, err)
	require.NotNil(t, resp.Answer)
	assert.Equal(t, "No results.", *resp.Answer)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Zero(t, m.AnswerCalls)
}

func TestRun_AnswerCitationsResolveToResults(t *testing.T) {
	m := &MockLLM{
		ExtractionResponse: noHints,
		AnswerResponse: "Cats nap a lot. ([Alice](https://www.youtube.com/watch?v=a), [Bob](https://www.youtube.com/watch?v=b)) " +
			"Learn more at [the wiki](https://en.wikipedia.org/wiki/Cat).",
	}
	p := &MockProvider{Results: testResults()}

	resp, err := newTestPipeline(m, p).Run(context.Background(), model.Request{Query: "Why do cats sleep?", Mode: model.ModeAnswer})
	require.NoError(t, err)
	require.NotNil(t, resp.Answer)

	links := citation.Resolve(*resp.Answer, resp.Results)
	require.Len(t, links, 3)
	for _, l := range citation.Citations(links) {
		found := false
		for _, r := range resp.Results {
			if r.URL == l.Href {
				found = true
			}
		}
		assert.True(t, found, l.Href)
		assert.Equal(t, l.Href, l.Result.URL)
	}
	assert.Equal(t, citation.External, links[2].Kind)
}

func TestRun_DegradedExtractionStillRetrieves(t *testing.T) {
	m := &MockLLM{ExtractionResponse: "Sorry, I cannot help with that."}
	p := &MockProvider{Results: testResults()}

	resp, err := newTestPipeline(m, p).Run(context.Background(), model.Request{Query: "  cats  ", Mode: model.ModeSearch})

	require.NoError(t, err)
	assert.Len(t, resp.Results, 2)
	require.Len(t, p.Queries, 1)
	assert.Equal(t, "cats", p.Queries[0].Query)
	assert.Empty(t, p.Queries[0].ContainSpokenText)
	assert.Empty(t, p.Queries[0].ContainScreenText)
}

func TestRun_HintsReachProvider(t *testing.T) {
	m := &MockLLM{ExtractionResponse: `{"voice_text": "welcome", "screen_text": "Hello"}`}
	p := &MockProvider{Results: []model.ResultItem{}}

	_, err := newTestPipeline(m, p).Run(context.Background(), model.Request{
		Query: "the speaker says 'welcome' and the screen shows 'Hello'",
		Mode:  model.ModeSearch,
	})

	require.NoError(t, err)
	assert.Equal(t, "welcome", p.Queries[0].ContainSpokenText)
	assert.Equal(t, "Hello", p.Queries[0].ContainScreenText)
	assert.Equal(t, 6, p.Queries[0].MaxResults)
	assert.True(t, p.Queries[0].IncludeTranscription)
	assert.True(t, p.Queries[0].IncludeSummary)
}

func TestRun_InvalidRequestMakesNoCalls(t *testing.T) {
	m := &MockLLM{}
	p := &MockProvider{}
	pl := newTestPipeline(m, p)

	for _, req := range []model.Request{
		{Query: "", Mode: model.ModeSearch},
		{Query: " \t ", Mode: model.ModeAnswer},
		{Query: "cats", Mode: "Summarize"},
	} {
		_, err := pl.Run(context.Background(), req)
		assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
	}
	assert.Zero(t, m.ExtractionCalls)
	assert.Zero(t, p.Calls)
}

func TestRun_RateLimitedFromProvider(t *testing.T) {
	m := &MockLLM{ExtractionResponse: noHints}
	p := &MockProvider{Err: apperr.RateLimited(errors.New("vizlook returned HTTP 429"))}

	_, err := newTestPipeline(m, p).Run(context.Background(), model.Request{Query: "cats", Mode: model.ModeAnswer})

	require.Error(t, err)
	assert.True(t, apperr.IsRateLimited(err))
	assert.Equal(t, 429, apperr.HTTPStatus(err))
	assert.Zero(t, m.AnswerCalls)
}

func TestRun_UpstreamFailureFromLLM(t *testing.T) {
	m := &MockLLM{ExtractionErr: apperr.Upstream(errors.New("gemini: 503"))}
	p := &MockProvider{}

	_, err := newTestPipeline(m, p).Run(context.Background(), model.Request{Query: "cats", Mode: model.ModeSearch})

	require.Error(t, err)
	assert.False(t, apperr.IsRateLimited(err))
	assert.Equal(t, 500, apperr.HTTPStatus(err))
	assert.Zero(t, p.Calls)
}

func TestRun_AnswerErrorFails(t *testing.T) {
	m := &MockLLM{ExtractionResponse: noHints, AnswerErr: apperr.RateLimited(errors.New("quota"))}
	p := &MockProvider{Results: testResults()}

	_, err := newTestPipeline(m, p).Run(context.Background(), model.Request{Query: "cats", Mode: model.ModeAnswer})

	assert.True(t, apperr.IsRateLimited(err))
}
