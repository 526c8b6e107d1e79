package answer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vizlook/youtube-search/internal/apperr"
	"github.com/Vizlook/youtube-search/internal/config"
	"github.com/Vizlook/youtube-search/internal/core/model"
	"github.com/Vizlook/youtube-search/internal/logger"
)

func newTestSynthesizer(m *MockLLMClient) *Synthesizer {
	return NewSynthesizer(m, config.GenerationConfig{Temperature: 0.7, MaxTokens: 2000}, logger.Discard())
}

func sampleResults() []model.ResultItem {
	return []model.ResultItem{
		{
			URL:           "https://www.youtube.com/watch?v=knot1",
			Title:         "Windsor knot in 60 seconds",
			Author:        model.Author{Name: "Dapper Dan"},
			PublishedDate: "2023-05-01",
			Duration:      60,
			Highlights:    []model.Highlight{{StartTime: 3, EndTime: 20}},
			Transcription: &model.Transcription{AudioClips: []model.AudioClip{{StartTime: 0, EndTime: 3, Transcription: "secret transcript"}}},
			Summary:       &model.VideoSummary{OverallSummary: "Shows a full Windsor knot."},
		},
	}
}

func TestSynthesize_EmptyResults(t *testing.T) {
	m := &MockLLMClient{Response: "should not be used"}

	got, err := newTestSynthesizer(m).Synthesize(context.Background(), "how?", nil)

	require.NoError(t, err)
	assert.Equal(t, "No results.", got)
	assert.Zero(t, m.Calls)
}

func TestSynthesize_PromptAndPassThrough(t *testing.T) {
	raw := "  Loop the wide end twice. ([Dapper Dan](https://www.youtube.com/watch?v=knot1))\n"
	m := &MockLLMClient{Response: raw}

	got, err := newTestSynthesizer(m).Synthesize(context.Background(), "How do I tie a Windsor knot?", sampleResults())

	require.NoError(t, err)
	assert.Equal(t, raw, got)

	assert.True(t, strings.HasPrefix(m.LastPrompt, "## 1. CORE DIRECTIVE\n"))
	assert.Contains(t, m.LastPrompt, "Single citation format is `([author.name](videoUrl))`.")
	assert.Contains(t, m.LastPrompt, "QUESTION: How do I tie a Windsor knot?\n\nCONTEXT: [")
	assert.True(t, strings.HasSuffix(m.LastPrompt, "\n\nANSWER:"))
	assert.NotContains(t, m.LastPrompt, "secret transcript")

	require.NotNil(t, m.LastOpts.Temperature)
	assert.Equal(t, float32(0.7), *m.LastOpts.Temperature)
	assert.Equal(t, 2000, m.LastOpts.MaxTokens)
}

func TestBuildContext(t *testing.T) {
	out, err := buildContext(sampleResults())
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)

	src := decoded[0]
	assert.Equal(t, "video", src["contentType"])
	assert.Equal(t, "https://www.youtube.com/watch?v=knot1", src["videoUrl"])
	assert.Equal(t, "Dapper Dan", src["author"].(map[string]any)["name"])
	assert.Len(t, src["highlightVideoClips"], 1)
	assert.Contains(t, src, "videoSummary")
	assert.NotContains(t, src, "transcription")
}

func TestSynthesize_EmptyCompletionIsReturned(t *testing.T) {
	m := &MockLLMClient{Response: ""}

	got, err := newTestSynthesizer(m).Synthesize(context.Background(), "q", sampleResults())

	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestSynthesize_PropagatesLLMErrors(t *testing.T) {
	m := &MockLLMClient{Err: apperr.Upstream(errors.New("gemini: 503"))}

	_, err := newTestSynthesizer(m).Synthesize(context.Background(), "q", sampleResults())

	assert.ErrorIs(t, err, apperr.ErrUpstream)
}
