package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vizlook/youtube-search/internal/apperr"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode("answer")
	require.NoError(t, err)
	assert.Equal(t, ModeAnswer, m)

	m, err = ParseMode(" Search ")
	require.NoError(t, err)
	assert.Equal(t, ModeSearch, m)

	_, err = ParseMode("summarize")
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}

func TestRequest_Normalize(t *testing.T) {
	req, err := Request{Query: "  how to tie a tie  ", Mode: ModeSearch}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "how to tie a tie", req.Query)

	_, err = Request{Query: "   ", Mode: ModeSearch}.Normalize()
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)

	_, err = Request{Query: "cats", Mode: "Other"}.Normalize()
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}

func TestResultItem_Validate(t *testing.T) {
	item := ResultItem{
		URL:        "https://www.youtube.com/watch?v=abc",
		Duration:   120,
		Highlights: []Highlight{{StartTime: 0, EndTime: 10}, {StartTime: 100, EndTime: 120}},
	}
	assert.NoError(t, item.Validate())

	noURL := item
	noURL.URL = ""
	assert.ErrorIs(t, noURL.Validate(), ErrMissingURL)

	cases := []Highlight{
		{StartTime: -1, EndTime: 5},
		{StartTime: 10, EndTime: 10},
		{StartTime: 20, EndTime: 5},
		{StartTime: 100, EndTime: 121},
	}
	for _, h := range cases {
		bad := item
		bad.Highlights = []Highlight{h}
		assert.ErrorIs(t, bad.Validate(), ErrInvalidHighlight, "%+v", h)
	}
}

func TestSectionAt(t *testing.T) {
	s := &VideoSummary{SectionSummaries: []SectionSummary{
		{StartTime: 0, EndTime: 60, Title: "Intro"},
		{StartTime: 60, EndTime: 180, Title: "Setup"},
	}}

	sec, ok := s.SectionAt(60)
	require.True(t, ok)
	assert.Equal(t, "Setup", sec.Title)

	_, ok = s.SectionAt(180)
	assert.False(t, ok)

	var none *VideoSummary
	_, ok = none.SectionAt(1)
	assert.False(t, ok)
}

func TestResultItem_JSON(t *testing.T) {
	raw := `{
		"url": "https://www.youtube.com/watch?v=abc",
		"title": "Knots",
		"author": {"name": "Rope Guy", "avatar": "https://img/a.png"},
		"publishedDate": "2024-03-01T00:00:00Z",
		"duration": 754,
		"thumbnail": {"url": "https://img/t.jpg"},
		"highlights": [{"startTime": 12.5, "endTime": 30}],
		"transcription": {"audioClips": [{"startTime": 0, "endTime": 4, "speakerId": "A", "transcription": "hi"}], "videoClips": []},
		"summary": {"overallSummary": "about knots", "sectionSummaries": []}
	}`

	var item ResultItem
	require.NoError(t, json.Unmarshal([]byte(raw), &item))
	assert.Equal(t, "Rope Guy", item.Author.Name)
	assert.Equal(t, 754.0, item.Duration)
	require.Len(t, item.Highlights, 1)
	assert.Equal(t, 12.5, item.Highlights[0].StartTime)
	require.NotNil(t, item.Transcription)
	assert.Equal(t, "A", item.Transcription.AudioClips[0].SpeakerID)
	require.NotNil(t, item.Summary)
	assert.Equal(t, "about knots", item.Summary.OverallSummary)
}

func TestSearchResponse_AnswerOmitted(t *testing.T) {
	b, err := json.Marshal(SearchResponse{Results: []ResultItem{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[]}`, string(b))

	answer := "No results."
	b, err = json.Marshal(SearchResponse{Results: []ResultItem{}, Answer: &answer})
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[],"answer":"No results."}`, string(b))
}

func TestExtractedIntent_IsEmpty(t *testing.T) {
	assert.True(t, ExtractedIntent{}.IsEmpty())
	assert.False(t, ExtractedIntent{ScreenText: "Welcome"}.IsEmpty())
}

func TestFormatClock(t *testing.T) {
	tests := map[float64]string{
		0:      "0:00",
		5.9:    "0:05",
		65:     "1:05",
		754:    "12:34",
		3600:   "1:00:00",
		3725:   "1:02:05",
		-3:     "0:00",
		36000:  "10:00:00",
		599.99: "9:59",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatClock(in), "input %v", in)
	}
	assert.Equal(t, "0:00", FormatClock(math.NaN()))
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "00:00", FormatTimestamp(0))
	assert.Equal(t, "01:05", FormatTimestamp(65))
	assert.Equal(t, "62:05", FormatTimestamp(3725))
	assert.Equal(t, "00:00", FormatTimestamp(-1))
}
