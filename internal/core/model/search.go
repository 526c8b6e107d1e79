package model

import (
	"errors"
	"fmt"
)

// ResultItem is one video returned by the search provider. Read-only downstream of retrieval.
type ResultItem struct {
	URL           string         `json:"url"`
	Title         string         `json:"title"`
	Author        Author         `json:"author"`
	PublishedDate string         `json:"publishedDate"`
	Duration      float64        `json:"duration"` // seconds
	Thumbnail     Thumbnail      `json:"thumbnail"`
	Highlights    []Highlight    `json:"highlights"`
	Transcription *Transcription `json:"transcription,omitempty"`
	Summary       *VideoSummary  `json:"summary,omitempty"`
}

type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Highlight is a sub-clip relevant to the query, in seconds from the start of the video.
type Highlight struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
}

func (h Highlight) Length() float64 {
	return h.EndTime - h.StartTime
}

type Transcription struct {
	AudioClips []AudioClip `json:"audioClips"`
	VideoClips []VideoClip `json:"videoClips"`
}

type AudioClip struct {
	StartTime     float64 `json:"startTime"`
	EndTime       float64 `json:"endTime"`
	SpeakerID     string  `json:"speakerId,omitempty"`
	Transcription string  `json:"transcription"`
}

type VideoClip struct {
	StartTime         float64 `json:"startTime"`
	EndTime           float64 `json:"endTime"`
	VisualDescription string  `json:"visualDescription"`
}

type VideoSummary struct {
	OverallSummary   string           `json:"overallSummary"`
	SectionSummaries []SectionSummary `json:"sectionSummaries"`
}

type SectionSummary struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
}

// SectionAt returns the section playing at t, using [start, end) bounds.
func (s *VideoSummary) SectionAt(t float64) (SectionSummary, bool) {
	if s == nil {
		return SectionSummary{}, false
	}
	for _, sec := range s.SectionSummaries {
		if t >= sec.StartTime && t < sec.EndTime {
			return sec, true
		}
	}
	return SectionSummary{}, false
}

var (
	ErrMissingURL       = errors.New("result has no url")
	ErrInvalidHighlight = errors.New("highlight out of bounds")
)

// Validate checks the provider contract: a url, and highlights with 0 <= start < end <= duration.
func (r ResultItem) Validate() error {
	if r.URL == "" {
		return ErrMissingURL
	}
	for i, h := range r.Highlights {
		if h.StartTime < 0 || h.StartTime >= h.EndTime || h.EndTime > r.Duration {
			return fmt.Errorf("highlight %d [%v, %v] with duration %v: %w", i, h.StartTime, h.EndTime, r.Duration, ErrInvalidHighlight)
		}
	}
	return nil
}

// SearchResponse is the pipeline output. Answer is nil when it was not requested.
type SearchResponse struct {
	Results []ResultItem `json:"results"`
	Answer  *string      `json:"answer,omitempty"`
}

// ProviderQuery is what the retriever asks of the search provider.
// Empty constraints are omitted on the wire.
type ProviderQuery struct {
	Query                string
	ContainSpokenText    string
	ContainScreenText    string
	MaxResults           int
	IncludeTranscription bool
	IncludeSummary       bool
}
