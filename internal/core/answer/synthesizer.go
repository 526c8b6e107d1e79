package answer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Vizlook/youtube-search/internal/config"
	"github.com/Vizlook/youtube-search/internal/core/model"
	"github.com/Vizlook/youtube-search/internal/llm"
	"github.com/Vizlook/youtube-search/internal/logger"
)

// NoResultsAnswer is the fixed answer for an empty result set. The LLM is not consulted.
const NoResultsAnswer = "No results."

// sourceContext is the grounding material for one video. Transcriptions are left out.
type sourceContext struct {
	ContentType         string              `json:"contentType"`
	VideoURL            string              `json:"videoUrl"`
	Title               string              `json:"title"`
	Author              model.Author        `json:"author"`
	PublishedDate       string              `json:"publishedDate"`
	HighlightVideoClips []model.Highlight   `json:"highlightVideoClips"`
	VideoSummary        *model.VideoSummary `json:"videoSummary,omitempty"`
}

type Synthesizer struct {
	LLM    llm.LLMClient
	Gen    config.GenerationConfig
	Logger logrus.FieldLogger
}

func NewSynthesizer(llmClient llm.LLMClient, gen config.GenerationConfig, log logrus.FieldLogger) *Synthesizer {
	return &Synthesizer{
		LLM:    llmClient,
		Gen:    gen,
		Logger: log,
	}
}

// Synthesize writes a cited answer grounded on results. The completion is returned as-is.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, results []model.ResultItem) (string, error) {
	if len(results) == 0 {
		return NoResultsAnswer, nil
	}

	contextJSON, err := buildContext(results)
	if err != nil {
		return "", fmt.Errorf("failed to build answer context: %w", err)
	}

	response, err := s.LLM.Generate(ctx, buildPrompt(query, contextJSON),
		llm.WithTemperature(s.Gen.Temperature),
		llm.WithMaxTokens(s.Gen.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	logger.FromContext(ctx, s.Logger).WithFields(logrus.Fields{
		"stage":   "answer",
		"sources": len(results),
		"chars":   len(response),
	}).Debug("answer synthesized")

	return response, nil
}

func buildContext(results []model.ResultItem) (string, error) {
	sources := make([]sourceContext, 0, len(results))
	for _, r := range results {
		highlights := r.Highlights
		if highlights == nil {
			highlights = []model.Highlight{}
		}
		sources = append(sources, sourceContext{
			ContentType:         "video",
			VideoURL:            r.URL,
			Title:               r.Title,
			Author:              r.Author,
			PublishedDate:       r.PublishedDate,
			HighlightVideoClips: highlights,
			VideoSummary:        r.Summary,
		})
	}

	b, err := json.Marshal(sources)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
