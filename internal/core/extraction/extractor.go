package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Vizlook/youtube-search/internal/config"
	"github.com/Vizlook/youtube-search/internal/core/common"
	"github.com/Vizlook/youtube-search/internal/core/model"
	"github.com/Vizlook/youtube-search/internal/llm"
	"github.com/Vizlook/youtube-search/internal/logger"
)

// Extractor pulls spoken and on-screen text hints out of a user query.
type Extractor struct {
	LLM    llm.LLMClient
	Gen    config.GenerationConfig
	Logger logrus.FieldLogger
}

func NewExtractor(llmClient llm.LLMClient, gen config.GenerationConfig, log logrus.FieldLogger) *Extractor {
	return &Extractor{
		LLM:    llmClient,
		Gen:    gen,
		Logger: log,
	}
}

// Extract never fails on malformed LLM output: it returns a degraded, empty intent instead.
// Errors from the LLM call itself are returned unchanged in kind.
func (e *Extractor) Extract(ctx context.Context, query string) (model.Extraction, error) {
	log := logger.FromContext(ctx, e.Logger).WithField("stage", "extraction")

	response, err := e.LLM.Generate(ctx, buildPrompt(query),
		llm.WithTemperature(e.Gen.Temperature),
		llm.WithMaxTokens(e.Gen.MaxTokens),
	)
	if err != nil {
		return model.Extraction{}, fmt.Errorf("failed to extract intent: %w", err)
	}

	intent, err := parseIntent(response)
	if err != nil {
		log.WithError(err).Warn("intent extraction degraded, continuing without hints")
		return model.Extraction{Degraded: true}, nil
	}

	if intent.VoiceText != "" && !strings.Contains(query, intent.VoiceText) {
		log.WithField("voice_text", intent.VoiceText).Warn("dropping voice hint not present in query")
		intent.VoiceText = ""
	}
	if intent.ScreenText != "" && !strings.Contains(query, intent.ScreenText) {
		log.WithField("screen_text", intent.ScreenText).Warn("dropping screen hint not present in query")
		intent.ScreenText = ""
	}

	log.WithFields(logrus.Fields{
		"voice_text":  intent.VoiceText,
		"screen_text": intent.ScreenText,
	}).Debug("intent extracted")

	return model.Extraction{Intent: intent}, nil
}

// parseIntent requires both keys to be present and hold strings. Extra keys are ignored.
func parseIntent(response string) (model.ExtractedIntent, error) {
	fields, err := common.ParseJSON[map[string]json.RawMessage](response)
	if err != nil {
		return model.ExtractedIntent{}, err
	}

	voice, err := stringField(fields, "voice_text")
	if err != nil {
		return model.ExtractedIntent{}, err
	}
	screen, err := stringField(fields, "screen_text")
	if err != nil {
		return model.ExtractedIntent{}, err
	}

	return model.ExtractedIntent{VoiceText: voice, ScreenText: screen}, nil
}

func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("missing key %q", key)
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", fmt.Errorf("key %q is null", key)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("key %q is not a string: %w", key, err)
	}
	return s, nil
}
