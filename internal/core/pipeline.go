package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Vizlook/youtube-search/internal/config"
	"github.com/Vizlook/youtube-search/internal/core/answer"
	"github.com/Vizlook/youtube-search/internal/core/extraction"
	"github.com/Vizlook/youtube-search/internal/core/model"
	"github.com/Vizlook/youtube-search/internal/core/retrieval"
	"github.com/Vizlook/youtube-search/internal/llm"
	"github.com/Vizlook/youtube-search/internal/logger"
)

// Pipeline turns a query into results and, in answer mode, a cited answer.
// It holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	Extractor   *extraction.Extractor
	Retriever   *retrieval.Retriever
	Synthesizer *answer.Synthesizer
	Logger      logrus.FieldLogger
}

func NewPipeline(llmClient llm.LLMClient, provider retrieval.Provider, cfg *config.Config, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		Extractor:   extraction.NewExtractor(llmClient, cfg.Extraction, log),
		Retriever:   retrieval.NewRetriever(provider, cfg.Search.MaxResults, log),
		Synthesizer: answer.NewSynthesizer(llmClient, cfg.Answer, log),
		Logger:      log,
	}
}

// Run validates req and executes extraction, retrieval and, when asked for, synthesis in order.
// Invalid requests fail with apperr.ErrInvalidRequest before any upstream call.
func (p *Pipeline) Run(ctx context.Context, req model.Request) (model.SearchResponse, error) {
	req, err := req.Normalize()
	if err != nil {
		return model.SearchResponse{}, err
	}

	log := logger.FromContext(ctx, p.Logger).WithFields(logrus.Fields{
		"run_id": uuid.New().String(),
		"mode":   string(req.Mode),
	})
	ctx = logger.WithContext(ctx, log)
	start := time.Now()

	extracted, err := p.Extractor.Extract(ctx, req.Query)
	if err != nil {
		return model.SearchResponse{}, err
	}

	results, err := p.Retriever.Search(ctx, req.Query, extracted.Intent)
	if err != nil {
		return model.SearchResponse{}, err
	}

	resp := model.SearchResponse{Results: results}
	if req.Mode == model.ModeAnswer {
		text, err := p.Synthesizer.Synthesize(ctx, req.Query, results)
		if err != nil {
			return model.SearchResponse{}, err
		}
		resp.Answer = &text
	}

	log.WithFields(logrus.Fields{
		"results":  len(results),
		"degraded": extracted.Degraded,
		"elapsed":  time.Since(start).String(),
	}).Info("pipeline complete")

	return resp, nil
}
