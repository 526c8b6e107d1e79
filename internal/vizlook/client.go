// Package vizlook is a client for the Vizlook semantic video search API.
package vizlook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Vizlook/youtube-search/internal/apperr"
	"github.com/Vizlook/youtube-search/internal/config"
	"github.com/Vizlook/youtube-search/internal/core/model"
	"github.com/Vizlook/youtube-search/internal/httputil"
)

const DefaultBaseURL = "https://api.vizlook.com"

type Client struct {
	HTTP       *http.Client
	BaseURL    string
	APIKey     string
	MaxRetries int
	Logger     logrus.FieldLogger
}

func NewClient(cfg config.SearchConfig, log logrus.FieldLogger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout.Duration
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		HTTP:       &http.Client{Timeout: timeout},
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     cfg.APIKey,
		MaxRetries: cfg.MaxRetries,
		Logger:     log,
	}
}

// Search implements retrieval.Provider.
func (c *Client) Search(ctx context.Context, q model.ProviderQuery) ([]model.ResultItem, error) {
	body, err := json.Marshal(newSearchRequest(q))
	if err != nil {
		return nil, fmt.Errorf("encoding vizlook request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating vizlook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)

	start := time.Now()
	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.MaxRetries)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, apperr.Upstream(fmt.Errorf("vizlook request: %w", err))
	}
	defer resp.Body.Close()

	c.Logger.WithFields(logrus.Fields{
		"provider": "vizlook",
		"status":   resp.StatusCode,
		"elapsed":  time.Since(start).String(),
	}).Debug("search provider responded")

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, apperr.RateLimited(fmt.Errorf("vizlook returned HTTP %d: %s", resp.StatusCode, readSnippet(resp.Body)))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, apperr.Upstream(fmt.Errorf("vizlook returned HTTP %d: %s", resp.StatusCode, readSnippet(resp.Body)))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, apperr.Upstream(fmt.Errorf("parsing vizlook response: %w", err))
	}
	if sr.Results == nil {
		sr.Results = []model.ResultItem{}
	}
	return sr.Results, nil
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(b))
}
