package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Vizlook/youtube-search/internal/apperr"
	"github.com/Vizlook/youtube-search/internal/core/model"
)

// Client calls a running search server over HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
	}
}

func (c *Client) Search(ctx context.Context, req model.Request) (model.SearchResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return model.SearchResponse{}, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/search-video", bytes.NewReader(payload))
	if err != nil {
		return model.SearchResponse{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.SearchResponse{}, ctxErr
		}
		return model.SearchResponse{}, apperr.Upstream(fmt.Errorf("sending request: %w", err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return model.SearchResponse{}, apperr.RateLimited(statusError(resp))
	case http.StatusBadRequest:
		return model.SearchResponse{}, fmt.Errorf("%w: %v", apperr.ErrInvalidRequest, statusError(resp))
	default:
		return model.SearchResponse{}, apperr.Upstream(statusError(resp))
	}

	var out model.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.SearchResponse{}, ctxErr
		}
		return model.SearchResponse{}, apperr.Upstream(fmt.Errorf("decoding response: %w", err))
	}
	return out, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
