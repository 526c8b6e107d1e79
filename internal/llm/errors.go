package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/liushuangls/go-anthropic/v2"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"

	"github.com/Vizlook/youtube-search/internal/apperr"
)

// classify tags a provider error as rate limited or generic upstream.
// Context errors pass through untouched so callers can tell a cancelled request apart.
func classify(provider string, err error, rateLimited bool) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	wrapped := fmt.Errorf("%s: %w", provider, err)
	if rateLimited {
		return apperr.RateLimited(wrapped)
	}
	return apperr.Upstream(wrapped)
}

func classifyGemini(err error) error {
	limited := false

	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		limited = true
	}

	var aerr *apierror.APIError
	if errors.As(err, &aerr) {
		if aerr.HTTPCode() == http.StatusTooManyRequests {
			limited = true
		}
		if st := aerr.GRPCStatus(); st != nil && st.Code() == codes.ResourceExhausted {
			limited = true
		}
	}

	return classify("gemini", err, limited)
}

func classifyOpenAI(err error) error {
	limited := false

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		limited = true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		limited = true
	}

	return classify("openai", err, limited)
}

func classifyClaude(err error) error {
	limited := false

	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) && apiErr.IsRateLimitErr() {
		limited = true
	}
	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusTooManyRequests {
		limited = true
	}

	return classify("claude", err, limited)
}
