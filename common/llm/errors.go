package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
)

// anthropic reports capacity exhaustion with a non-standard 529.
const statusOverloaded = 529

// StatusCode extracts the provider HTTP status from err, or 0 when err did
// not come from an API response.
func StatusCode(err error) int {
	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return oaErr.StatusCode
	}
	var anErr *anthropic.Error
	if errors.As(err, &anErr) {
		return anErr.StatusCode
	}
	return 0
}

// IsOverloaded reports a transient capacity failure: 503 from either
// provider or 529 from anthropic. These are the only failures the outreach
// generator retries.
func IsOverloaded(err error) bool {
	if err == nil {
		return false
	}
	switch StatusCode(err) {
	case http.StatusServiceUnavailable, statusOverloaded:
		return true
	default:
		return false
	}
}

// IsRetryable is the broader classifier the worker uses before requeuing a
// task. Rate limits, server errors and network failures are retried. Client
// errors and cancellation are not.
func IsRetryable(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		slog.DebugContext(ctx, "llm error not retryable: context cancelled or deadline exceeded")
		return false
	}

	status := StatusCode(err)
	switch {
	case status == 0:
		slog.WarnContext(ctx, "llm network error, will retry", "error", err)
		return true
	case status == http.StatusTooManyRequests:
		slog.WarnContext(ctx, "llm rate limited, will retry", "status_code", status)
		return true
	case status >= 500:
		slog.WarnContext(ctx, "llm server error, will retry", "status_code", status)
		return true
	default:
		slog.ErrorContext(ctx, "llm client error, not retryable", "status_code", status)
		return false
	}
}
