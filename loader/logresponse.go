package loader

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
)

// logResponse is a callback for retryablehttp
// It logs HTTP errors at WARN and every response at DEBUG
func logResponse(_ retryablehttp.Logger, r *http.Response) {
	isHTTPError := r.StatusCode >= 400
	if !isHTTPError && !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	level := slog.LevelDebug
	if isHTTPError {
		level = slog.LevelWarn
	}
	args := []any{"status", statusText(r), "length", r.ContentLength}
	// Test transports may return responses without their request
	if r.Request != nil {
		args = append(args, "method", r.Request.Method, "url", r.Request.URL)
	}
	slog.Log(context.Background(), level, "HTTP response", args...)
}

// statusText returns the status code of a response with its text
func statusText(r *http.Response) string {
	return fmt.Sprintf("%d %s", r.StatusCode, http.StatusText(r.StatusCode))
}
