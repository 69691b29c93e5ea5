package utils

import (
	"context"
	"net/http"
	"time"
)

const defaultRequestTimeout = 10 * time.Second

// RequestContext bounds a handler's work while keeping the values set by the middlewares.
func RequestContext(r *http.Request, timeoutInSeconds int) (context.Context, context.CancelFunc) {
	timeout := defaultRequestTimeout
	if timeoutInSeconds > 0 {
		timeout = time.Duration(timeoutInSeconds) * time.Second
	}
	return context.WithTimeout(r.Context(), timeout)
}
