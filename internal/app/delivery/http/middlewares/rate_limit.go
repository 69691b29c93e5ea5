package middlewares

import (
	"net/http"
	"tawjih-service/internal/pkg/exceptions"
	"tawjih-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/httprate"
)

const defaultRequestsPerSecond = 100

// RateLimit limits each client IP to App.MaxRequests per second and answers the excess in
// the usual error envelope.
func (m *Middlewares) RateLimit() func(next http.Handler) http.Handler {
	limit := m.InternalConfig.App.MaxRequests
	if limit <= 0 {
		limit = defaultRequestsPerSecond
	}
	return httprate.Limit(
		limit,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil, r.RemoteAddr))
		}),
	)
}
