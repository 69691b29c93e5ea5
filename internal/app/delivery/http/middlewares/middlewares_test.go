package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"tawjih-service/internal/app/config"
	"tawjih-service/internal/pkg/constvars"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddlewares(maxRequests int) *Middlewares {
	return NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		App: config.App{MaxRequests: maxRequests},
	})
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestRequestIDMiddleware(t *testing.T) {
	middlewares := newTestMiddlewares(10)
	var seen string
	var fromClient bool
	handler := middlewares.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		fromClient, _ = r.Context().Value(constvars.CONTEXT_IS_CLIENT_REQUEST_ID_KEY).(bool)
	}))

	t.Run("Client Request ID Is Kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/candidates", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-123")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-123", seen)
		assert.True(t, fromClient)
		assert.Equal(t, "client-123", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Missing Request ID Is Generated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/candidates", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.True(t, strings.HasPrefix(seen, constvars.REQUEST_ID_PREFIX))
		assert.False(t, fromClient)
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestLogging(t *testing.T) {
	middlewares := newTestMiddlewares(10)
	handler := middlewares.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestErrorHandler(t *testing.T) {
	middlewares := newTestMiddlewares(10)

	t.Run("Panic Becomes An Internal Error Envelope", func(t *testing.T) {
		handler := middlewares.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/matching", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		body := decodeBody(t, rr)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, constvars.ErrCodeInternal, body["code"])
	})

	t.Run("Unknown Route Is Not Found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		middlewares.NotFound(rr, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, constvars.ErrCodeRouteNotFound, decodeBody(t, rr)["code"])
	})
}

func TestRateLimit(t *testing.T) {
	middlewares := newTestMiddlewares(2)
	handler := middlewares.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/candidates", nil)
		req.RemoteAddr = "10.0.0.7:5123"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
		if rr.Code == http.StatusTooManyRequests {
			body := decodeBody(t, rr)
			assert.Equal(t, constvars.ErrCodeRateLimited, body["code"])
			assert.Equal(t, true, body["retryable"])
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
