package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/fitforge/internal/config"
	"github.com/davidbz/fitforge/internal/http/middleware"
	"github.com/davidbz/fitforge/internal/observability"
)

func TestChain_Order(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := middleware.Chain(tag("first"), tag("second"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestTrace_InjectsIDs(t *testing.T) {
	var requestID, traceID string
	handler := middleware.Trace()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		requestID = observability.GetRequestID(r.Context())
		traceID = observability.GetTraceID(r.Context())
	}))

	t.Run("generates ids", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, requestID)
		require.Len(t, traceID, 32)
		require.Equal(t, requestID, w.Header().Get("X-Request-Id"))
		require.Equal(t, traceID, w.Header().Get("X-Trace-Id"))
	})

	t.Run("keeps caller request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "upstream-1")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.Equal(t, "upstream-1", requestID)
	})
}

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	t.Run("nil config is a no-op", func(t *testing.T) {
		w := httptest.NewRecorder()
		middleware.CORS(nil)(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allowed origin is echoed", func(t *testing.T) {
		handler := middleware.CORS(&config.CORSConfig{
			AllowedOrigins: []string{"https://app.fitforge.dev"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
		})(ok)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://app.fitforge.dev")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		require.Equal(t, "https://app.fitforge.dev", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
