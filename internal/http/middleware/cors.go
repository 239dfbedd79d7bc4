package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/davidbz/fitforge/internal/config"
)

// CORS lets browser clients call the API with the configured policy. The trace and request
// ids set by Trace are exposed so clients can quote them.
func CORS(cfg *config.CORSConfig) Middleware {
	if cfg == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   append([]string{requestIDHeader}, cfg.AllowedHeaders...),
		ExposedHeaders:   []string{requestIDHeader, traceIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})

	return c.Handler
}
