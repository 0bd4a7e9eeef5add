package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows cross origin requests from origins. With no origins the
// handler is returned unchanged.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler
}
