package httpx

import (
	"net/http"

	"github.com/rs/cors"
	"room-relay/internal/app"
)

type Middleware struct {
	cors *cors.Cors
}

// NewMiddleware builds the shared middleware stack from config
func NewMiddleware(cfg app.Config) *Middleware {
	return &Middleware{
		cors: cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllow,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}),
	}
}

// Wrap applies CORS to a handler
func (m *Middleware) Wrap(h http.Handler) http.Handler {
	return m.cors.Handler(h)
}
