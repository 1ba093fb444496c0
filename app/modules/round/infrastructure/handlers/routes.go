package roundhandlers

import (
	"time"

	"github.com/go-chi/chi/v5"
)

// RouteConfig configures the middleware in front of the API. Zero values fall
// back to the package defaults.
type RouteConfig struct {
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
	MaxClients     int
	ClientIdle     time.Duration
}

// RegisterRoutes mounts the round API under /api.
func RegisterRoutes(router chi.Router, h Handlers, cfg RouteConfig) {
	limiter := NewClientLimiter(cfg)

	router.Route("/api", func(r chi.Router) {
		r.Use(CorrelationMiddleware)
		r.Use(h.Tracing)
		r.Use(CORSMiddleware(cfg.AllowedOrigins))
		r.Use(RateLimitMiddleware(limiter))

		r.Route("/rounds", func(r chi.Router) {
			r.Post("/", h.HandleStartRound)

			r.Route("/active", func(r chi.Router) {
				r.Get("/", h.HandleGetActiveRound)
				r.Delete("/", h.HandleAbandonRound)
				r.Put("/players/{playerID}/holes/{hole}", h.HandleUpdateScore)
				r.Post("/holes/{hole}/confirm", h.HandleConfirmHole)
				r.Delete("/holes/{hole}/confirm", h.HandleReopenHole)
				r.Post("/save", h.HandleSaveProgress)
				r.Post("/finish", h.HandleFinishRound)
				r.Get("/scorecard", h.HandleScorecard)
			})

			r.Route("/history", func(r chi.Router) {
				r.Get("/", h.HandleListHistory)
				r.Post("/{roundID}/continue", h.HandleContinueRound)
				r.Post("/{roundID}/reopen", h.HandleReopenRound)
				r.Delete("/{roundID}", h.HandleDeleteRound)
			})
		})

		r.Route("/scoring", func(r chi.Router) {
			r.Post("/handicap", h.HandleHandicap)
			r.Post("/stableford", h.HandleStableford)
			r.Post("/sindicato", h.HandleSindicato)
			r.Post("/team", h.HandleTeam)
		})
	})
}
