package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/merev/gsr-api/internal/game"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type RouterConfig struct {
	RateLimit      float64
	RateBurst      int
	AllowedOrigins []string
	// Metrics is served on /metrics when set.
	Metrics prometheus.Gatherer
}

func NewRouter(gh *game.Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(CORSMiddleware(cfg.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.Metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Metrics, promhttp.HandlerOpts{}))
	}

	limiter := NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	r.Route("/api/game", func(api chi.Router) {
		api.Use(RateLimitMiddleware(limiter))

		api.Post("/", gh.StartGame)   // POST /api/game
		api.Get("/", gh.GetGame)      // GET /api/game
		api.Delete("/", gh.ClearGame) // DELETE /api/game

		api.Post("/end", gh.EndGame)
		api.Post("/reopen", gh.ReopenGame)
		api.Post("/import", gh.ImportGame)

		api.Get("/standings", gh.Standings)
		api.Get("/share", gh.Share)
		api.Get("/scorecard.xlsx", gh.Scorecard)
		api.Get("/chart.png", gh.Chart)
		api.Get("/players/{playerID}/stats", gh.PlayerStats)

		api.Route("/rounds/{round}", func(rr chi.Router) {
			rr.Put("/scores/{playerID}", gh.SetScore)
			rr.Post("/skip", gh.SkipPlayer)
			rr.Post("/unskip", gh.UnskipPlayer)
			rr.Post("/lock", gh.LockRound)
			rr.Post("/unlock", gh.UnlockRound)
		})
	})

	return r
}
