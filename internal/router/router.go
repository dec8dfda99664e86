package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/gridplace-dev/gridplace/internal/middleware"
	"github.com/gridplace-dev/gridplace/internal/middleware/metrics"
	rl "github.com/gridplace-dev/gridplace/internal/middleware/ratelimiter"
	"github.com/gridplace-dev/gridplace/internal/setup"
)

// New creates and configures the chi router with all routes.
// IMPORTANT! ratelimiters attached with .Use limit all endpoints of that
// group combined.
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	// blanket cap across all endpoints, on top of the per-actor/per-IP limits
	r.Use(mw.GlobalRateLimit(rl.New(500, 1000, 1*time.Hour)))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/healthcheck", h.Health)
	r.Get("/ready", h.Ready)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		// Admin board lifecycle
		v1.Route("/admin/boards", func(admin chi.Router) {
			admin.Use(authMw.AdminOnly())
			admin.Post("/", h.CreateBoard)
			admin.Patch("/{board}", h.UpdateBoardPolicy)
			admin.Post("/{board}/close", h.CloseBoard)
			admin.Post("/{board}/reconcile", h.ReconcileBoard)
		})

		// Logged-in viewer/painter routes
		v1.Route("/boards", func(boards chi.Router) {
			boards.Use(authMw.NeedAuth())
			boards.Use(mw.RateLimit(rl.Rps100(), mw.GetActorIDFromContext))

			boards.Get("/", h.GetBoards)
			boards.Get("/{board}", h.GetBoard)
			boards.Get("/{board}/cells", h.GetSnapshot)
			boards.Get("/{board}/history", h.GetHistory)
			boards.Get("/{board}/state", h.GetStateAt)
			boards.Get("/{board}/contributors", h.GetContributors)
			// websocket upgrades are expensive; one new stream per second per IP
			boards.With(mw.RateLimit(rl.OnceInSecond(), mw.GetIP)).
				Get("/{board}/live", h.LiveBoard)

			// The placement write path carries its own transport throttles on
			// top of the per-board domain cooldown.
			boards.With(
				mw.RateLimit(rl.Rps10(), mw.GetActorIDFromContext),
				mw.RateLimit(rl.New(10, 20, 1*time.Hour), mw.GetIP),
			).Post("/{board}/cells", h.PlacePixel)
		})
	})

	return r
}
