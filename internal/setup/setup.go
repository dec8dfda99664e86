package setup

import (
	"context"

	"github.com/gridplace-dev/gridplace/internal/config"
	"github.com/gridplace-dev/gridplace/internal/handler"
	"github.com/gridplace-dev/gridplace/internal/hub"
	"github.com/gridplace-dev/gridplace/internal/jwt"
	"github.com/gridplace-dev/gridplace/internal/middleware"
	"github.com/gridplace-dev/gridplace/internal/service"
	"github.com/gridplace-dev/gridplace/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	Hub            *hub.Hub
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// placementStorage adapts pg.Storage to the engine's interface: Go needs the
// exact BeginPlacement signature, and pg returns its concrete tx type.
type placementStorage struct {
	*pg.Storage
}

func (s placementStorage) BeginPlacement(ctx context.Context) (service.PlacementTx, error) {
	return s.Storage.BeginPlacement(ctx)
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	authMw := middleware.NewAuth(jwtService)

	broadcastHub := hub.New()

	board := service.NewBoard(storage, cfg.Public.MaxBoardWidth, cfg.Public.MaxBoardHeight)
	placement := service.NewPlacement(placementStorage{storage}, broadcastHub)
	history := service.NewHistory(storage, storage)
	contribution := service.NewContribution(storage, storage)
	reconciler := service.NewReconciler(storage, storage)

	h := handler.New(board, placement, history, contribution, reconciler, broadcastHub, storage)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		Hub:            broadcastHub,
		AuthMiddleware: authMw,
		Config:         cfg,
	}, nil
}
