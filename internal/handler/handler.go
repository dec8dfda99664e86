package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gridplace-dev/gridplace/internal/hub"
	"github.com/gridplace-dev/gridplace/internal/service"
)

// HealthStorage is the slice of storage the readiness probe needs.
type HealthStorage interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	board        service.BoardService
	placement    service.PlacementService
	history      service.HistoryService
	contribution service.ContributionService
	reconciler   *service.Reconciler
	hub          *hub.Hub
	health       HealthStorage
}

func New(
	board service.BoardService,
	placement service.PlacementService,
	history service.HistoryService,
	contribution service.ContributionService,
	reconciler *service.Reconciler,
	h *hub.Hub,
	health HealthStorage,
) *Handler {
	return &Handler{board, placement, history, contribution, reconciler, h, health}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	writeJSONStatus(w, v, http.StatusOK)
}

func writeJSONStatus(w http.ResponseWriter, v interface{}, status int) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Print(err.Error())
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
	w.Write([]byte("\n"))
}
