package handler

import (
	"net/http"
	"time"

	"github.com/gridplace-dev/gridplace/internal/api"
	"github.com/gridplace-dev/gridplace/internal/utils"
)

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseBoardId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	from, err := parseTimeQuery(r, "from")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	to, err := parseTimeQuery(r, "to")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.history.Range(boardId, from, to)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.HistoryResponse{Entries: entries})
}

// GetStateAt reconstructs the board as of the ?at= timestamp (default now)
// from the history log.
func (h *Handler) GetStateAt(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseBoardId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	at, err := parseTimeQuery(r, "at")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	target := time.Now().UTC()
	if at != nil {
		target = *at
	}

	cells, err := h.history.StateAt(boardId, target)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.StateAtResponse{At: target, Cells: cells})
}
