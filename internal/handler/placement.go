package handler

import (
	"net/http"

	"github.com/gridplace-dev/gridplace/internal/api"
	mw "github.com/gridplace-dev/gridplace/internal/middleware"
	"github.com/gridplace-dev/gridplace/internal/render"
	"github.com/gridplace-dev/gridplace/internal/service"
	"github.com/gridplace-dev/gridplace/internal/utils"
)

func (h *Handler) PlacePixel(w http.ResponseWriter, r *http.Request) {
	actor := mw.GetActorFromContext(r)
	if actor == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	boardId, err := parseBoardId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.PlacePixelRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	cell, err := h.placement.Place(r.Context(), service.PlacementRequest{
		BoardId:     boardId,
		X:           body.X,
		Y:           body.Y,
		Color:       body.Color,
		ActorId:     actor.Id,
		DisplayName: render.PlainText(actor.Name),
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, api.CellResponse{Cell: *cell}, http.StatusCreated)
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseBoardId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cells, err := h.placement.Snapshot(boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.SnapshotResponse{Cells: cells})
}
