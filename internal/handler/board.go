package handler

import (
	"net/http"

	"github.com/gridplace-dev/gridplace/internal/api"
	"github.com/gridplace-dev/gridplace/internal/domain"
	mw "github.com/gridplace-dev/gridplace/internal/middleware"
	"github.com/gridplace-dev/gridplace/internal/render"
	"github.com/gridplace-dev/gridplace/internal/utils"
)

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	actor := mw.GetActorFromContext(r)
	if actor == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.Create(domain.BoardCreationData{
		Name:            body.Name,
		Description:     body.Description,
		Width:           body.Width,
		Height:          body.Height,
		DurationMinutes: body.DurationMinutes,
		AllowRedraw:     body.AllowRedraw,
		VisitorMode:     body.VisitorMode,
		CooldownSeconds: body.CooldownSeconds,
		CreatorId:       actor.Id,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, api.BoardResponse{Board: *board}, http.StatusCreated)
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	id, err := parseBoardId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	board, err := h.board.Get(id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	response := api.BoardResponse{Board: *board}
	if board.Description != "" {
		html, err := render.DescriptionHTML(board.Description)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		response.DescriptionHTML = html
	}
	writeJSON(w, response)
}

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.board.GetAll()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.BoardListResponse{Boards: boards})
}

func (h *Handler) CloseBoard(w http.ResponseWriter, r *http.Request) {
	actor := mw.GetActorFromContext(r)
	if actor == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return
	}

	id, err := parseBoardId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.board.Close(id, actor.Id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) UpdateBoardPolicy(w http.ResponseWriter, r *http.Request) {
	id, err := parseBoardId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.UpdateBoardPolicyRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	board, err := h.board.UpdatePolicy(id, domain.BoardPolicyPatch{
		Description:     body.Description,
		AllowRedraw:     body.AllowRedraw,
		VisitorMode:     body.VisitorMode,
		CooldownSeconds: body.CooldownSeconds,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.BoardResponse{Board: *board})
}

func (h *Handler) ReconcileBoard(w http.ResponseWriter, r *http.Request) {
	id, err := parseBoardId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.reconciler.Reconcile(r.Context(), id); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
