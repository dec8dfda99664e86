package handler

import (
	"net/http"

	"github.com/gridplace-dev/gridplace/internal/api"
	"github.com/gridplace-dev/gridplace/internal/utils"
)

func (h *Handler) GetContributors(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseBoardId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	contributors, err := h.contribution.List(boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.ContributorsResponse{Contributors: contributors})
}
