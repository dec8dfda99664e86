package handler

import (
	"io"
	"net/http"

	"golang.org/x/net/websocket"

	"github.com/gridplace-dev/gridplace/internal/domain"
	"github.com/gridplace-dev/gridplace/internal/logger"
	"github.com/gridplace-dev/gridplace/internal/utils"
)

// LiveBoard upgrades the connection and streams placement events for one
// board. The client is expected to fetch the snapshot first and apply frames
// as incremental patches; on any gap it can simply refetch.
func (h *Handler) LiveBoard(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseBoardId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	// closed boards stay subscribable: no more events will arrive, but
	// viewing policy is the caller's concern
	if _, err := h.board.Get(boardId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	websocket.Handler(func(conn *websocket.Conn) {
		h.serveLive(conn, boardId)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveLive(conn *websocket.Conn, boardId domain.BoardId) {
	defer conn.Close()

	sub := h.hub.Subscribe(boardId)
	defer h.hub.Unsubscribe(boardId, sub.ID)

	// drain the client side only to detect disconnection
	done := make(chan struct{})
	go func() {
		io.Copy(io.Discard, conn)
		close(done)
	}()

	for {
		select {
		case event, ok := <-sub.Events:
			if !ok {
				return
			}
			if err := websocket.JSON.Send(conn, event); err != nil {
				logger.Log.Debug("dropping live subscriber", "board", boardId, "err", err)
				return
			}
		case <-done:
			return
		}
	}
}
