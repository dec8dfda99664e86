package service

import (
	"time"

	"github.com/gridplace-dev/gridplace/internal/domain"
)

type HistoryService interface {
	Range(boardId domain.BoardId, from, to *time.Time) ([]domain.HistoryEntry, error)
	StateAt(boardId domain.BoardId, at time.Time) ([]domain.Cell, error)
}

type History struct {
	storage HistoryStorage
	boards  BoardGetter
}

type HistoryStorage interface {
	HistoryRange(boardId domain.BoardId, from, to *time.Time) ([]domain.HistoryEntry, error)
	StateAt(boardId domain.BoardId, at time.Time) ([]domain.Cell, error)
}

type BoardGetter interface {
	GetBoard(id domain.BoardId) (*domain.Board, error)
}

func NewHistory(storage HistoryStorage, boards BoardGetter) *History {
	return &History{storage, boards}
}

func (h *History) Range(boardId domain.BoardId, from, to *time.Time) ([]domain.HistoryEntry, error) {
	if _, err := h.boards.GetBoard(boardId); err != nil {
		return nil, err
	}
	return h.storage.HistoryRange(boardId, from, to)
}

// StateAt reconstructs the board as of `at` from the log alone; it is
// independent of the live cell projection.
func (h *History) StateAt(boardId domain.BoardId, at time.Time) ([]domain.Cell, error) {
	if _, err := h.boards.GetBoard(boardId); err != nil {
		return nil, err
	}
	return h.storage.StateAt(boardId, at)
}
