package service

import (
	"context"

	"github.com/gridplace-dev/gridplace/internal/domain"
	"github.com/gridplace-dev/gridplace/internal/logger"
)

// Reconciler rebuilds the derived projections (cells, contributors) of a
// board from the history log. Safe to run repeatedly; used after a crash
// that may have committed a log append without its projection writes.
type Reconciler struct {
	storage ReconcileStorage
	boards  BoardGetter
}

type ReconcileStorage interface {
	Reconcile(ctx context.Context, boardId domain.BoardId) error
}

func NewReconciler(storage ReconcileStorage, boards BoardGetter) *Reconciler {
	return &Reconciler{storage, boards}
}

func (r *Reconciler) Reconcile(ctx context.Context, boardId domain.BoardId) error {
	if _, err := r.boards.GetBoard(boardId); err != nil {
		return err
	}
	if err := r.storage.Reconcile(ctx, boardId); err != nil {
		return err
	}
	logger.Log.Info("rebuilt projections from history log", "board", boardId)
	return nil
}
