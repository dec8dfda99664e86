package service

import (
	"context"
	"time"

	"github.com/gridplace-dev/gridplace/internal/domain"
	internal_errors "github.com/gridplace-dev/gridplace/internal/errors"
	"github.com/gridplace-dev/gridplace/internal/logger"
)

// PlacementRequest carries one validated pixel write. Authentication,
// authorization and color format checks happened upstream.
type PlacementRequest struct {
	BoardId     domain.BoardId
	X           int
	Y           int
	Color       domain.Color
	ActorId     domain.ActorId
	DisplayName string
}

type PlacementService interface {
	Place(ctx context.Context, req PlacementRequest) (*domain.Cell, error)
	Snapshot(boardId domain.BoardId) ([]domain.Cell, error)
}

// PlacementTx is one placement's transactional unit of work. Locks taken by
// the *ForUpdate reads serialize concurrent placements per (board, actor)
// and per cell at the storage layer, so multiple engine instances stay
// consistent without in-process locks.
type PlacementTx interface {
	ContributorForUpdate(boardId domain.BoardId, actorId domain.ActorId) (*domain.Contributor, error)
	CellForUpdate(boardId domain.BoardId, x, y int) (*domain.Cell, error)
	AppendHistory(entry *domain.HistoryEntry) error
	UpsertCell(boardId domain.BoardId, x, y int, color domain.Color, actorId domain.ActorId, now time.Time) (*domain.Cell, error)
	RecordContribution(boardId domain.BoardId, actorId domain.ActorId, displayName string, now time.Time) error
	Commit() error
	Rollback() error
}

type PlacementStorage interface {
	GetBoard(id domain.BoardId) (*domain.Board, error)
	BeginPlacement(ctx context.Context) (PlacementTx, error)
	ListCells(boardId domain.BoardId) ([]domain.Cell, error)
}

type Broadcaster interface {
	Publish(boardId domain.BoardId, event domain.PlacementEvent)
}

// Placement orchestrates one pixel write: admissibility checks, the atomic
// log-then-projection transaction, and the best-effort fan-out to viewers.
type Placement struct {
	storage PlacementStorage
	hub     Broadcaster
	now     func() time.Time
}

func NewPlacement(storage PlacementStorage, hub Broadcaster) *Placement {
	return &Placement{
		storage: storage,
		hub:     hub,
		// database rounds to microseconds anyway
		now: func() time.Time { return time.Now().UTC().Round(time.Microsecond) },
	}
}

// Place runs the placement sequence. Any rejection before the transaction
// commits leaves no trace; the broadcast after commit is best-effort and
// never rolls anything back.
func (p *Placement) Place(ctx context.Context, req PlacementRequest) (*domain.Cell, error) {
	board, err := p.storage.GetBoard(req.BoardId)
	if err != nil {
		placementsTotal.WithLabelValues("not_found").Inc()
		return nil, err
	}

	now := p.now()
	if !board.IsOpenForWrites(now) {
		placementsTotal.WithLabelValues("board_closed").Inc()
		return nil, internal_errors.Conflict("Board is closed")
	}
	if !board.Contains(req.X, req.Y) {
		placementsTotal.WithLabelValues("out_of_bounds").Inc()
		return nil, internal_errors.BadRequest("Coordinates are outside the board")
	}

	tx, err := p.storage.BeginPlacement(ctx)
	if err != nil {
		placementsTotal.WithLabelValues("storage_error").Inc()
		return nil, err
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	// Contributor row first, cell row second. All placements lock in this
	// order.
	contributor, err := tx.ContributorForUpdate(req.BoardId, req.ActorId)
	if err != nil {
		placementsTotal.WithLabelValues("storage_error").Inc()
		return nil, err
	}

	var lastPlacement *time.Time
	if contributor != nil {
		lastPlacement = &contributor.LastPlacementAt
	}
	if decision := CheckCooldown(lastPlacement, now, board.CooldownSeconds); !decision.Allowed {
		placementsTotal.WithLabelValues("cooldown").Inc()
		return nil, &internal_errors.CooldownError{RetryAfterSeconds: decision.RetryAfterSeconds}
	}

	existing, err := tx.CellForUpdate(req.BoardId, req.X, req.Y)
	if err != nil {
		placementsTotal.WithLabelValues("storage_error").Inc()
		return nil, err
	}
	if existing != nil && !board.AllowRedraw {
		placementsTotal.WithLabelValues("redraw_forbidden").Inc()
		return nil, internal_errors.Conflict("Cell is already painted and the board forbids redraw")
	}

	// Log before projection: a crash in between leaves the source of truth
	// ahead of the cache, recoverable by Reconcile.
	entry := &domain.HistoryEntry{
		BoardId:   req.BoardId,
		X:         req.X,
		Y:         req.Y,
		Color:     req.Color,
		ActorId:   req.ActorId,
		ActorName: req.DisplayName,
		CreatedAt: now,
	}
	if err := tx.AppendHistory(entry); err != nil {
		placementsTotal.WithLabelValues("storage_error").Inc()
		return nil, err
	}

	cell, err := tx.UpsertCell(req.BoardId, req.X, req.Y, req.Color, req.ActorId, now)
	if err != nil {
		placementsTotal.WithLabelValues("storage_error").Inc()
		return nil, err
	}

	if err := tx.RecordContribution(req.BoardId, req.ActorId, req.DisplayName, now); err != nil {
		placementsTotal.WithLabelValues("storage_error").Inc()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		placementsTotal.WithLabelValues("storage_error").Inc()
		return nil, err
	}
	placementsTotal.WithLabelValues("accepted").Inc()

	// Fire-and-forget relative to persistence. The hub never blocks and a
	// lost delivery is fine: viewers can refetch the snapshot.
	p.hub.Publish(req.BoardId, domain.PlacementEvent{
		X:           req.X,
		Y:           req.Y,
		Color:       req.Color,
		ActorId:     req.ActorId,
		DisplayName: req.DisplayName,
		Timestamp:   now,
	})
	logger.Log.Debug("placement accepted",
		"board", req.BoardId, "x", req.X, "y", req.Y, "actor", req.ActorId)

	return cell, nil
}

// Snapshot returns the full current state of a board.
func (p *Placement) Snapshot(boardId domain.BoardId) ([]domain.Cell, error) {
	if _, err := p.storage.GetBoard(boardId); err != nil {
		return nil, err
	}
	return p.storage.ListCells(boardId)
}
