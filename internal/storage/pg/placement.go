package pg

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gridplace-dev/gridplace/internal/domain"

	_ "github.com/lib/pq"
)

// PlacementTx is the unit of work for one placement. The engine drives it in
// a fixed order: contributor lock (cooldown), cell lock (redraw policy),
// history append, cell upsert, contributor upsert, commit. The row locks
// taken by the *ForUpdate reads serialize concurrent placements per
// (board, actor) and per cell; every transaction locks in the same order so
// two placements can never deadlock. The history insert always commits
// together with (and logically before) the projection writes, so the log
// never lags the cell store.
type PlacementTx struct {
	tx *sql.Tx
}

func (s *Storage) BeginPlacement(ctx context.Context) (*PlacementTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &PlacementTx{tx: tx}, nil
}

// ContributorForUpdate locks the actor's per-board row for the rest of the
// transaction. FOR UPDATE on a missing row locks nothing, which would let two
// concurrent first placements by the same actor both pass the cooldown check,
// so a zero stub is inserted first when the row does not exist yet: the lock
// then always has a row to land on, and a concurrent inserter blocks on the
// primary key until this transaction resolves. Returns (nil, nil) when the
// actor has not placed on this board yet. The stub only reaches the table if
// this placement commits, and RecordContribution turns it into a real row
// before any commit happens.
func (t *PlacementTx) ContributorForUpdate(boardId domain.BoardId, actorId domain.ActorId) (*domain.Contributor, error) {
	if _, err := t.tx.Exec(`
	INSERT INTO contributors(board_id, actor_id, display_name, pixels_count, last_placement)
	VALUES($1, $2, '', 0, NULL)
	ON CONFLICT (board_id, actor_id) DO NOTHING`, boardId, actorId); err != nil {
		return nil, err
	}

	var c domain.Contributor
	var lastPlacement sql.NullTime
	err := t.tx.QueryRow(`
	SELECT board_id, actor_id, display_name, pixels_count, last_placement
	FROM contributors
	WHERE board_id = $1 AND actor_id = $2
	FOR UPDATE`, boardId, actorId).Scan(&c.BoardId, &c.ActorId, &c.DisplayName, &c.PixelsCount, &lastPlacement)
	if err != nil {
		return nil, err
	}
	if !lastPlacement.Valid {
		return nil, nil
	}
	c.LastPlacementAt = lastPlacement.Time
	return &c, nil
}

// CellForUpdate reads the current cell under a row lock. Returns (nil, nil)
// when the cell has never been painted.
func (t *PlacementTx) CellForUpdate(boardId domain.BoardId, x, y int) (*domain.Cell, error) {
	row := t.tx.QueryRow(`SELECT `+cellColumns+` FROM cells WHERE board_id = $1 AND x = $2 AND y = $3 FOR UPDATE`, boardId, x, y)
	cell, err := scanCell(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return cell, nil
}

// AppendHistory inserts the immutable placement record and fills entry.Id.
func (t *PlacementTx) AppendHistory(entry *domain.HistoryEntry) error {
	return t.tx.QueryRow(`
	INSERT INTO history(board_id, x, y, color, actor_id, actor_name, created)
	VALUES($1, $2, $3, $4, $5, $6, $7)
	RETURNING id`,
		entry.BoardId, entry.X, entry.Y, entry.Color, entry.ActorId, entry.ActorName, entry.CreatedAt).Scan(&entry.Id)
}

// UpsertCell applies last-write-wins for color/owner while accumulating
// modification_count and distinct_editors atomically in one statement.
func (t *PlacementTx) UpsertCell(boardId domain.BoardId, x, y int, color domain.Color, actorId domain.ActorId, now time.Time) (*domain.Cell, error) {
	row := t.tx.QueryRow(`
	INSERT INTO cells(board_id, x, y, color, last_modified_by, last_modified, modification_count, distinct_editors)
	VALUES($1, $2, $3, $4, $5, $6, 1, ARRAY[$5]::bigint[])
	ON CONFLICT (board_id, x, y) DO UPDATE SET
		color = EXCLUDED.color,
		last_modified_by = EXCLUDED.last_modified_by,
		last_modified = EXCLUDED.last_modified,
		modification_count = cells.modification_count + 1,
		distinct_editors = CASE
			WHEN $5 = ANY(cells.distinct_editors) THEN cells.distinct_editors
			ELSE array_append(cells.distinct_editors, $5)
		END
	RETURNING `+cellColumns,
		boardId, x, y, color, actorId, now)
	return scanCell(row)
}

// RecordContribution upserts the per-actor counter; the increment happens in
// the database so rapid double-submits cannot lose a count.
func (t *PlacementTx) RecordContribution(boardId domain.BoardId, actorId domain.ActorId, displayName string, now time.Time) error {
	_, err := t.tx.Exec(`
	INSERT INTO contributors(board_id, actor_id, display_name, pixels_count, last_placement)
	VALUES($1, $2, $3, 1, $4)
	ON CONFLICT (board_id, actor_id) DO UPDATE SET
		pixels_count = contributors.pixels_count + 1,
		last_placement = EXCLUDED.last_placement,
		display_name = EXCLUDED.display_name`,
		boardId, actorId, displayName, now)
	return err
}

func (t *PlacementTx) Commit() error {
	return t.tx.Commit()
}

func (t *PlacementTx) Rollback() error {
	return t.tx.Rollback()
}
