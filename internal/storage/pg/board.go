package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gridplace-dev/gridplace/internal/domain"
	internal_errors "github.com/gridplace-dev/gridplace/internal/errors"

	_ "github.com/lib/pq"
)

const boardColumns = `id, name, description, width, height, created, duration_minutes, closed_at, allow_redraw, visitor_mode, cooldown_seconds, creator_id`

func scanBoard(row interface{ Scan(...any) error }) (*domain.Board, error) {
	var b domain.Board
	var closedAt sql.NullTime
	err := row.Scan(&b.Id, &b.Name, &b.Description, &b.Width, &b.Height, &b.CreatedAt, &b.DurationMinutes, &closedAt, &b.AllowRedraw, &b.VisitorMode, &b.CooldownSeconds, &b.CreatorId)
	if err != nil {
		return nil, err
	}
	if closedAt.Valid {
		t := closedAt.Time
		b.ClosedAt = &t
	}
	return &b, nil
}

func (s *Storage) CreateBoard(data domain.BoardCreationData, now time.Time) (*domain.Board, error) {
	row := s.db.QueryRow(`
	INSERT INTO boards(name, description, width, height, created, duration_minutes, allow_redraw, visitor_mode, cooldown_seconds, creator_id)
	VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING `+boardColumns,
		data.Name, data.Description, data.Width, data.Height, now, data.DurationMinutes, data.AllowRedraw, data.VisitorMode, data.CooldownSeconds, data.CreatorId)

	board, err := scanBoard(row)
	if err != nil {
		return nil, err
	}
	return board, nil
}

func (s *Storage) GetBoard(id domain.BoardId) (*domain.Board, error) {
	row := s.db.QueryRow(`SELECT `+boardColumns+` FROM boards WHERE id = $1`, id)
	board, err := scanBoard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Board not found")
		}
		return nil, err
	}
	return board, nil
}

func (s *Storage) GetBoards() ([]domain.Board, error) {
	rows, err := s.db.Query(`SELECT ` + boardColumns + ` FROM boards ORDER BY created DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []domain.Board
	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, *board)
	}
	return boards, rows.Err()
}

// CloseBoard records an explicit close. Closing an already-closed board
// (explicitly or by expiry) is a no-op, so the transition is monotonic.
func (s *Storage) CloseBoard(id domain.BoardId, now time.Time) error {
	result, err := s.db.Exec(`
	UPDATE boards
	SET closed_at = $2
	WHERE id = $1
	  AND closed_at IS NULL
	  AND created + make_interval(mins => duration_minutes) > $2`, id, now)
	if err != nil {
		return err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		// distinguish "already closed" (no-op) from "no such board"
		var exists bool
		if err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM boards WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return internal_errors.NotFound("Board not found")
		}
	}
	return nil
}

// UpdateBoardPolicy edits policy fields; it only applies while the board is
// still open at `now`.
func (s *Storage) UpdateBoardPolicy(id domain.BoardId, patch domain.BoardPolicyPatch, now time.Time) (*domain.Board, error) {
	row := s.db.QueryRow(`
	UPDATE boards
	SET description = COALESCE($2, description),
	    allow_redraw = COALESCE($3, allow_redraw),
	    visitor_mode = COALESCE($4, visitor_mode),
	    cooldown_seconds = COALESCE($5, cooldown_seconds)
	WHERE id = $1
	  AND closed_at IS NULL
	  AND created + make_interval(mins => duration_minutes) > $6
	RETURNING `+boardColumns,
		id, patch.Description, patch.AllowRedraw, patch.VisitorMode, patch.CooldownSeconds, now)

	board, err := scanBoard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// no open board matched: either absent or closed
			if _, getErr := s.GetBoard(id); getErr != nil {
				return nil, getErr
			}
			return nil, internal_errors.Conflict("Board is closed")
		}
		return nil, fmt.Errorf("update board policy: %w", err)
	}
	return board, nil
}
