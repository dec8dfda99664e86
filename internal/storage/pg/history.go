package pg

import (
	"time"

	"github.com/gridplace-dev/gridplace/internal/domain"

	_ "github.com/lib/pq"
)

// HistoryRange streams a board's history ordered by (created, id) ascending.
// from/to are inclusive bounds; nil means unbounded.
func (s *Storage) HistoryRange(boardId domain.BoardId, from, to *time.Time) ([]domain.HistoryEntry, error) {
	query := `
	SELECT id, board_id, x, y, color, actor_id, actor_name, created
	FROM history
	WHERE board_id = $1
	  AND ($2::timestamptz IS NULL OR created >= $2)
	  AND ($3::timestamptz IS NULL OR created <= $3)
	ORDER BY created, id`

	rows, err := s.db.Query(query, boardId, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.Id, &e.BoardId, &e.X, &e.Y, &e.Color, &e.ActorId, &e.ActorName, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// StateAt reconstructs the board state as of `at` purely from the history
// log: per (x, y) the latest entry wins (id breaks timestamp ties), while
// modification_count and distinct_editors accumulate over all entries up to
// `at`. StateAt(board, now) always matches ListCells(board).
func (s *Storage) StateAt(boardId domain.BoardId, at time.Time) ([]domain.Cell, error) {
	rows, err := s.db.Query(`
	SELECT
		board_id,
		x,
		y,
		(array_agg(color ORDER BY created DESC, id DESC))[1] AS color,
		(array_agg(actor_id ORDER BY created DESC, id DESC))[1] AS last_modified_by,
		max(created) AS last_modified,
		count(*) AS modification_count,
		array_agg(DISTINCT actor_id) AS distinct_editors
	FROM history
	WHERE board_id = $1 AND created <= $2
	GROUP BY board_id, x, y`, boardId, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cells []domain.Cell
	for rows.Next() {
		cell, err := scanCell(rows)
		if err != nil {
			return nil, err
		}
		cells = append(cells, *cell)
	}
	return cells, rows.Err()
}
