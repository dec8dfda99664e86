package pg

import (
	"database/sql"
	"errors"

	"github.com/gridplace-dev/gridplace/internal/domain"
	internal_errors "github.com/gridplace-dev/gridplace/internal/errors"

	_ "github.com/lib/pq"
)

const cellColumns = `board_id, x, y, color, last_modified_by, last_modified, modification_count, distinct_editors`

func scanCell(row interface{ Scan(...any) error }) (*domain.Cell, error) {
	var c domain.Cell
	err := row.Scan(&c.BoardId, &c.X, &c.Y, &c.Color, &c.LastModifiedBy, &c.LastModifiedAt, &c.ModificationCount, &c.DistinctEditors)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) GetCell(boardId domain.BoardId, x, y int) (*domain.Cell, error) {
	row := s.db.QueryRow(`SELECT `+cellColumns+` FROM cells WHERE board_id = $1 AND x = $2 AND y = $3`, boardId, x, y)
	cell, err := scanCell(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("Cell not found")
		}
		return nil, err
	}
	return cell, nil
}

// ListCells returns the full current snapshot of a board. Order is not
// significant.
func (s *Storage) ListCells(boardId domain.BoardId) ([]domain.Cell, error) {
	rows, err := s.db.Query(`SELECT `+cellColumns+` FROM cells WHERE board_id = $1`, boardId)
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
