package pg

import (
	"context"
	"fmt"

	"github.com/gridplace-dev/gridplace/internal/domain"

	_ "github.com/lib/pq"
)

// Reconcile rebuilds the cell and contributor projections of one board from
// the history log. It runs in a single transaction and is idempotent: after
// a crash between the log append and the projection writes (or at any other
// time), running it brings both projections exactly in line with the log.
func (s *Storage) Reconcile(ctx context.Context, boardId domain.BoardId) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	if _, err := tx.Exec(`DELETE FROM cells WHERE board_id = $1`, boardId); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	INSERT INTO cells(board_id, x, y, color, last_modified_by, last_modified, modification_count, distinct_editors)
	SELECT
		board_id,
		x,
		y,
		(array_agg(color ORDER BY created DESC, id DESC))[1],
		(array_agg(actor_id ORDER BY created DESC, id DESC))[1],
		max(created),
		count(*),
		array_agg(DISTINCT actor_id)
	FROM history
	WHERE board_id = $1
	GROUP BY board_id, x, y`, boardId); err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM contributors WHERE board_id = $1`, boardId); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	INSERT INTO contributors(board_id, actor_id, display_name, pixels_count, last_placement)
	SELECT
		board_id,
		actor_id,
		(array_agg(actor_name ORDER BY created DESC, id DESC))[1],
		count(*),
		max(created)
	FROM history
	WHERE board_id = $1
	GROUP BY board_id, actor_id`, boardId); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
