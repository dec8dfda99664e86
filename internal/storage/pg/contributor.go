package pg

import (
	"github.com/gridplace-dev/gridplace/internal/domain"

	_ "github.com/lib/pq"
)

// ListContributors returns the board leaderboard ordered by pixels placed.
func (s *Storage) ListContributors(boardId domain.BoardId) ([]domain.Contributor, error) {
	rows, err := s.db.Query(`
	SELECT board_id, actor_id, display_name, pixels_count, last_placement
	FROM contributors
	WHERE board_id = $1
	ORDER BY pixels_count DESC, last_placement`, boardId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contributors []domain.Contributor
	for rows.Next() {
		var c domain.Contributor
		if err := rows.Scan(&c.BoardId, &c.ActorId, &c.DisplayName, &c.PixelsCount, &c.LastPlacementAt); err != nil {
			return nil, err
		}
		contributors = append(contributors, c)
	}
	return contributors, rows.Err()
}
