package domain

import "time"

// Contributor aggregates per-actor placement stats for one board.
// PixelsCount always equals the number of history entries for
// (BoardId, ActorId).
type Contributor struct {
	BoardId         BoardId   `json:"board_id"`
	ActorId         ActorId   `json:"actor_id"`
	DisplayName     string    `json:"display_name"`
	PixelsCount     int64     `json:"pixels_count"`
	LastPlacementAt time.Time `json:"last_placement_at"`
}
