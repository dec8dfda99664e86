package domain

import "time"

// HistoryEntry is one immutable record of an accepted placement. The history
// log is the source of truth: the cell and contributor tables are projections
// rebuildable from it.
type HistoryEntry struct {
	Id        int64     `json:"id"`
	BoardId   BoardId   `json:"board_id"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	Color     Color     `json:"color"`
	ActorId   ActorId   `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	CreatedAt time.Time `json:"created_at"`
}
