package domain

import (
	"time"

	"github.com/lib/pq"
)

// Cell is the current state of one (boardId, x, y) position. It is a derived
// projection of the history log: color/last-modified follow last-write-wins,
// ModificationCount and DistinctEditors accumulate across all writes.
type Cell struct {
	BoardId           BoardId       `json:"board_id"`
	X                 int           `json:"x"`
	Y                 int           `json:"y"`
	Color             Color         `json:"color"`
	LastModifiedBy    ActorId       `json:"last_modified_by"`
	LastModifiedAt    time.Time     `json:"last_modified_at"`
	ModificationCount int64         `json:"modification_count"`
	DistinctEditors   pq.Int64Array `json:"distinct_editors"`
}
