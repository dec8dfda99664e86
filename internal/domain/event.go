package domain

import "time"

// PlacementEvent is the frame pushed to live viewers of a board. A viewer
// applies it as an incremental patch over the snapshot it fetched when
// subscribing.
type PlacementEvent struct {
	X           int       `json:"x"`
	Y           int       `json:"y"`
	Color       Color     `json:"color"`
	ActorId     ActorId   `json:"actor_id"`
	DisplayName string    `json:"display_name"`
	Timestamp   time.Time `json:"timestamp"`
}

// Actor is the already-authenticated caller identity resolved by the request
// layer before the placement engine is invoked.
type Actor struct {
	Id    ActorId
	Name  string
	Admin bool
}
