package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Name            string
	Description     string
	Width           int
	Height          int
	DurationMinutes int
	AllowRedraw     bool
	VisitorMode     bool
	CooldownSeconds int
	CreatorId       ActorId
}

// BoardPolicyPatch carries the policy fields that may be edited while a board
// is still open. Nil means "leave unchanged".
type BoardPolicyPatch struct {
	Description     *string
	AllowRedraw     *bool
	VisitorMode     *bool
	CooldownSeconds *int
}

type Board struct {
	Id              BoardId
	Name            string
	Description     string
	Width           int
	Height          int
	CreatedAt       time.Time
	DurationMinutes int
	ClosedAt        *time.Time // set only by an explicit close
	AllowRedraw     bool
	VisitorMode     bool // board stays viewable after closing
	CooldownSeconds int
	CreatorId       ActorId
}

// ExpiresAt is the natural end of the board's placement window.
func (b *Board) ExpiresAt() time.Time {
	return b.CreatedAt.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// IsOpenForWrites reports whether placements are admissible at `now`.
// Expiry is always computed from `now`, never persisted; an explicit close is
// permanent. Once false for some `now`, it is false for every later `now`.
func (b *Board) IsOpenForWrites(now time.Time) bool {
	if b.ClosedAt != nil {
		return false
	}
	return now.Before(b.ExpiresAt())
}

// Contains reports whether (x, y) lies inside the board.
func (b *Board) Contains(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}
