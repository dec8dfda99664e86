package api

import (
	"time"

	"github.com/gridplace-dev/gridplace/internal/domain"
)

// Request DTOs

type CreateBoardRequest struct {
	Name            string `json:"name" validate:"required"`
	Description     string `json:"description,omitempty"`
	Width           int    `json:"width" validate:"required,gt=0"`
	Height          int    `json:"height" validate:"required,gt=0"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gte=1"`
	AllowRedraw     bool   `json:"allow_redraw"`
	VisitorMode     bool   `json:"visitor_mode"`
	CooldownSeconds int    `json:"cooldown_seconds" validate:"gte=0"`
}

type UpdateBoardPolicyRequest struct {
	Description     *string `json:"description,omitempty"`
	AllowRedraw     *bool   `json:"allow_redraw,omitempty"`
	VisitorMode     *bool   `json:"visitor_mode,omitempty"`
	CooldownSeconds *int    `json:"cooldown_seconds,omitempty" validate:"omitempty,gte=0"`
}

type PlacePixelRequest struct {
	X     int    `json:"x" validate:"gte=0"`
	Y     int    `json:"y" validate:"gte=0"`
	Color string `json:"color" validate:"required,hexcolor"`
}

// Response DTOs

type BoardResponse struct {
	domain.Board
	// Markdown description rendered to sanitized HTML
	DescriptionHTML string `json:"description_html,omitempty"`
}

type BoardListResponse struct {
	Boards []domain.Board `json:"boards"`
}

type CellResponse struct {
	domain.Cell
}

type SnapshotResponse struct {
	Cells []domain.Cell `json:"cells"`
}

type HistoryResponse struct {
	Entries []domain.HistoryEntry `json:"entries"`
}

type StateAtResponse struct {
	At    time.Time     `json:"at"`
	Cells []domain.Cell `json:"cells"`
}

type ContributorsResponse struct {
	Contributors []domain.Contributor `json:"contributors"`
}
