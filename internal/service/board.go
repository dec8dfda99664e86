package service

import (
	"strings"
	"time"

	"github.com/gridplace-dev/gridplace/internal/domain"
	internal_errors "github.com/gridplace-dev/gridplace/internal/errors"
)

// to mock service in tests
type BoardService interface {
	Create(data domain.BoardCreationData) (*domain.Board, error)
	Get(id domain.BoardId) (*domain.Board, error)
	GetAll() ([]domain.Board, error)
	Close(id domain.BoardId, actor domain.ActorId) error
	UpdatePolicy(id domain.BoardId, patch domain.BoardPolicyPatch) (*domain.Board, error)
}

type Board struct {
	storage   BoardStorage
	maxWidth  int
	maxHeight int
	now       func() time.Time
}

type BoardStorage interface {
	CreateBoard(data domain.BoardCreationData, now time.Time) (*domain.Board, error)
	GetBoard(id domain.BoardId) (*domain.Board, error)
	GetBoards() ([]domain.Board, error)
	CloseBoard(id domain.BoardId, now time.Time) error
	UpdateBoardPolicy(id domain.BoardId, patch domain.BoardPolicyPatch, now time.Time) (*domain.Board, error)
}

func NewBoard(storage BoardStorage, maxWidth, maxHeight int) *Board {
	return &Board{
		storage:   storage,
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		now:       func() time.Time { return time.Now().UTC().Round(time.Microsecond) },
	}
}

func (b *Board) validateCreation(data domain.BoardCreationData) error {
	if strings.TrimSpace(data.Name) == "" {
		return internal_errors.BadRequest("Board name is required")
	}
	if data.Width <= 0 || data.Height <= 0 {
		return internal_errors.BadRequest("Board dimensions must be positive")
	}
	if data.Width > b.maxWidth || data.Height > b.maxHeight {
		return internal_errors.BadRequest("Board dimensions exceed the allowed maximum")
	}
	// a zero-length window would close the board before it opened
	if data.DurationMinutes < 1 {
		return internal_errors.BadRequest("Board duration must be at least one minute")
	}
	if data.CooldownSeconds < 0 {
		return internal_errors.BadRequest("Cooldown can't be negative")
	}
	return nil
}

func (b *Board) Create(data domain.BoardCreationData) (*domain.Board, error) {
	if err := b.validateCreation(data); err != nil {
		return nil, err
	}
	return b.storage.CreateBoard(data, b.now())
}

func (b *Board) Get(id domain.BoardId) (*domain.Board, error) {
	return b.storage.GetBoard(id)
}

func (b *Board) GetAll() ([]domain.Board, error) {
	return b.storage.GetBoards()
}

// Close is idempotent: closing an already-closed or expired board is a
// no-op, never an error.
func (b *Board) Close(id domain.BoardId, actor domain.ActorId) error {
	return b.storage.CloseBoard(id, b.now())
}

// UpdatePolicy edits policy fields, allowed only while the board is open.
func (b *Board) UpdatePolicy(id domain.BoardId, patch domain.BoardPolicyPatch) (*domain.Board, error) {
	if patch.CooldownSeconds != nil && *patch.CooldownSeconds < 0 {
		return nil, internal_errors.BadRequest("Cooldown can't be negative")
	}
	return b.storage.UpdateBoardPolicy(id, patch, b.now())
}
