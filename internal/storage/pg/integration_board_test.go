package pg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridplace-dev/gridplace/internal/domain"
	internal_errors "github.com/gridplace-dev/gridplace/internal/errors"
)

func TestCreateAndGetBoard(t *testing.T) {
	truncateAll(t)
	now := testNow()
	data := defaultBoardData()
	data.Description = "draw **something**"

	created := mustCreateBoard(t, data, now)
	assert.NotZero(t, created.Id)
	assert.Equal(t, data.Name, created.Name)
	assert.Equal(t, data.Description, created.Description)
	assert.Equal(t, data.Width, created.Width)
	assert.Equal(t, data.Height, created.Height)
	assert.Equal(t, data.DurationMinutes, created.DurationMinutes)
	assert.Equal(t, data.CooldownSeconds, created.CooldownSeconds)
	assert.Equal(t, data.CreatorId, created.CreatorId)
	assert.True(t, created.AllowRedraw)
	assert.Nil(t, created.ClosedAt)
	assert.True(t, created.CreatedAt.Equal(now))

	fetched, err := storage.GetBoard(created.Id)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestGetBoardNotFound(t *testing.T) {
	truncateAll(t)

	_, err := storage.GetBoard(domain.BoardId(12345))
	var statusErr *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.StatusCode)
}

func TestGetBoards(t *testing.T) {
	truncateAll(t)
	now := testNow()

	first := defaultBoardData()
	first.Name = "first"
	second := defaultBoardData()
	second.Name = "second"
	mustCreateBoard(t, first, now.Add(-time.Minute))
	mustCreateBoard(t, second, now)

	boards, err := storage.GetBoards()
	require.NoError(t, err)
	require.Len(t, boards, 2)
	// newest first
	assert.Equal(t, "second", boards[0].Name)
	assert.Equal(t, "first", boards[1].Name)
}

func TestCloseBoard(t *testing.T) {
	truncateAll(t)
	now := testNow()
	board := mustCreateBoard(t, defaultBoardData(), now)

	closedAt := now.Add(time.Minute)
	require.NoError(t, storage.CloseBoard(board.Id, closedAt))

	fetched, err := storage.GetBoard(board.Id)
	require.NoError(t, err)
	require.NotNil(t, fetched.ClosedAt)
	assert.True(t, fetched.ClosedAt.Equal(closedAt))

	// a second close keeps the original timestamp
	require.NoError(t, storage.CloseBoard(board.Id, closedAt.Add(time.Hour)))
	fetched, err = storage.GetBoard(board.Id)
	require.NoError(t, err)
	assert.True(t, fetched.ClosedAt.Equal(closedAt))
}

func TestCloseBoardAfterExpiry(t *testing.T) {
	truncateAll(t)
	now := testNow()
	board := mustCreateBoard(t, defaultBoardData(), now)

	// closing past the expiry is a no-op: expiry already ended the board
	afterExpiry := now.Add(time.Duration(board.DurationMinutes)*time.Minute + time.Second)
	require.NoError(t, storage.CloseBoard(board.Id, afterExpiry))

	fetched, err := storage.GetBoard(board.Id)
	require.NoError(t, err)
	assert.Nil(t, fetched.ClosedAt)
	assert.False(t, fetched.IsOpenForWrites(afterExpiry))
}

func TestCloseBoardNotFound(t *testing.T) {
	truncateAll(t)

	err := storage.CloseBoard(domain.BoardId(12345), testNow())
	var statusErr *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.StatusCode)
}

func TestUpdateBoardPolicy(t *testing.T) {
	truncateAll(t)
	now := testNow()
	board := mustCreateBoard(t, defaultBoardData(), now)

	allowRedraw := false
	cooldown := 30
	updated, err := storage.UpdateBoardPolicy(board.Id, domain.BoardPolicyPatch{
		AllowRedraw:     &allowRedraw,
		CooldownSeconds: &cooldown,
	}, now.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, updated.AllowRedraw)
	assert.Equal(t, 30, updated.CooldownSeconds)
	// untouched fields keep their values
	assert.Equal(t, board.Description, updated.Description)
	assert.Equal(t, board.VisitorMode, updated.VisitorMode)
}

func TestUpdateBoardPolicyClosed(t *testing.T) {
	truncateAll(t)
	now := testNow()
	board := mustCreateBoard(t, defaultBoardData(), now)
	require.NoError(t, storage.CloseBoard(board.Id, now.Add(time.Minute)))

	cooldown := 30
	_, err := storage.UpdateBoardPolicy(board.Id, domain.BoardPolicyPatch{CooldownSeconds: &cooldown}, now.Add(2*time.Minute))
	var statusErr *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 409, statusErr.StatusCode)
}

func TestUpdateBoardPolicyNotFound(t *testing.T) {
	truncateAll(t)

	cooldown := 30
	_, err := storage.UpdateBoardPolicy(domain.BoardId(12345), domain.BoardPolicyPatch{CooldownSeconds: &cooldown}, testNow())
	var statusErr *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 404, statusErr.StatusCode)
}
