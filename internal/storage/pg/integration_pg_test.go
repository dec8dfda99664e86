package pg

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gridplace-dev/gridplace/internal/config"
	"github.com/gridplace-dev/gridplace/internal/domain"
)

var storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()
	var container *postgres.PostgresContainer
	storage, container = mustSetup(ctx)
	defer teardown(ctx, storage, container)

	exitCode := m.Run()
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "gridplace"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithInitScripts(filepath.Join("migrations", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// First, we wait for the container to log readiness twice.
			// This is because it will restart itself after the first startup.
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	containerPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to obtain container port: %s", err)
	}
	port, err := strconv.Atoi(containerPort.Port())
	if err != nil {
		log.Fatalf("failed to obtain int container port: %s", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to obtain container host: %s", err)
	}

	storage, err := New(&config.Config{Private: config.Private{Pg: config.Pg{Host: host, Port: port, User: dbUser, Password: dbPassword, Dbname: dbName}}})
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	return storage, container
}

func teardown(ctx context.Context, storage *Storage, container *postgres.PostgresContainer) {
	if err := storage.Cleanup(); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

// truncateAll resets the schema between tests.
func truncateAll(t *testing.T) {
	t.Helper()
	_, err := storage.db.Exec(`TRUNCATE history, cells, contributors, boards RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func mustCreateBoard(t *testing.T, data domain.BoardCreationData, now time.Time) *domain.Board {
	t.Helper()
	board, err := storage.CreateBoard(data, now)
	require.NoError(t, err)
	return board
}

func defaultBoardData() domain.BoardCreationData {
	return domain.BoardCreationData{
		Name:            "main",
		Width:           10,
		Height:          10,
		DurationMinutes: 60,
		AllowRedraw:     true,
		CooldownSeconds: 5,
		CreatorId:       1,
	}
}

// mustPlace drives one full placement transaction the way the engine does:
// lock contributor, lock cell, append history, upsert cell, record
// contribution, commit.
func mustPlace(t *testing.T, boardId domain.BoardId, x, y int, color domain.Color, actorId domain.ActorId, name string, ts time.Time) *domain.Cell {
	t.Helper()
	tx, err := storage.BeginPlacement(context.Background())
	require.NoError(t, err)
	defer tx.Rollback()

	_, err = tx.ContributorForUpdate(boardId, actorId)
	require.NoError(t, err)
	_, err = tx.CellForUpdate(boardId, x, y)
	require.NoError(t, err)

	entry := &domain.HistoryEntry{BoardId: boardId, X: x, Y: y, Color: color, ActorId: actorId, ActorName: name, CreatedAt: ts}
	require.NoError(t, tx.AppendHistory(entry))
	require.NotZero(t, entry.Id)

	cell, err := tx.UpsertCell(boardId, x, y, color, actorId, ts)
	require.NoError(t, err)
	require.NoError(t, tx.RecordContribution(boardId, actorId, name, ts))
	require.NoError(t, tx.Commit())
	return cell
}

func testNow() time.Time {
	return time.Now().UTC().Round(time.Microsecond)
}
