package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gridplace-dev/gridplace/internal/domain"
	"github.com/gridplace-dev/gridplace/internal/hub"
	mw "github.com/gridplace-dev/gridplace/internal/middleware"
	"github.com/gridplace-dev/gridplace/internal/service"
)

// func-field mocks for each service dependency

type MockBoardService struct {
	createFunc       func(data domain.BoardCreationData) (*domain.Board, error)
	getFunc          func(id domain.BoardId) (*domain.Board, error)
	getAllFunc       func() ([]domain.Board, error)
	closeFunc        func(id domain.BoardId, actor domain.ActorId) error
	updatePolicyFunc func(id domain.BoardId, patch domain.BoardPolicyPatch) (*domain.Board, error)
}

func (m *MockBoardService) Create(data domain.BoardCreationData) (*domain.Board, error) {
	if m.createFunc != nil {
		return m.createFunc(data)
	}
	return &domain.Board{Id: 1}, nil
}

func (m *MockBoardService) Get(id domain.BoardId) (*domain.Board, error) {
	if m.getFunc != nil {
		return m.getFunc(id)
	}
	return &domain.Board{Id: id}, nil
}

func (m *MockBoardService) GetAll() ([]domain.Board, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc()
	}
	return nil, nil
}

func (m *MockBoardService) Close(id domain.BoardId, actor domain.ActorId) error {
	if m.closeFunc != nil {
		return m.closeFunc(id, actor)
	}
	return nil
}

func (m *MockBoardService) UpdatePolicy(id domain.BoardId, patch domain.BoardPolicyPatch) (*domain.Board, error) {
	if m.updatePolicyFunc != nil {
		return m.updatePolicyFunc(id, patch)
	}
	return &domain.Board{Id: id}, nil
}

type MockPlacementService struct {
	placeFunc    func(ctx context.Context, req service.PlacementRequest) (*domain.Cell, error)
	snapshotFunc func(boardId domain.BoardId) ([]domain.Cell, error)
}

func (m *MockPlacementService) Place(ctx context.Context, req service.PlacementRequest) (*domain.Cell, error) {
	if m.placeFunc != nil {
		return m.placeFunc(ctx, req)
	}
	return &domain.Cell{BoardId: req.BoardId, X: req.X, Y: req.Y, Color: req.Color, ModificationCount: 1}, nil
}

func (m *MockPlacementService) Snapshot(boardId domain.BoardId) ([]domain.Cell, error) {
	if m.snapshotFunc != nil {
		return m.snapshotFunc(boardId)
	}
	return nil, nil
}

type MockHistoryService struct {
	rangeFunc   func(boardId domain.BoardId, from, to *time.Time) ([]domain.HistoryEntry, error)
	stateAtFunc func(boardId domain.BoardId, at time.Time) ([]domain.Cell, error)
}

func (m *MockHistoryService) Range(boardId domain.BoardId, from, to *time.Time) ([]domain.HistoryEntry, error) {
	if m.rangeFunc != nil {
		return m.rangeFunc(boardId, from, to)
	}
	return nil, nil
}

func (m *MockHistoryService) StateAt(boardId domain.BoardId, at time.Time) ([]domain.Cell, error) {
	if m.stateAtFunc != nil {
		return m.stateAtFunc(boardId, at)
	}
	return nil, nil
}

type MockContributionService struct {
	listFunc func(boardId domain.BoardId) ([]domain.Contributor, error)
}

func (m *MockContributionService) List(boardId domain.BoardId) ([]domain.Contributor, error) {
	if m.listFunc != nil {
		return m.listFunc(boardId)
	}
	return nil, nil
}

type MockPinger struct {
	err error
}

func (m *MockPinger) Ping(ctx context.Context) error { return m.err }

type mocks struct {
	board        *MockBoardService
	placement    *MockPlacementService
	history      *MockHistoryService
	contribution *MockContributionService
	pinger       *MockPinger
}

func newTestHandler() (*Handler, *mocks) {
	m := &mocks{
		board:        &MockBoardService{},
		placement:    &MockPlacementService{},
		history:      &MockHistoryService{},
		contribution: &MockContributionService{},
		pinger:       &MockPinger{},
	}
	h := New(m.board, m.placement, m.history, m.contribution, nil, hub.New(), m.pinger)
	return h, m
}

func createRequest(t *testing.T, method, url string, body []byte) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, url, bytes.NewBuffer(body))
}

// withBoardParam attaches a chi route context carrying the {board} URL param.
func withBoardParam(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("board", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withActor(r *http.Request, actor *domain.Actor) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), mw.ActorClaimsKey, actor))
}
