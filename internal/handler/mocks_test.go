package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/handler"
	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) CreateWithAdmin(ctx context.Context, board *model.Board, adminUserID uuid.UUID) error {
	return m.Called(ctx, board, adminUserID).Error(0)
}

func (m *MockBoardRepository) ListWithAdmins(ctx context.Context) ([]model.BoardWithAdmin, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.BoardWithAdmin), args.Error(1)
}

type MockBoardUserRepository struct {
	mock.Mock
}

func (m *MockBoardUserRepository) Create(ctx context.Context, membership *model.BoardUser) error {
	return m.Called(ctx, membership).Error(0)
}

func (m *MockBoardUserRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.BoardUser, error) {
	args := m.Called(ctx, boardID)
	return args.Get(0).([]model.BoardUser), args.Error(1)
}

type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) Create(ctx context.Context, list *model.List) error {
	return m.Called(ctx, list).Error(0)
}

func (m *MockListRepository) ListByBoard(ctx context.Context, boardID uuid.UUID) ([]model.List, error) {
	args := m.Called(ctx, boardID)
	return args.Get(0).([]model.List), args.Error(1)
}

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *model.Card) error {
	return m.Called(ctx, card).Error(0)
}

func (m *MockCardRepository) ListByList(ctx context.Context, listID uuid.UUID) ([]model.Card, error) {
	args := m.Called(ctx, listID)
	return args.Get(0).([]model.Card), args.Error(1)
}

type MockCardUserRepository struct {
	mock.Mock
}

func (m *MockCardUserRepository) Create(ctx context.Context, ownership *model.CardUser) error {
	return m.Called(ctx, ownership).Error(0)
}

func (m *MockCardUserRepository) ListByCard(ctx context.Context, cardID uuid.UUID) ([]model.CardUser, error) {
	args := m.Called(ctx, cardID)
	return args.Get(0).([]model.CardUser), args.Error(1)
}

type mocks struct {
	users      *MockUserRepository
	boards     *MockBoardRepository
	boardUsers *MockBoardUserRepository
	lists      *MockListRepository
	cards      *MockCardRepository
	cardUsers  *MockCardUserRepository
}

func setupTest() (*gin.Engine, *mocks) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	m := &mocks{
		users:      new(MockUserRepository),
		boards:     new(MockBoardRepository),
		boardUsers: new(MockBoardUserRepository),
		lists:      new(MockListRepository),
		cards:      new(MockCardRepository),
		cardUsers:  new(MockCardUserRepository),
	}

	userHandler := handler.NewUserHandler(m.users, nil)
	boardHandler := handler.NewBoardHandler(m.boards, nil)
	boardUserHandler := handler.NewBoardUserHandler(m.boardUsers, nil)
	listHandler := handler.NewListHandler(m.lists, nil)
	cardHandler := handler.NewCardHandler(m.cards, nil)
	cardUserHandler := handler.NewCardUserHandler(m.cardUsers, nil)

	r.GET("/users", userHandler.List)
	r.POST("/users", userHandler.Create)
	r.GET("/boards", boardHandler.List)
	r.POST("/boards", boardHandler.Create)
	r.GET("/boards/:boardId/users", boardUserHandler.List)
	r.POST("/boards/:boardId/users", boardUserHandler.Create)
	r.GET("/boards/:boardId/lists", listHandler.List)
	r.POST("/boards/:boardId/lists", listHandler.Create)
	r.GET("/lists/:listId/cards", cardHandler.List)
	r.POST("/lists/:listId/cards", cardHandler.Create)
	r.GET("/cards/:cardId/users", cardUserHandler.List)
	r.POST("/cards/:cardId/users", cardUserHandler.Create)

	return r, m
}

func (m *mocks) assertExpectations(t *testing.T) {
	m.users.AssertExpectations(t)
	m.boards.AssertExpectations(t)
	m.boardUsers.AssertExpectations(t)
	m.lists.AssertExpectations(t)
	m.cards.AssertExpectations(t)
	m.cardUsers.AssertExpectations(t)
}

func doJSON(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}
