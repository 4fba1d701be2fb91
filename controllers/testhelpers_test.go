package controllers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"aidea-server/configs"
	middleware "aidea-server/middlewares"
	"aidea-server/models"
	"aidea-server/repository"
	service "aidea-server/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const testUserID = "user123"

type MockBoardRepository struct {
	data    map[string]models.Board
	saveErr error
	mu      sync.RWMutex
}

func NewMockBoardRepository() *MockBoardRepository {
	return &MockBoardRepository{data: make(map[string]models.Board)}
}

func (m *MockBoardRepository) FindBoard(ctx context.Context, userID string) (models.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	board, ok := m.data[userID]
	if !ok {
		return models.Board{}, repository.ErrBoardNotFound
	}
	return board, nil
}

func (m *MockBoardRepository) SaveBoard(ctx context.Context, userID string, board models.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[userID] = board
	return nil
}

func (m *MockBoardRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// aiStub is a fake generative endpoint that counts calls.
type aiStub struct {
	server *httptest.Server
	mu     sync.Mutex
	calls  int
}

func newAIStub(t *testing.T, status int, body string) *aiStub {
	t.Helper()
	stub := &aiStub{}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.mu.Lock()
		stub.calls++
		stub.mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *aiStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func candidate(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":"` + text + `"}]}}]}`
}

type testApp struct {
	app *fiber.App
	hub *service.BoardHub
}

func quietLogger() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupApp(t *testing.T, repo repository.BoardRepositoryInterface, ai *aiStub) testApp {
	t.Helper()
	logger := quietLogger()
	hub := service.NewBoardHub(logger)

	endpoint := "http://127.0.0.1:1/unused"
	if ai != nil {
		endpoint = ai.server.URL
	}
	aiClient := service.NewGenerativeClient(endpoint, "test-key", 2*time.Second, nil, logger)

	app := fiber.New(configs.FiberConfig())
	app.Use(middleware.UserContext(testUserID))
	api := app.Group("/api")
	boardController := NewBoardController(service.NewBoardService(repo, hub, logger), logger)
	api.Get("/board", boardController.GetBoard)
	api.Post("/board", boardController.UpdateBoard)

	aiController := NewAIController(service.NewIdeaService(aiClient), service.NewClusterService(), logger)
	api.Post("/ai/suggest", aiController.Suggest)
	api.Post("/ai/summarize", aiController.Summarize)
	api.Post("/ai/visualize", aiController.Visualize)
	api.Post("/ai/cluster", aiController.Cluster)

	socketController := NewBoardSocketController(hub, logger)
	app.Use("/ws", socketController.RequireUpgrade)
	app.Get("/ws/board", websocket.New(socketController.HandleWebSocket))
	return testApp{app: app, hub: hub}
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}
