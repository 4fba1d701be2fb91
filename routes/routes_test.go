package routes

import (
	"net/http/httptest"
	"testing"

	"aidea-server/configs"
	"aidea-server/controllers"
	middleware "aidea-server/middlewares"
	service "aidea-server/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesRegistered(t *testing.T) {
	hub := service.NewBoardHub(nil)
	app := fiber.New(configs.FiberConfig())
	app.Use(middleware.UserContext("user123"))
	api := app.Group("/api")
	BoardRoutes(api, controllers.NewBoardController(service.NewBoardService(nil, hub, nil), nil))
	AIRoutes(api, controllers.NewAIController(service.NewIdeaService(nil), service.NewClusterService(), nil))
	WebSocketRoutes(app, controllers.NewBoardSocketController(hub, nil))

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/api/board", fiber.StatusInternalServerError},
		{"POST", "/api/ai/visualize", fiber.StatusOK},
		{"GET", "/ws/board", fiber.StatusUpgradeRequired},
		{"GET", "/api/unknown", fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
