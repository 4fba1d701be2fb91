package routes

import (
	"aidea-server/controllers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func WebSocketRoutes(router fiber.Router, socketController *controllers.BoardSocketController) {
	router.Use("/ws", socketController.RequireUpgrade)
	router.Get("/ws/board", websocket.New(socketController.HandleWebSocket))
}
