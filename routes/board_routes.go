package routes

import (
	"aidea-server/controllers"

	"github.com/gofiber/fiber/v2"
)

func BoardRoutes(router fiber.Router, boardController *controllers.BoardController) {
	router.Get("/board", boardController.GetBoard)
	router.Post("/board", boardController.UpdateBoard)
}
