package routes

import (
	"aidea-server/controllers"

	"github.com/gofiber/fiber/v2"
)

func AIRoutes(router fiber.Router, aiController *controllers.AIController) {
	ai := router.Group("/ai")
	ai.Post("/suggest", aiController.Suggest)
	ai.Post("/summarize", aiController.Summarize)
	ai.Post("/visualize", aiController.Visualize)
	ai.Post("/cluster", aiController.Cluster)
}
