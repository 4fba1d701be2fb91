package controllers

import (
	"fmt"

	service "aidea-server/services"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type AIController struct {
	ideas    *service.IdeaService
	clusters *service.ClusterService
	logger   *log.Logger
}

func NewAIController(ideas *service.IdeaService, clusters *service.ClusterService, logger *log.Logger) *AIController {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &AIController{ideas: ideas, clusters: clusters, logger: logger}
}

func (ac *AIController) Suggest(c *fiber.Ctx) error {
	var request struct {
		Text *string `json:"text"`
	}
	if err := c.BodyParser(&request); err != nil {
		return ac.fail(c, err, "Failed to get AI suggestions")
	}
	if request.Text == nil {
		return ac.fail(c, errMissingField("text"), "Failed to get AI suggestions")
	}

	ideas, err := ac.ideas.Suggest(c.UserContext(), *request.Text)
	if err != nil {
		ac.logger.WithError(err).Error("AI suggestion error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to get AI suggestions"})
	}
	return c.Status(fiber.StatusOK).JSON(ideas)
}

func (ac *AIController) Summarize(c *fiber.Ctx) error {
	var request struct {
		Cards []string `json:"cards"`
	}
	if err := c.BodyParser(&request); err != nil {
		return ac.fail(c, err, "Failed to generate summary")
	}

	summary, err := ac.ideas.Summarize(c.UserContext(), request.Cards)
	if err != nil {
		ac.logger.WithError(err).Error("AI summary error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate summary"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"summary": summary})
}

// Visualize returns a placeholder image, not a generated one.
func (ac *AIController) Visualize(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"imageData": ac.ideas.Visualize()})
}

func (ac *AIController) Cluster(c *fiber.Ctx) error {
	var request struct {
		Cards map[string]string `json:"cards"`
	}
	if err := c.BodyParser(&request); err != nil {
		return ac.fail(c, err, "Failed to cluster ideas")
	}

	clusters, err := ac.clusters.Cluster(request.Cards)
	if err != nil {
		ac.logger.WithError(err).WithField("cards", len(request.Cards)).Error("Clustering error")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cluster ideas"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"clusters": clusters})
}

// fail logs a request that could not be read and answers with the route's
// generic 500 message.
func (ac *AIController) fail(c *fiber.Ctx, err error, message string) error {
	ac.logger.WithError(err).WithField("path", c.Path()).Error("Invalid AI request")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": message})
}

func errMissingField(name string) error {
	return fmt.Errorf("missing field %q", name)
}
