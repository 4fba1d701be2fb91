package controllers

import (
	"errors"

	middleware "aidea-server/middlewares"
	"aidea-server/models"
	service "aidea-server/services"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type BoardController struct {
	service *service.BoardService
	logger  *log.Logger
}

func NewBoardController(boardService *service.BoardService, logger *log.Logger) *BoardController {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardController{service: boardService, logger: logger}
}

func (bc *BoardController) GetBoard(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	board, err := bc.service.GetBoard(c.UserContext(), userID)
	if err != nil {
		bc.logger.WithError(err).WithField("user", userID).Error("Error getting board")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": storageMessage(err, "Could not retrieve board data")})
	}
	return c.Status(fiber.StatusOK).JSON(board)
}

func (bc *BoardController) UpdateBoard(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var board models.Board
	if err := c.BodyParser(&board); err != nil {
		bc.logger.WithError(err).WithField("user", userID).Error("Error parsing board")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update board"})
	}

	if err := bc.service.PutBoard(c.UserContext(), userID, board); err != nil {
		if errors.Is(err, models.ErrInvalidBoard) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		bc.logger.WithError(err).WithField("user", userID).Error("Error updating board")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": storageMessage(err, "Could not update board")})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func storageMessage(err error, fallback string) string {
	if errors.Is(err, service.ErrStorageUnavailable) {
		return "Database not initialized"
	}
	return fallback
}
