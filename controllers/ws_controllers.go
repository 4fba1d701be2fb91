package controllers

import (
	service "aidea-server/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	log "github.com/sirupsen/logrus"
)

type BoardSocketController struct {
	hub    *service.BoardHub
	logger *log.Logger
}

func NewBoardSocketController(hub *service.BoardHub, logger *log.Logger) *BoardSocketController {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardSocketController{hub: hub, logger: logger}
}

// RequireUpgrade rejects plain HTTP requests to the websocket endpoint.
func (bc *BoardSocketController) RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// HandleWebSocket keeps the connection subscribed to its user's board until
// the client goes away. Incoming messages are ignored.
func (bc *BoardSocketController) HandleWebSocket(c *websocket.Conn) {
	userID, _ := c.Locals("userID").(string)
	bc.hub.Subscribe(userID, c)
	defer func() {
		bc.hub.Unsubscribe(userID, c)
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			bc.logger.WithError(err).WithField("user", userID).Debug("board socket closed")
			return
		}
	}
}
