package service

import (
	"sync"
	"time"

	"aidea-server/models"

	"github.com/bytedance/sonic"
	"github.com/gofiber/websocket/v2"
	log "github.com/sirupsen/logrus"
)

// WSConn is the part of a websocket connection the hub writes to.
type WSConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// boardWriteWait bounds a single write to a subscriber.
const boardWriteWait = 10 * time.Second

// subscriber serializes writes to one connection; the hub mutex is never held
// while writing.
type subscriber struct {
	conn WSConn
	mu   sync.Mutex
}

func (s *subscriber) write(message []byte, wait time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(wait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, message)
}

type boardUpdate struct {
	Action string       `json:"action"`
	Board  models.Board `json:"board"`
}

// BoardHub fans board writes out to every websocket opened by the same user.
type BoardHub struct {
	rooms     map[string]map[WSConn]*subscriber
	mu        sync.Mutex
	writeWait time.Duration
	logger    *log.Logger
}

func NewBoardHub(logger *log.Logger) *BoardHub {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &BoardHub{
		rooms:     make(map[string]map[WSConn]*subscriber),
		writeWait: boardWriteWait,
		logger:    logger,
	}
}

func (h *BoardHub) Subscribe(userID string, conn WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.rooms[userID]; !exists {
		h.rooms[userID] = make(map[WSConn]*subscriber)
	}
	if _, exists := h.rooms[userID][conn]; !exists {
		h.rooms[userID][conn] = &subscriber{conn: conn}
	}
	h.logger.WithField("user", userID).Debug("board subscriber joined")
}

// Unsubscribe drops conn and removes the room once it is empty.
func (h *BoardHub) Unsubscribe(userID string, conn WSConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, exists := h.rooms[userID]
	if !exists {
		return
	}
	delete(clients, conn)
	if len(clients) == 0 {
		delete(h.rooms, userID)
	}
}

func (h *BoardHub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[userID])
}

// PublishBoard sends the board to all of the user's connections. Writes run
// outside the hub lock, each bounded by the write deadline. A connection that
// fails a write is closed and dropped.
func (h *BoardHub) PublishBoard(userID string, board models.Board) {
	message, err := sonic.Marshal(boardUpdate{Action: "boardUpdated", Board: board})
	if err != nil {
		h.logger.WithError(err).Error("failed to encode board update")
		return
	}

	h.mu.Lock()
	subscribers := make([]*subscriber, 0, len(h.rooms[userID]))
	for _, sub := range h.rooms[userID] {
		subscribers = append(subscribers, sub)
	}
	h.mu.Unlock()

	for _, sub := range subscribers {
		if err := sub.write(message, h.writeWait); err != nil {
			h.logger.WithError(err).WithField("user", userID).Warn("dropping board subscriber")
			_ = sub.conn.Close()
			h.drop(userID, sub)
		}
	}
}

// drop removes sub unless the connection has since re-subscribed.
func (h *BoardHub) drop(userID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, exists := h.rooms[userID]
	if !exists || clients[sub.conn] != sub {
		return
	}
	delete(clients, sub.conn)
	if len(clients) == 0 {
		delete(h.rooms, userID)
	}
}
