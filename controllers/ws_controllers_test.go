package controllers

import (
	"net"
	"testing"
	"time"

	"aidea-server/models"

	"github.com/bytedance/sonic"
	"github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardSocket_RequiresUpgrade(t *testing.T) {
	app := setupApp(t, NewMockBoardRepository(), nil).app

	resp, _ := doJSON(t, app, "GET", "/ws/board", "")
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestBoardSocket_ReceivesUpdates(t *testing.T) {
	ta := setupApp(t, NewMockBoardRepository(), nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = ta.app.Listener(ln) }()
	t.Cleanup(func() { _ = ta.app.Shutdown() })

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws/board", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return ta.hub.Subscribers(testUserID) == 1 }, 2*time.Second, 10*time.Millisecond)

	payload := `{"cards":{"a":{"id":"a","content":"live"}},"columns":{"col-1":{"id":"col-1","title":"To Do","cardIds":["a"]}},"columnOrder":["col-1"]}`
	resp, _ := doJSON(t, ta.app, "POST", "/api/board", payload)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var update struct {
		Action string       `json:"action"`
		Board  models.Board `json:"board"`
	}
	require.NoError(t, sonic.Unmarshal(msg, &update))
	assert.Equal(t, "boardUpdated", update.Action)
	assert.Equal(t, "live", update.Board.Cards["a"].Content)

	conn.Close()
	assert.Eventually(t, func() bool { return ta.hub.Subscribers(testUserID) == 0 }, 2*time.Second, 10*time.Millisecond)
}
