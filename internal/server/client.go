package server

import (
	"net/http"
	"time"

	"dungeon-core/internal/network"
	"dungeon-core/pkg/api"
	"dungeon-core/pkg/logger"
	"dungeon-core/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и Broadcaster
type Client struct {
	Hub  *network.Broadcaster
	Conn *websocket.Conn
	ID   string
	Send chan api.Frame
	log  *logrus.Entry
}

// NewClient регистрирует сессию в хабе и ставит в очередь INIT-кадр
// (последний опубликованный ход), если он уже есть.
func NewClient(hub *network.Broadcaster, conn *websocket.Conn) *Client {
	id := utils.NewSessionID()
	c := &Client{
		Hub:  hub,
		Conn: conn,
		ID:   id,
		Send: hub.Register(id),
		log:  logger.Log.WithField("session_id", id),
	}
	c.log.Info("Client connected")

	if latest, ok := hub.Latest(); ok {
		latest.Type = api.FrameTypeInit
		hub.SendTo(id, latest)
	}
	return c
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS Error")
			}
			break
		}
		c.Hub.SendTo(c.ID, c.handle(cmd))
	}
}

// handle формирует ответ на команду по последнему кадру.
func (c *Client) handle(cmd api.ClientCommand) api.Frame {
	latest, ok := c.Hub.Latest()

	if err := cmd.Validate(); err != nil {
		c.log.WithError(err).Warn("Rejected client command")
		return errorFrame(latest.Tick, err.Error())
	}
	if !ok {
		return errorFrame(0, "no tick has been published yet")
	}

	switch cmd.Action {
	case api.ActionInspect:
		p, _ := cmd.Position()
		return Inspect(latest, p)
	default:
		latest.Type = api.FrameTypeInit
		return latest
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
