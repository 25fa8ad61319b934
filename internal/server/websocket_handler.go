package server

import (
	"net/http"

	"wedbricks/internal/services"
	"wedbricks/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler upgrades HTTP connections and starts the session
// pumps. Identity is established afterwards by an explicit register
// event, not at handshake time.
type WebSocketHandler struct {
	hub      *Hub
	delivery *services.DeliveryService
	log      *logger.Logger
}

func NewWebSocketHandler(hub *Hub, delivery *services.DeliveryService, log *logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, delivery: delivery, log: log}
}

func (h *WebSocketHandler) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorf("websocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, h.delivery, h.log)
	h.hub.AddClient(client)
	h.log.Infof("socket connected: %s", client.SessionID())

	go client.writePump()
	go client.readPump()
}
