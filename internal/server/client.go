package server

import (
	"context"
	"time"

	"wedbricks/internal/domain/notification"
	"wedbricks/internal/events"
	"wedbricks/internal/services"
	"wedbricks/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client represents a single WebSocket session. A session exists from
// transport handshake to transport close and is bound to at most one
// participant via an explicit registration event.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	sessionID     string
	participantID string
	personalRoom  string
	rooms         map[string]struct{}

	delivery *services.DeliveryService
	log      *logger.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, delivery *services.DeliveryService, log *logger.Logger) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: uuid.New().String(),
		rooms:     make(map[string]struct{}),
		delivery:  delivery,
		log:       log,
	}
}

// SessionID returns the transport session identifier.
func (c *Client) SessionID() string {
	return c.sessionID
}

// enqueue pushes a frame to the session's outbound buffer without
// blocking. A full buffer drops the frame; live delivery is best
// effort and the durable record already exists.
func (c *Client) enqueue(frame []byte) {
	select {
	case c.send <- frame:
	default:
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.RemoveClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Errorf("websocket unexpected close on session %s: %v", c.sessionID, err)
			}
			break
		}

		env, err := events.Decode(raw)
		if err != nil {
			c.log.Warnf("malformed frame on session %s: %v", c.sessionID, err)
			continue
		}
		c.handleEvent(env)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleEvent dispatches one client frame. Durable writes triggered
// here run on a background context: a disconnect mid-write does not
// cancel the write, it only tears down ephemeral state.
func (c *Client) handleEvent(env events.Envelope) {
	switch env.Event {
	case events.EventRegisterUser:
		id, err := decodeParticipantID(env.Data)
		if err != nil || id == "" {
			c.log.Warnf("registerUser without id on session %s", c.sessionID)
			return
		}
		c.hub.RegisterParticipant(c, id, events.UserRoom(id))

	case events.EventRegisterVendor:
		id, err := decodeParticipantID(env.Data)
		if err != nil || id == "" {
			c.log.Warnf("registerVendor without id on session %s", c.sessionID)
			return
		}
		c.hub.RegisterParticipant(c, id, events.VendorRoom(id))

	case events.EventJoinRoom:
		var p joinRoomPayload
		if err := unmarshalPayload(env.Data, &p); err != nil {
			return
		}
		chatID, err := uuid.Parse(p.ChatID)
		if err != nil {
			c.log.Warnf("joinRoom with invalid chat id %q", p.ChatID)
			return
		}
		c.hub.Join(c, events.ChatRoom(chatID))

	case events.EventSendMessage:
		var p sendMessagePayload
		if err := unmarshalPayload(env.Data, &p); err != nil {
			return
		}
		chatID, err := uuid.Parse(p.ChatID)
		if err != nil {
			c.log.Warnf("sendMessage with invalid chat id %q", p.ChatID)
			return
		}
		_, err = c.delivery.SendChatMessage(context.Background(), services.SendMessageInput{
			ChatID:     chatID,
			SenderID:   p.SenderID,
			ReceiverID: p.VendorID,
			Content:    p.Message,
		})
		if err != nil {
			c.log.Errorf("sendMessage failed on session %s: %v", c.sessionID, err)
		}

	case events.EventMarkSeen:
		var p markSeenPayload
		if err := unmarshalPayload(env.Data, &p); err != nil {
			return
		}
		chatID, err := uuid.Parse(p.ChatID)
		if err != nil {
			c.log.Warnf("markSeen with invalid chat id %q", p.ChatID)
			return
		}
		if err := c.delivery.MarkSeen(context.Background(), chatID, p.UserID); err != nil {
			c.log.Errorf("markSeen failed on session %s: %v", c.sessionID, err)
		}

	case events.EventBookingCreated:
		var p bookingEventPayload
		if err := unmarshalPayload(env.Data, &p); err != nil {
			return
		}
		_, err := c.delivery.EmitNotification(context.Background(), services.EmitNotificationInput{
			SenderID:     p.UserID,
			SenderKind:   notification.KindUser,
			ReceiverID:   p.VendorID,
			ReceiverKind: notification.KindVendor,
			Type:         notification.TypeBooking,
			Message:      "New booking request",
			Link:         "/vendor/bookings/" + p.BookingID,
		})
		if err != nil {
			c.log.Errorf("bookingCreated notification failed: %v", err)
		}

	case events.EventBookingCancelledByVendor:
		var p bookingEventPayload
		if err := unmarshalPayload(env.Data, &p); err != nil {
			return
		}
		_, err := c.delivery.EmitNotification(context.Background(), services.EmitNotificationInput{
			SenderID:     p.VendorID,
			SenderKind:   notification.KindVendor,
			ReceiverID:   p.UserID,
			ReceiverKind: notification.KindUser,
			Type:         notification.TypeBookingCancelled,
			Message:      "Booking cancelled by vendor",
			Link:         "/bookings/" + p.BookingID,
		})
		if err != nil {
			c.log.Errorf("bookingCancelledByVendor notification failed: %v", err)
		}

	case events.EventBookingStatusChanged:
		var p bookingStatusPayload
		if err := unmarshalPayload(env.Data, &p); err != nil {
			return
		}
		c.delivery.BookingStatusChanged(p.BookingID, p.Status, p.UserID, p.VendorID)

	default:
		c.log.Warnf("unknown event %q on session %s", env.Event, c.sessionID)
	}
}
