package handler

import (
	"net/http"

	"wedbricks/internal/domain/notification"
	"wedbricks/internal/services"
	"wedbricks/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// BookingHandler is the collaborator entry point for the booking and
// admin subsystems: they report lifecycle events here, the delivery
// layer persists and pushes the resulting notification.
type BookingHandler struct {
	delivery *services.DeliveryService
}

func NewBookingHandler(delivery *services.DeliveryService) *BookingHandler {
	return &BookingHandler{delivery: delivery}
}

func (h *BookingHandler) EmitEvent(c *gin.Context) {
	var req httpdto.BookingEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	notif, err := h.delivery.EmitNotification(c.Request.Context(), services.EmitNotificationInput{
		SenderID:     req.SenderID,
		SenderKind:   notification.ParticipantKind(req.SenderKind),
		ReceiverID:   req.ReceiverID,
		ReceiverKind: notification.ParticipantKind(req.ReceiverKind),
		Type:         req.Type,
		Message:      req.Message,
		Link:         req.Link,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(notif))
}
