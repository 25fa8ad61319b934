package services

import (
	"context"
	"time"

	"wedbricks/internal/domain/chat"
	"wedbricks/internal/domain/notification"
	"wedbricks/internal/events"
	"wedbricks/internal/redis"
	"wedbricks/internal/repository"
	wedbricks_errors "wedbricks/pkg/errors"
	"wedbricks/pkg/logger"

	"github.com/google/uuid"
)

// Broadcaster is the live-delivery side of the coordinator. The hub
// implements it; delivery through it never fails, it just reaches
// whoever is connected.
type Broadcaster interface {
	Broadcast(room, event string, payload any)
	BroadcastToParticipant(participantID, event string, payload any) bool
	IsOnline(participantID string) bool
}

// SendMessageInput carries one chat message send.
type SendMessageInput struct {
	ChatID     uuid.UUID
	SenderID   string
	ReceiverID string
	Content    string
}

// EmitNotificationInput is the collaborator-facing notification event
// (booking lifecycle, admin actions).
type EmitNotificationInput struct {
	SenderID     string
	SenderKind   notification.ParticipantKind
	ReceiverID   string
	ReceiverKind notification.ParticipantKind
	Type         string
	Message      string
	Link         string
}

// BookingUpdate is the live-only booking status frame.
type BookingUpdate struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

// DeliveryService orchestrates every domain event the same way:
// persist the durable record first, then project it to whoever is
// connected. Durability is primary; live delivery is best effort.
type DeliveryService struct {
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
	notifRepo   repository.NotificationRepository
	broadcaster Broadcaster
	unreadCache *redis.UnreadCache
	log         *logger.Logger
}

// NewDeliveryService wires the coordinator. unreadCache may be nil.
func NewDeliveryService(
	chatRepo repository.ChatRepository,
	messageRepo repository.MessageRepository,
	notifRepo repository.NotificationRepository,
	broadcaster Broadcaster,
	unreadCache *redis.UnreadCache,
	log *logger.Logger,
) *DeliveryService {
	return &DeliveryService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		notifRepo:   notifRepo,
		broadcaster: broadcaster,
		unreadCache: unreadCache,
		log:         log,
	}
}

// SendChatMessage handles one message send end to end: durable append,
// unread recompute, fan-out to the chat room and the receiver's
// personal channels, and a durable notification with a live push when
// the receiver is registered.
func (s *DeliveryService) SendChatMessage(ctx context.Context, in SendMessageInput) (chat.Message, error) {
	if in.SenderID == "" || in.ReceiverID == "" || in.Content == "" {
		return chat.Message{}, wedbricks_errors.ErrInvalidInput
	}

	now := time.Now()
	if err := s.chatRepo.Touch(ctx, in.ChatID, now); err != nil {
		return chat.Message{}, err
	}

	msg := chat.Message{
		ID:        uuid.New(),
		ChatID:    in.ChatID,
		Sender:    in.SenderID,
		Receiver:  in.ReceiverID,
		Content:   in.Content,
		Read:      false,
		CreatedAt: now,
	}
	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		return chat.Message{}, err
	}

	count, err := s.messageRepo.CountUnread(ctx, in.ReceiverID)
	if err != nil {
		return chat.Message{}, err
	}
	s.refreshUnreadCache(ctx, in.ReceiverID, count)

	s.broadcaster.Broadcast(events.ChatRoom(in.ChatID), events.EventReceiveMessage, msg)

	// The coordinator does not know whether the receiver is a user or a
	// vendor; it pushes to both personal channels and lets the empty
	// one no-op.
	s.broadcaster.Broadcast(events.UserRoom(in.ReceiverID), events.EventUnreadUpdate, count)
	s.broadcaster.Broadcast(events.VendorRoom(in.ReceiverID), events.EventUnreadUpdate, count)

	notif := notification.Notification{
		ID:           uuid.New(),
		SenderID:     in.SenderID,
		SenderKind:   notification.KindUser,
		ReceiverID:   in.ReceiverID,
		ReceiverKind: notification.KindVendor,
		Type:         notification.TypeMessage,
		Message:      "New message received",
		Link:         "/vendor-chats",
		CreatedAt:    now,
	}
	if err := s.notifRepo.Create(ctx, &notif); err != nil {
		return chat.Message{}, err
	}

	// Live push only when the receiver has a registered session; the
	// durable row above is the offline fallback.
	if s.broadcaster.IsOnline(in.ReceiverID) {
		s.broadcaster.BroadcastToParticipant(in.ReceiverID, events.EventNewNotification, notif)
	}

	return msg, nil
}

// MarkSeen transitions every unread message in the chat addressed to
// the participant to read, then re-broadcasts the lower count.
// Idempotent: a second call finds nothing to transition.
func (s *DeliveryService) MarkSeen(ctx context.Context, chatID uuid.UUID, participantID string) error {
	if participantID == "" {
		return wedbricks_errors.ErrInvalidInput
	}

	if err := s.messageRepo.MarkChatRead(ctx, chatID, participantID); err != nil {
		return err
	}

	count, err := s.messageRepo.CountUnread(ctx, participantID)
	if err != nil {
		return err
	}
	s.refreshUnreadCache(ctx, participantID, count)

	s.broadcaster.Broadcast(events.UserRoom(participantID), events.EventUnreadUpdate, count)
	s.broadcaster.Broadcast(events.VendorRoom(participantID), events.EventUnreadUpdate, count)
	return nil
}

// EmitNotification persists a directed notification and projects it to
// the receiver's kind-qualified personal channel. The caller already
// knows the receiver's kind, so exactly one room is targeted.
func (s *DeliveryService) EmitNotification(ctx context.Context, in EmitNotificationInput) (notification.Notification, error) {
	if in.ReceiverID == "" || in.Type == "" || !in.ReceiverKind.Valid() || !in.SenderKind.Valid() {
		return notification.Notification{}, wedbricks_errors.ErrInvalidInput
	}

	notif := notification.Notification{
		ID:           uuid.New(),
		SenderID:     in.SenderID,
		SenderKind:   in.SenderKind,
		ReceiverID:   in.ReceiverID,
		ReceiverKind: in.ReceiverKind,
		Type:         in.Type,
		Message:      in.Message,
		Link:         in.Link,
		CreatedAt:    time.Now(),
	}
	if err := s.notifRepo.Create(ctx, &notif); err != nil {
		return notification.Notification{}, err
	}

	s.broadcaster.Broadcast(events.PersonalRoom(string(in.ReceiverKind), in.ReceiverID), events.EventNewNotification, notif)
	return notif, nil
}

// BookingStatusChanged relays a status change to both parties. Nothing
// durable: booking state lives with the booking subsystem.
func (s *DeliveryService) BookingStatusChanged(bookingID, status, userID, vendorID string) {
	update := BookingUpdate{BookingID: bookingID, Status: status}
	s.broadcaster.Broadcast(events.UserRoom(userID), events.EventBookingUpdated, update)
	s.broadcaster.Broadcast(events.VendorRoom(vendorID), events.EventBookingUpdated, update)
}

func (s *DeliveryService) refreshUnreadCache(ctx context.Context, participantID string, count int64) {
	if s.unreadCache == nil {
		return
	}
	if err := s.unreadCache.Set(ctx, participantID, count); err != nil {
		s.log.Warnf("unread cache refresh failed for %s: %v", participantID, err)
	}
}
