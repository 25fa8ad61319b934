package repository

import (
	"context"
	"time"

	"wedbricks/internal/domain/chat"
	"wedbricks/internal/domain/notification"

	"github.com/google/uuid"
)

// ChatRepository is the durable store for chat threads.
type ChatRepository interface {
	// FindOrCreate returns the chat for a (user, vendor) pair, creating
	// it if absent. Idempotent.
	FindOrCreate(ctx context.Context, userID, vendorID string) (chat.Chat, error)
	GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error)
	ListByUser(ctx context.Context, userID string) ([]chat.Chat, error)
	ListByVendor(ctx context.Context, vendorID string) ([]chat.Chat, error)
	// Touch advances the chat's activity timestamp, used to order chat
	// lists by recency.
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}

// MessageRepository is the durable store for ordered messages within a
// chat, including read state.
type MessageRepository interface {
	Create(ctx context.Context, m *chat.Message) error
	ListByChat(ctx context.Context, chatID uuid.UUID) ([]chat.Message, error)
	LatestByChat(ctx context.Context, chatID uuid.UUID) (chat.Message, error)
	// CountUnread counts unread messages addressed to a participant
	// across all chats. The client renders one aggregate badge.
	CountUnread(ctx context.Context, receiverID string) (int64, error)
	// MarkChatRead transitions read=false to true for every message in
	// the chat addressed to the participant.
	MarkChatRead(ctx context.Context, chatID uuid.UUID, receiverID string) error
	// MarkChatReadExceptSender marks everything in the chat not sent by
	// the participant. Kept for the legacy REST read endpoint.
	MarkChatReadExceptSender(ctx context.Context, chatID uuid.UUID, senderID string) error
}

// NotificationRepository is the durable store for directed notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *notification.Notification) error
	ListByReceiver(ctx context.Context, receiverID string, kind notification.ParticipantKind) ([]notification.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) (notification.Notification, error)
}
