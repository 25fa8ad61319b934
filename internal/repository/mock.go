package repository

import (
	"context"
	"time"

	"wedbricks/internal/domain/chat"
	"wedbricks/internal/domain/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) FindOrCreate(ctx context.Context, userID, vendorID string) (chat.Chat, error) {
	args := m.Called(ctx, userID, vendorID)
	return args.Get(0).(chat.Chat), args.Error(1)
}
func (m *MockChatRepository) GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(chat.Chat), args.Error(1)
}
func (m *MockChatRepository) ListByUser(ctx context.Context, userID string) ([]chat.Chat, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]chat.Chat), args.Error(1)
}
func (m *MockChatRepository) ListByVendor(ctx context.Context, vendorID string) ([]chat.Chat, error) {
	args := m.Called(ctx, vendorID)
	return args.Get(0).([]chat.Chat), args.Error(1)
}
func (m *MockChatRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *chat.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
func (m *MockMessageRepository) ListByChat(ctx context.Context, chatID uuid.UUID) ([]chat.Message, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).([]chat.Message), args.Error(1)
}
func (m *MockMessageRepository) LatestByChat(ctx context.Context, chatID uuid.UUID) (chat.Message, error) {
	args := m.Called(ctx, chatID)
	return args.Get(0).(chat.Message), args.Error(1)
}
func (m *MockMessageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	args := m.Called(ctx, receiverID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockMessageRepository) MarkChatRead(ctx context.Context, chatID uuid.UUID, receiverID string) error {
	args := m.Called(ctx, chatID, receiverID)
	return args.Error(0)
}
func (m *MockMessageRepository) MarkChatReadExceptSender(ctx context.Context, chatID uuid.UUID, senderID string) error {
	args := m.Called(ctx, chatID, senderID)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepository) ListByReceiver(ctx context.Context, receiverID string, kind notification.ParticipantKind) ([]notification.Notification, error) {
	args := m.Called(ctx, receiverID, kind)
	return args.Get(0).([]notification.Notification), args.Error(1)
}
func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (notification.Notification, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(notification.Notification), args.Error(1)
}
