package services

import (
	"context"
	"testing"
	"time"

	"wedbricks/internal/domain/chat"
	"wedbricks/internal/repository"
	wedbricks_errors "wedbricks/pkg/errors"
	"wedbricks/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChatFixture() (*ChatService, *repository.MockChatRepository, *repository.MockMessageRepository) {
	chatRepo := &repository.MockChatRepository{}
	messageRepo := &repository.MockMessageRepository{}
	svc := NewChatService(chatRepo, messageRepo, nil, logger.New(logger.DevelopmentMode))
	return svc, chatRepo, messageRepo
}

func TestStartChat_ReturnsExistingThread(t *testing.T) {
	svc, chatRepo, _ := newChatFixture()

	existing := chat.Chat{ID: uuid.New(), UserID: "u1", VendorID: "v1"}
	chatRepo.On("FindOrCreate", mock.Anything, "u1", "v1").Return(existing, nil)

	got, err := svc.StartChat(context.Background(), "u1", "v1")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
}

func TestStartChat_RejectsMissingParticipant(t *testing.T) {
	svc, chatRepo, _ := newChatFixture()

	_, err := svc.StartChat(context.Background(), "", "v1")
	assert.ErrorIs(t, err, wedbricks_errors.ErrInvalidInput)
	_, err = svc.StartChat(context.Background(), "u1", "")
	assert.ErrorIs(t, err, wedbricks_errors.ErrInvalidInput)

	chatRepo.AssertNotCalled(t, "FindOrCreate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetUserChats_DecoratesWithLatestMessage(t *testing.T) {
	svc, chatRepo, messageRepo := newChatFixture()

	withHistory := chat.Chat{ID: uuid.New(), UserID: "u1", VendorID: "v1"}
	fresh := chat.Chat{ID: uuid.New(), UserID: "u1", VendorID: "v2"}
	chatRepo.On("ListByUser", mock.Anything, "u1").Return([]chat.Chat{withHistory, fresh}, nil)

	last := chat.Message{ID: uuid.New(), ChatID: withHistory.ID, Sender: "v1", Content: "See you then"}
	messageRepo.On("LatestByChat", mock.Anything, withHistory.ID).Return(last, nil)
	messageRepo.On("LatestByChat", mock.Anything, fresh.ID).Return(chat.Message{}, wedbricks_errors.ErrNotFound)

	summaries, err := svc.GetUserChats(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	require.NotNil(t, summaries[0].LastMessage)
	assert.Equal(t, "See you then", summaries[0].LastMessage.Content)
	assert.Nil(t, summaries[1].LastMessage, "a thread with no messages yet stays in the list")
}

func TestGetVendorChats_ListFailurePropagates(t *testing.T) {
	svc, chatRepo, _ := newChatFixture()

	chatRepo.On("ListByVendor", mock.Anything, "v1").Return([]chat.Chat(nil), wedbricks_errors.ErrServiceUnavailable)

	_, err := svc.GetVendorChats(context.Background(), "v1")
	assert.ErrorIs(t, err, wedbricks_errors.ErrServiceUnavailable)
}

func TestSaveMessage_TouchesThreadBeforeAppend(t *testing.T) {
	svc, chatRepo, messageRepo := newChatFixture()

	chatID := uuid.New()
	chatRepo.On("Touch", mock.Anything, chatID, mock.AnythingOfType("time.Time")).Return(nil)
	messageRepo.On("Create", mock.Anything, mock.AnythingOfType("*chat.Message")).Return(nil)

	msg, err := svc.SaveMessage(context.Background(), chatID, "u1", "v1", "Hello")
	require.NoError(t, err)
	assert.Equal(t, chatID, msg.ChatID)
	assert.False(t, msg.Read)
	assert.WithinDuration(t, time.Now(), msg.CreatedAt, time.Second)
}

func TestSaveMessage_UnknownThreadWritesNothing(t *testing.T) {
	svc, chatRepo, messageRepo := newChatFixture()

	chatID := uuid.New()
	chatRepo.On("Touch", mock.Anything, chatID, mock.Anything).Return(wedbricks_errors.ErrNotFound)

	_, err := svc.SaveMessage(context.Background(), chatID, "u1", "v1", "Hello")
	assert.ErrorIs(t, err, wedbricks_errors.ErrNotFound)
	messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMarkRead_SparesCallersOwnMessages(t *testing.T) {
	svc, _, messageRepo := newChatFixture()

	chatID := uuid.New()
	messageRepo.On("MarkChatReadExceptSender", mock.Anything, chatID, "u1").Return(nil)

	require.NoError(t, svc.MarkRead(context.Background(), chatID, "u1"))
	messageRepo.AssertExpectations(t)
}

func TestUnreadCount_FallsBackToStoreWithoutCache(t *testing.T) {
	svc, _, messageRepo := newChatFixture()

	messageRepo.On("CountUnread", mock.Anything, "v1").Return(int64(7), nil)

	count, err := svc.UnreadCount(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}
