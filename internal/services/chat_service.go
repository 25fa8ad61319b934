package services

import (
	"context"
	"errors"
	"time"

	"wedbricks/internal/domain/chat"
	"wedbricks/internal/redis"
	"wedbricks/internal/repository"
	wedbricks_errors "wedbricks/pkg/errors"
	"wedbricks/pkg/logger"

	"github.com/google/uuid"
)

// ChatSummary is a chat list entry decorated with its latest message,
// used to render conversation lists ordered by recency.
type ChatSummary struct {
	Chat        chat.Chat
	LastMessage *chat.Message
}

// ChatService serves the durable chat surface: thread lookup, history
// and the legacy persist-only message endpoints. Live fan-out lives in
// DeliveryService.
type ChatService struct {
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
	unreadCache *redis.UnreadCache
	log         *logger.Logger
}

func NewChatService(chatRepo repository.ChatRepository, messageRepo repository.MessageRepository, unreadCache *redis.UnreadCache, log *logger.Logger) *ChatService {
	return &ChatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		unreadCache: unreadCache,
		log:         log,
	}
}

// StartChat finds or lazily creates the one chat for a (user, vendor)
// pair.
func (s *ChatService) StartChat(ctx context.Context, userID, vendorID string) (chat.Chat, error) {
	if userID == "" || vendorID == "" {
		return chat.Chat{}, wedbricks_errors.ErrInvalidInput
	}
	return s.chatRepo.FindOrCreate(ctx, userID, vendorID)
}

// GetUserChats lists a user's chats by recency, each with its latest
// message attached.
func (s *ChatService) GetUserChats(ctx context.Context, userID string) ([]ChatSummary, error) {
	if userID == "" {
		return nil, wedbricks_errors.ErrInvalidInput
	}
	chats, err := s.chatRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, chats)
}

// GetVendorChats lists a vendor's chats by recency, each with its
// latest message attached.
func (s *ChatService) GetVendorChats(ctx context.Context, vendorID string) ([]ChatSummary, error) {
	if vendorID == "" {
		return nil, wedbricks_errors.ErrInvalidInput
	}
	chats, err := s.chatRepo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, chats)
}

// GetMessages returns the ordered history of one thread.
func (s *ChatService) GetMessages(ctx context.Context, chatID uuid.UUID) ([]chat.Message, error) {
	return s.messageRepo.ListByChat(ctx, chatID)
}

// SaveMessage is the persist-only REST path: durable append plus
// activity touch, no fan-out. The socket path is the live one.
func (s *ChatService) SaveMessage(ctx context.Context, chatID uuid.UUID, senderID, receiverID, content string) (chat.Message, error) {
	if senderID == "" || receiverID == "" || content == "" {
		return chat.Message{}, wedbricks_errors.ErrInvalidInput
	}

	now := time.Now()
	if err := s.chatRepo.Touch(ctx, chatID, now); err != nil {
		return chat.Message{}, err
	}

	msg := chat.Message{
		ID:        uuid.New(),
		ChatID:    chatID,
		Sender:    senderID,
		Receiver:  receiverID,
		Content:   content,
		Read:      false,
		CreatedAt: now,
	}
	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		return chat.Message{}, err
	}
	return msg, nil
}

// MarkRead is the legacy read endpoint: marks everything in the chat
// not sent by the caller.
func (s *ChatService) MarkRead(ctx context.Context, chatID uuid.UUID, callerID string) error {
	if callerID == "" {
		return wedbricks_errors.ErrInvalidInput
	}
	if err := s.messageRepo.MarkChatReadExceptSender(ctx, chatID, callerID); err != nil {
		return err
	}
	if s.unreadCache != nil {
		if err := s.unreadCache.Invalidate(ctx, callerID); err != nil {
			s.log.Warnf("unread cache invalidate failed for %s: %v", callerID, err)
		}
	}
	return nil
}

// UnreadCount returns the participant's aggregate unread badge count,
// served from cache when fresh.
func (s *ChatService) UnreadCount(ctx context.Context, participantID string) (int64, error) {
	if participantID == "" {
		return 0, wedbricks_errors.ErrInvalidInput
	}
	if s.unreadCache != nil {
		if count, ok, err := s.unreadCache.Get(ctx, participantID); err == nil && ok {
			return count, nil
		} else if err != nil {
			s.log.Warnf("unread cache read failed for %s: %v", participantID, err)
		}
	}

	count, err := s.messageRepo.CountUnread(ctx, participantID)
	if err != nil {
		return 0, err
	}
	if s.unreadCache != nil {
		if err := s.unreadCache.Set(ctx, participantID, count); err != nil {
			s.log.Warnf("unread cache refresh failed for %s: %v", participantID, err)
		}
	}
	return count, nil
}

func (s *ChatService) decorate(ctx context.Context, chats []chat.Chat) ([]ChatSummary, error) {
	summaries := make([]ChatSummary, 0, len(chats))
	for _, c := range chats {
		summary := ChatSummary{Chat: c}
		last, err := s.messageRepo.LatestByChat(ctx, c.ID)
		if err == nil {
			summary.LastMessage = &last
		} else if !errors.Is(err, wedbricks_errors.ErrNotFound) {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
