package repository

import (
	"context"
	"errors"

	"wedbricks/internal/domain/chat"
	wedbricks_errors "wedbricks/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *chat.Message) error {
	res := r.db.WithContext(ctx).Create(m)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return wedbricks_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresMessageRepository) ListByChat(ctx context.Context, chatID uuid.UUID) ([]chat.Message, error) {
	var messages []chat.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PostgresMessageRepository) LatestByChat(ctx context.Context, chatID uuid.UUID) (chat.Message, error) {
	var m chat.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat.Message{}, wedbricks_errors.ErrNotFound
		}
		return chat.Message{}, err
	}
	return m, nil
}

func (r *PostgresMessageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&chat.Message{}).
		Where("receiver = ? AND read = ?", receiverID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresMessageRepository) MarkChatRead(ctx context.Context, chatID uuid.UUID, receiverID string) error {
	return r.db.WithContext(ctx).
		Model(&chat.Message{}).
		Where("chat_id = ? AND receiver = ? AND read = ?", chatID, receiverID, false).
		Update("read", true).Error
}

func (r *PostgresMessageRepository) MarkChatReadExceptSender(ctx context.Context, chatID uuid.UUID, senderID string) error {
	return r.db.WithContext(ctx).
		Model(&chat.Message{}).
		Where("chat_id = ? AND sender != ? AND read = ?", chatID, senderID, false).
		Update("read", true).Error
}
