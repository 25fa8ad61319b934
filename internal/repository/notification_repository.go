package repository

import (
	"context"
	"errors"

	"wedbricks/internal/domain/notification"
	wedbricks_errors "wedbricks/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresNotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *PostgresNotificationRepository) ListByReceiver(ctx context.Context, receiverID string, kind notification.ParticipantKind) ([]notification.Notification, error) {
	var items []notification.Notification
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND receiver_kind = ?", receiverID, kind).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (notification.Notification, error) {
	var n notification.Notification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notification.Notification{}, wedbricks_errors.ErrNotFound
		}
		return notification.Notification{}, err
	}
	if n.IsRead {
		return n, nil
	}
	res := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return notification.Notification{}, res.Error
	}
	n.IsRead = true
	return n, nil
}
