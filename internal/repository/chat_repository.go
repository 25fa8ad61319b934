package repository

import (
	"context"
	"errors"
	"time"

	"wedbricks/internal/domain/chat"
	wedbricks_errors "wedbricks/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) FindOrCreate(ctx context.Context, userID, vendorID string) (chat.Chat, error) {
	c := chat.Chat{
		ID:       uuid.New(),
		UserID:   userID,
		VendorID: vendorID,
	}
	// Insert-or-ignore on the pair index, then read back whichever row
	// won. Two concurrent starts for the same pair converge on one chat.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "vendor_id"}},
			DoNothing: true,
		}).
		Create(&c)
	if res.Error != nil {
		return chat.Chat{}, res.Error
	}

	var out chat.Chat
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND vendor_id = ?", userID, vendorID).
		First(&out).Error
	if err != nil {
		return chat.Chat{}, err
	}
	return out, nil
}

func (r *PostgresChatRepository) GetByID(ctx context.Context, id uuid.UUID) (chat.Chat, error) {
	var c chat.Chat
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat.Chat{}, wedbricks_errors.ErrNotFound
		}
		return chat.Chat{}, err
	}
	return c, nil
}

func (r *PostgresChatRepository) ListByUser(ctx context.Context, userID string) ([]chat.Chat, error) {
	var chats []chat.Chat
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *PostgresChatRepository) ListByVendor(ctx context.Context, vendorID string) ([]chat.Chat, error) {
	var chats []chat.Chat
	err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("updated_at DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *PostgresChatRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&chat.Chat{}).
		Where("id = ?", id).
		Update("updated_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return wedbricks_errors.ErrNotFound
	}
	return nil
}
