package chat

import (
	"time"

	"github.com/google/uuid"
)

// Chat represents the chats table. At most one chat exists per
// (user, vendor) pair; rows are created lazily on first contact and
// never deleted in normal operation.
type Chat struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"not null;index:idx_chats_pair,unique" json:"userId"`
	VendorID  string    `gorm:"not null;index:idx_chats_pair,unique" json:"vendorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`
}

// Message represents the messages table. Immutable after creation
// except for Read, which only ever transitions false to true.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChatID    uuid.UUID `gorm:"type:uuid;not null;index" json:"chatId"`
	Sender    string    `gorm:"not null" json:"sender"`
	Receiver  string    `gorm:"not null;index:idx_messages_unread" json:"receiver"`
	Content   string    `gorm:"not null" json:"content"`
	Read      bool      `gorm:"not null;default:false;index:idx_messages_unread" json:"read"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}
