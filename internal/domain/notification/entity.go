package notification

import (
	"time"

	"github.com/google/uuid"
)

// ParticipantKind discriminates the two identity models a notification
// can reference. Participants never change kind.
type ParticipantKind string

const (
	KindUser   ParticipantKind = "User"
	KindVendor ParticipantKind = "Vendor"
)

// Valid reports whether k is one of the two known kinds.
func (k ParticipantKind) Valid() bool {
	return k == KindUser || k == KindVendor
}

// Notification types
const (
	TypeMessage          = "message"
	TypeBooking          = "booking"
	TypeBookingConfirmed = "booking_confirmed"
	TypeBookingCancelled = "booking_cancelled"
)

// Notification represents the notifications table. Created only by the
// delivery layer as a side effect of a domain event, never by clients.
// Immutable except for IsRead (false to true).
type Notification struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID     string          `gorm:"not null" json:"senderId"`
	SenderKind   ParticipantKind `gorm:"not null" json:"senderKind"`
	ReceiverID   string          `gorm:"not null;index:idx_notifications_receiver" json:"receiverId"`
	ReceiverKind ParticipantKind `gorm:"not null;index:idx_notifications_receiver" json:"receiverKind"`
	Type         string          `gorm:"not null" json:"type"`
	Message      string          `json:"message"`
	Link         string          `json:"link"`
	IsRead       bool            `gorm:"not null;default:false" json:"isRead"`
	CreatedAt    time.Time       `gorm:"index" json:"createdAt"`
}
