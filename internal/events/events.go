package events

import (
	"github.com/google/uuid"
)

// Client-originated events
const (
	EventRegisterUser             = "registerUser"
	EventRegisterVendor           = "registerVendor"
	EventJoinRoom                 = "joinRoom"
	EventSendMessage              = "sendMessage"
	EventMarkSeen                 = "markSeen"
	EventBookingCreated           = "bookingCreated"
	EventBookingCancelledByVendor = "bookingCancelledByVendor"
	EventBookingStatusChanged     = "bookingStatusChanged"
)

// Server-originated events
const (
	EventReceiveMessage  = "receiveMessage"
	EventUnreadUpdate    = "unreadUpdate"
	EventNewNotification = "newNotification"
	EventBookingUpdated  = "bookingUpdated"
)

// Room name prefixes. Rooms are an in-memory projection only, rebuilt
// from registration events; nothing here is ever persisted.
const (
	RoomPrefixChat   = "chat:"
	RoomPrefixUser   = "user:"
	RoomPrefixVendor = "vendor:"
)

// ChatRoom returns the broadcast room observing one chat thread.
func ChatRoom(chatID uuid.UUID) string {
	return RoomPrefixChat + chatID.String()
}

// UserRoom returns a user's personal notification channel.
func UserRoom(userID string) string {
	return RoomPrefixUser + userID
}

// VendorRoom returns a vendor's personal notification channel.
func VendorRoom(vendorID string) string {
	return RoomPrefixVendor + vendorID
}

// PersonalRoom builds a kind-qualified personal channel name, e.g.
// "vendor:42" for kind "Vendor".
func PersonalRoom(kind string, id string) string {
	switch kind {
	case "Vendor":
		return VendorRoom(id)
	default:
		return UserRoom(id)
	}
}
