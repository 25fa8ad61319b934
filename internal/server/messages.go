package server

import "encoding/json"

// Client event payloads. Field names match the wire contract the
// frontends already speak.

type joinRoomPayload struct {
	ChatID string `json:"chatId"`
}

type sendMessagePayload struct {
	ChatID   string `json:"chatId"`
	Message  string `json:"message"`
	SenderID string `json:"senderId"`
	VendorID string `json:"vendorId"`
}

type markSeenPayload struct {
	ChatID string `json:"chatId"`
	UserID string `json:"userId"`
}

type bookingEventPayload struct {
	UserID    string `json:"userId"`
	VendorID  string `json:"vendorId"`
	BookingID string `json:"bookingId"`
}

type bookingStatusPayload struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
	UserID    string `json:"userId"`
	VendorID  string `json:"vendorId"`
}

func unmarshalPayload(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return json.Unmarshal([]byte("{}"), v)
	}
	return json.Unmarshal(data, v)
}

// decodeParticipantID accepts both a bare JSON string ("u1") and an
// object ({"id":"u1"}) for the register events.
func decodeParticipantID(data json.RawMessage) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", err
	}
	return obj.ID, nil
}
