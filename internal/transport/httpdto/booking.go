package httpdto

// BookingEventRequest is the collaborator entry point payload for the
// booking/admin subsystems.
type BookingEventRequest struct {
	SenderID     string `json:"senderId"`
	SenderKind   string `json:"senderKind"`
	ReceiverID   string `json:"receiverId"`
	ReceiverKind string `json:"receiverKind"`
	Type         string `json:"type"`
	Message      string `json:"message"`
	Link         string `json:"link"`
}
