package httpdto

import (
	"time"

	"wedbricks/internal/services"

	"github.com/google/uuid"
)

type StartChatRequest struct {
	UserID   string `json:"userId"`
	VendorID string `json:"vendorId"`
}

type SaveMessageRequest struct {
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Content  string `json:"content"`
}

type MarkReadRequest struct {
	UserID string `json:"userId"`
}

// ChatSummaryResponse is a chat list entry with its latest message
// flattened in, the shape the conversation list renders from.
type ChatSummaryResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          string    `json:"userId"`
	VendorID        string    `json:"vendorId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	LastMessage     *string   `json:"lastMessage"`
	LastMessageDate time.Time `json:"lastMessageDate"`
}

func FromChatSummary(s services.ChatSummary) ChatSummaryResponse {
	resp := ChatSummaryResponse{
		ID:              s.Chat.ID,
		UserID:          s.Chat.UserID,
		VendorID:        s.Chat.VendorID,
		CreatedAt:       s.Chat.CreatedAt,
		UpdatedAt:       s.Chat.UpdatedAt,
		LastMessageDate: s.Chat.CreatedAt,
	}
	if s.LastMessage != nil {
		resp.LastMessage = &s.LastMessage.Content
		resp.LastMessageDate = s.LastMessage.CreatedAt
	}
	return resp
}

func FromChatSummarySlice(items []services.ChatSummary) []ChatSummaryResponse {
	out := make([]ChatSummaryResponse, 0, len(items))
	for _, item := range items {
		out = append(out, FromChatSummary(item))
	}
	return out
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
