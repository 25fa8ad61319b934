package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wedbricks/internal/domain/chat"
	"wedbricks/internal/repository"
	"wedbricks/internal/services"
	wedbricks_errors "wedbricks/pkg/errors"
	"wedbricks/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChatRouter(chatRepo *repository.MockChatRepository, messageRepo *repository.MockMessageRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewChatService(chatRepo, messageRepo, nil, logger.New(logger.DevelopmentMode))
	h := NewChatHandler(svc)

	r := gin.New()
	r.POST("/api/chats/start", h.Start)
	r.GET("/api/chats/user/:userId", h.ListUserChats)
	r.GET("/api/chats/unread/:participantId", h.UnreadCount)
	r.GET("/api/chats/:chatId/messages", h.Messages)
	r.POST("/api/chats/:chatId/message", h.SaveMessage)
	return r
}

func TestStart_ReturnsChatEnvelope(t *testing.T) {
	chatRepo := &repository.MockChatRepository{}
	messageRepo := &repository.MockMessageRepository{}
	r := newChatRouter(chatRepo, messageRepo)

	created := chat.Chat{ID: uuid.New(), UserID: "u1", VendorID: "v1"}
	chatRepo.On("FindOrCreate", mock.Anything, "u1", "v1").Return(created, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chats/start", strings.NewReader(`{"userId":"u1","vendorId":"v1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool      `json:"success"`
		Data    chat.Chat `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, created.ID, resp.Data.ID)
}

func TestStart_RejectsMalformedBody(t *testing.T) {
	chatRepo := &repository.MockChatRepository{}
	r := newChatRouter(chatRepo, &repository.MockMessageRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chats/start", strings.NewReader(`{"userId":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	chatRepo.AssertNotCalled(t, "FindOrCreate", mock.Anything, mock.Anything, mock.Anything)
}

func TestStart_MissingParticipantIsBadRequest(t *testing.T) {
	r := newChatRouter(&repository.MockChatRepository{}, &repository.MockMessageRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chats/start", strings.NewReader(`{"userId":"u1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Code    string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_REQUEST", resp.Code)
}

func TestListUserChats_FlattensLastMessage(t *testing.T) {
	chatRepo := &repository.MockChatRepository{}
	messageRepo := &repository.MockMessageRepository{}
	r := newChatRouter(chatRepo, messageRepo)

	c := chat.Chat{ID: uuid.New(), UserID: "u1", VendorID: "v1"}
	chatRepo.On("ListByUser", mock.Anything, "u1").Return([]chat.Chat{c}, nil)
	messageRepo.On("LatestByChat", mock.Anything, c.ID).Return(chat.Message{ChatID: c.ID, Content: "Latest"}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chats/user/u1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID          uuid.UUID `json:"id"`
			LastMessage *string   `json:"lastMessage"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	require.NotNil(t, resp.Data[0].LastMessage)
	assert.Equal(t, "Latest", *resp.Data[0].LastMessage)
}

func TestMessages_InvalidChatIDIsBadRequest(t *testing.T) {
	r := newChatRouter(&repository.MockChatRepository{}, &repository.MockMessageRepository{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chats/not-a-uuid/messages", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveMessage_UnknownChatIsNotFound(t *testing.T) {
	chatRepo := &repository.MockChatRepository{}
	r := newChatRouter(chatRepo, &repository.MockMessageRepository{})

	chatID := uuid.New()
	chatRepo.On("Touch", mock.Anything, chatID, mock.Anything).Return(wedbricks_errors.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chats/"+chatID.String()+"/message",
		strings.NewReader(`{"sender":"u1","receiver":"v1","content":"Hi"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnreadCount_ReturnsBadgeCount(t *testing.T) {
	messageRepo := &repository.MockMessageRepository{}
	r := newChatRouter(&repository.MockChatRepository{}, messageRepo)

	messageRepo.On("CountUnread", mock.Anything, "v1").Return(int64(9), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chats/unread/v1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Count int64 `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(9), resp.Data.Count)
}
