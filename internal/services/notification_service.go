package services

import (
	"context"

	"wedbricks/internal/domain/notification"
	"wedbricks/internal/repository"
	wedbricks_errors "wedbricks/pkg/errors"

	"github.com/google/uuid"
)

// NotificationService serves the durable notification feed. Creation
// goes through DeliveryService only.
type NotificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) ListForReceiver(ctx context.Context, receiverID string, kind notification.ParticipantKind) ([]notification.Notification, error) {
	if receiverID == "" || !kind.Valid() {
		return nil, wedbricks_errors.ErrInvalidInput
	}
	return s.repo.ListByReceiver(ctx, receiverID, kind)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) (notification.Notification, error) {
	return s.repo.MarkRead(ctx, id)
}
