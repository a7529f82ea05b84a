package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trailhub/internal/models/db_models"
	resp "trailhub/internal/models/response_models"
	"trailhub/internal/repositories"
	"trailhub/pkg/utils"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]resp.NotificationResponse, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo repositories.NotificationRepository
	log  *zap.Logger
}

func NewNotificationService(repo repositories.NotificationRepository, log *zap.Logger) NotificationService {
	return &notificationService{repo: repo, log: log}
}

func toNotificationResponse(n *db_models.Notification) resp.NotificationResponse {
	return resp.NotificationResponse{
		ID:        n.ID.String(),
		Message:   n.Message,
		Read:      n.Read,
		Payload:   n.Payload,
		CreatedAt: n.CreatedAt,
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]resp.NotificationResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		s.log.Error("list notifications", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	out := make([]resp.NotificationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toNotificationResponse(&rows[i]))
	}
	return out, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		s.log.Error("count unread notifications", zap.Error(err))
		return 0, utils.ErrDatabaseError
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	ok, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		s.log.Error("mark notification read", zap.Error(err))
		return utils.ErrDatabaseError
	}
	if !ok {
		return utils.ErrNotificationNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		s.log.Error("mark all notifications read", zap.Error(err))
		return 0, utils.ErrDatabaseError
	}
	return n, nil
}
