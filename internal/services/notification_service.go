package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Ibtida01/Shobarkhamar/internal/event"
	"github.com/Ibtida01/Shobarkhamar/internal/models"
	"github.com/Ibtida01/Shobarkhamar/internal/repository"
)

// NotificationService records in-app notifications and forwards them to the
// push queue. Queue failures are logged, never surfaced; the in-app record is
// the source of truth.
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	publisher        event.Publisher
}

func NewNotificationService(notificationRepo *repository.NotificationRepository, publisher event.Publisher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, diagnosisID *uuid.UUID, notiType models.NotificationType, title, body string) error {
	now := time.Now()
	notification := &models.Notification{
		UserID:      userID,
		DiagnosisID: diagnosisID,
		Type:        notiType,
		Title:       title,
		Body:        body,
		SentAt:      &now,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	pushEvent := event.PushNotificationEvent{
		UserID:      userID,
		DiagnosisID: diagnosisID,
		Type:        notiType,
		Title:       title,
		Body:        body,
		CreatedAt:   notification.CreatedAt,
	}
	if err := s.publisher.PublishNotification(ctx, pushEvent); err != nil {
		slog.Warn("failed to publish push notification", "user_id", userID, "error", err)
	}

	return nil
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, skip, limit int) (*models.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.GetByUserID(ctx, userID, skip, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.NotificationListResponse{
		Notifications: notifications,
		Total:         len(notifications),
		UnreadCount:   unread,
	}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, caller models.Identity, id uuid.UUID) error {
	return s.notificationRepo.MarkRead(ctx, id, caller.UserID)
}

func (s *NotificationService) SubmitFeedback(ctx context.Context, userID uuid.UUID, req *models.CreateFeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", models.ErrValidation)
	}

	feedback := &models.Feedback{
		UserID:       userID,
		FeedbackText: req.FeedbackText,
		Rating:       req.Rating,
	}
	if err := s.notificationRepo.CreateFeedback(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *NotificationService) ListFeedback(ctx context.Context, userID uuid.UUID, skip, limit int) (*models.FeedbackListResponse, error) {
	feedbacks, err := s.notificationRepo.GetFeedbackByUserID(ctx, userID, skip, limit)
	if err != nil {
		return nil, err
	}
	avg, err := s.notificationRepo.AverageRating(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.FeedbackListResponse{
		Feedbacks:     feedbacks,
		Total:         len(feedbacks),
		AverageRating: avg,
	}, nil
}
