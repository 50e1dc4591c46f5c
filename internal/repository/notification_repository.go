package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Ibtida01/Shobarkhamar/internal/models"
)

type NotificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	notification.CreatedAt = time.Now()

	query := `
		INSERT INTO notifications (id, user_id, diagnosis_id, type, title, body, is_read, scheduled_at, sent_at, created_at)
		VALUES (:id, :user_id, :diagnosis_id, :type, :title, :body, :is_read, :scheduled_at, :sent_at, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, notification)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("user or diagnosis: %w", models.ErrNotFound)
		}
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID, skip, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	query := `
		SELECT * FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &notifications, query, userID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	return notifications, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`

	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead flips is_read for a notification owned by userID. The owner filter
// keeps one user from touching another's notifications.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("notification %s: %w", id, models.ErrNotFound)
	}

	return nil
}

// ============================================================================
// FEEDBACK
// ============================================================================

func (r *NotificationRepository) CreateFeedback(ctx context.Context, feedback *models.Feedback) error {
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	feedback.FeedbackDate = time.Now()

	query := `
		INSERT INTO feedbacks (id, user_id, feedback_text, rating, feedback_date)
		VALUES (:id, :user_id, :feedback_text, :rating, :feedback_date)`

	_, err := r.db.NamedExecContext(ctx, query, feedback)
	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	return nil
}

func (r *NotificationRepository) GetFeedbackByUserID(ctx context.Context, userID uuid.UUID, skip, limit int) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	query := `
		SELECT * FROM feedbacks
		WHERE user_id = $1
		ORDER BY feedback_date DESC
		LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &feedbacks, query, userID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}

	return feedbacks, nil
}

func (r *NotificationRepository) AverageRating(ctx context.Context, userID uuid.UUID) (float64, error) {
	var avg sql.NullFloat64
	query := `SELECT AVG(rating) FROM feedbacks WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &avg, query, userID); err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}

	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}
