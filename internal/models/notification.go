package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationDiagnosisResult   NotificationType = "diagnosis_result"
	NotificationTreatmentReminder NotificationType = "treatment_reminder"
	NotificationSystem            NotificationType = "system"
	NotificationAlert             NotificationType = "alert"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationDiagnosisResult, NotificationTreatmentReminder, NotificationSystem, NotificationAlert:
		return true
	}
	return false
}

type Notification struct {
	ID          uuid.UUID        `json:"notification_id" db:"id"`
	UserID      uuid.UUID        `json:"user_id" db:"user_id"`
	DiagnosisID *uuid.UUID       `json:"diagnosis_id" db:"diagnosis_id"`
	Type        NotificationType `json:"type" db:"type"`
	Title       string           `json:"title" db:"title"`
	Body        string           `json:"body" db:"body"`
	IsRead      bool             `json:"is_read" db:"is_read"`
	ScheduledAt *time.Time       `json:"scheduled_at" db:"scheduled_at"`
	SentAt      *time.Time       `json:"sent_at" db:"sent_at"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

type Feedback struct {
	ID           uuid.UUID `json:"feedback_id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	FeedbackText string    `json:"feedback_text" db:"feedback_text"`
	Rating       int       `json:"rating" db:"rating"`
	FeedbackDate time.Time `json:"feedback_date" db:"feedback_date"`
}

type CreateFeedbackRequest struct {
	FeedbackText string `json:"feedback_text" binding:"required"`
	Rating       int    `json:"rating" binding:"required"`
}

type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	Total         int            `json:"total"`
	UnreadCount   int            `json:"unread_count"`
}

type FeedbackListResponse struct {
	Feedbacks     []Feedback `json:"feedbacks"`
	Total         int        `json:"total"`
	AverageRating float64    `json:"average_rating"`
}
