package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/spacebook/internal/logging"
	"github.com/dmitrijs2005/spacebook/internal/models"
	"github.com/dmitrijs2005/spacebook/internal/repositories/notifications"
)

// Kind selects a canned notification template for NotifyKind.
type Kind string

const (
	KindStatusUpdate     Kind = "status_update"
	KindBookingConfirmed Kind = "booking_confirmed"
	KindBookingCancelled Kind = "booking_cancelled"
	KindProfileUpdated   Kind = "profile_updated"
	KindAvatarUpdated    Kind = "avatar_updated"
	KindBookingPaid      Kind = "booking_paid"
	KindBookingRated     Kind = "booking_rated"
)

type NotificationService struct {
	repo  notifications.Repository
	limit int
	now   Clock
	log   logging.Logger
}

// NewNotificationService keeps at most limit entries per feed. A limit <= 0
// disables eviction.
func NewNotificationService(repo notifications.Repository, limit int, log logging.Logger) *NotificationService {
	return &NotificationService{repo: repo, limit: limit, now: systemClock, log: log}
}

func (s *NotificationService) WithClock(now Clock) *NotificationService {
	s.now = now
	return s
}

// Notify puts a new entry at the head of the recipient's feed.
func (s *NotificationService) Notify(ctx context.Context, to notifications.Recipient, title, message string) error {
	n := models.Notification{
		Title:     title,
		Message:   message,
		Timestamp: s.now().Format(models.NotificationLayout),
	}
	return s.repo.Prepend(ctx, to, n, s.limit)
}

func (s *NotificationService) List(ctx context.Context, to notifications.Recipient) ([]models.Notification, error) {
	return s.repo.List(ctx, to)
}

// NotifyKind renders the template for kind with detail and notifies.
func (s *NotificationService) NotifyKind(ctx context.Context, to notifications.Recipient, kind Kind, detail string) error {
	title, message := Template(kind, detail)
	return s.Notify(ctx, to, title, message)
}

// Template returns the title and message for a canned notification.
func Template(kind Kind, detail string) (string, string) {
	switch kind {
	case KindStatusUpdate:
		return "Account Status Changed", fmt.Sprintf("Your account status has been updated to: %s.", detail)
	case KindBookingConfirmed:
		return "Booking Confirmed", fmt.Sprintf("Your booking for '%s' has been confirmed.", detail)
	case KindBookingCancelled:
		return "Booking Cancelled", fmt.Sprintf("Your booking for '%s' has been cancelled.", detail)
	case KindProfileUpdated:
		return "Profile Updated", "Your profile information was successfully updated."
	case KindAvatarUpdated:
		return "Profile Picture Changed", "You have successfully updated your profile picture."
	case KindBookingPaid:
		return "Payment Successful", fmt.Sprintf("Your payment for '%s' has been processed successfully.", detail)
	case KindBookingRated:
		return "Thank You for Rating", fmt.Sprintf("You rated your experience at '%s'. Thank you for your feedback!", detail)
	default:
		if detail == "" {
			return "Notification", "A change has been made to your account."
		}
		return "Notification", detail
	}
}

// deliver notifies and only logs failures. State changes that trigger a
// notification are already committed when it runs.
func (s *NotificationService) deliver(ctx context.Context, to notifications.Recipient, title, message string) {
	if err := s.Notify(ctx, to, title, message); err != nil {
		s.log.Warn(ctx, "notification not delivered", "recipient", to.String(), "title", title, "error", err)
	}
}
