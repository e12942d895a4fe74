package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/logging"
	"github.com/dmitrijs2005/spacebook/internal/models"
	"github.com/dmitrijs2005/spacebook/internal/repositories/accounts"
	"github.com/dmitrijs2005/spacebook/internal/repositories/bookings"
	"github.com/dmitrijs2005/spacebook/internal/repositories/notifications"
	"github.com/dmitrijs2005/spacebook/internal/repositories/spaces"
	"github.com/dmitrijs2005/spacebook/internal/validation"
)

// BookingRequest is what a user submits to book a space.
type BookingRequest struct {
	SpaceTitle    string           `json:"Headline" validate:"required"`
	BookingDate   time.Time        `json:"BookingDate" validate:"required"`
	GuestCount    int              `json:"GuestCount" validate:"gt=0"`
	EventTime     string           `json:"EventTime" validate:"required"`
	ExtraChairs   int              `json:"ExtraChairs" validate:"gte=0"`
	TimeExtension models.Extension `json:"TimeExtension"`
}

const (
	PaymentEWallet = "E-Wallet"
	PaymentCard    = "Credit/Debit"
)

// PaymentMethod carries the fields the chosen method needs. Nothing is
// charged; payment only advances the booking.
type PaymentMethod struct {
	Kind       string `json:"Kind" validate:"oneof=E-Wallet Credit/Debit"`
	Provider   string `json:"Provider" validate:"required_if=Kind E-Wallet"`
	WalletID   string `json:"WalletId" validate:"required_if=Kind E-Wallet"`
	CardNumber string `json:"CardNumber" validate:"required_if=Kind Credit/Debit"`
	Expiry     string `json:"Expiry" validate:"required_if=Kind Credit/Debit"`
	CVV        string `json:"CVV" validate:"required_if=Kind Credit/Debit"`
}

type cardDetails struct {
	CardNumber string `json:"CardNumber" validate:"numeric,min=12,max=19"`
	CVV        string `json:"CVV" validate:"numeric,min=3,max=4"`
}

func (s *BookingService) checkPayment(m *PaymentMethod) error {
	if err := s.validate.Struct(m); err != nil {
		return err
	}
	if m.Kind == PaymentCard {
		return s.validate.Struct(&cardDetails{CardNumber: m.CardNumber, CVV: m.CVV})
	}
	return nil
}

// BookingRules holds the time limits the ledger enforces.
type BookingRules struct {
	// LeadTime is the minimum distance between now and a new booking's date.
	LeadTime time.Duration
	// CancellationWindow must be strictly exceeded for a cancellation.
	CancellationWindow time.Duration
}

// OwnerBooking is a booking waiting in an owner's inbox.
type OwnerBooking struct {
	Username string
	Booking  models.Booking
}

type BookingService struct {
	accounts accounts.Repository
	bookings bookings.Repository
	spaces   spaces.Repository
	catalog  *CatalogService
	agg      *AggregationService
	notify   *NotificationService
	validate *validation.Validator
	rules    BookingRules
	now      Clock
	log      logging.Logger
}

func NewBookingService(
	accts accounts.Repository,
	bk bookings.Repository,
	sp spaces.Repository,
	catalog *CatalogService,
	agg *AggregationService,
	notify *NotificationService,
	v *validation.Validator,
	rules BookingRules,
	log logging.Logger,
) *BookingService {
	return &BookingService{
		accounts: accts,
		bookings: bk,
		spaces:   sp,
		catalog:  catalog,
		agg:      agg,
		notify:   notify,
		validate: v,
		rules:    rules,
		now:      systemClock,
		log:      log,
	}
}

func (s *BookingService) WithClock(now Clock) *BookingService {
	s.now = now
	return s
}

// Quote prices a booking of space with the given add-ons.
func Quote(space models.EventSpace, extraChairs int, ext models.Extension) (float64, error) {
	hours, err := ext.Hours()
	if err != nil {
		return 0, validation.Fail("TimeExtension", err.Error())
	}

	price := space.DailyRate
	if extraChairs > 0 {
		price += float64(extraChairs) * space.ChairRate
	}
	price += hours * space.ExtensionRate
	return price, nil
}

// Create books the space titled req.SpaceTitle for the signed-in user. The
// booking starts Pending and both parties are notified.
func (s *BookingService) Create(ctx context.Context, sess models.Session, req BookingRequest) (*models.Booking, error) {
	if !sess.IsStandard() {
		return nil, fmt.Errorf("book as %s: %w", sess.Kind, common.ErrorForbidden)
	}
	if err := s.validate.Struct(&req); err != nil {
		return nil, err
	}

	now := s.now()
	if req.BookingDate.Sub(now) < s.rules.LeadTime {
		return nil, validation.Fail("BookingDate", fmt.Sprintf("must be at least %s from now", s.rules.LeadTime))
	}

	ownerID, ok, err := s.agg.OwnerIDForTitle(ctx, req.SpaceTitle)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("space %q: %w", req.SpaceTitle, common.ErrorNotFound)
	}
	space, err := spaces.Get(ctx, s.spaces, ownerID, req.SpaceTitle)
	if err != nil {
		return nil, err
	}
	if req.GuestCount > space.Capacity {
		return nil, validation.Fail("GuestCount", fmt.Sprintf("must be at most %d", space.Capacity))
	}

	price, err := Quote(*space, req.ExtraChairs, req.TimeExtension)
	if err != nil {
		return nil, err
	}

	ext := req.TimeExtension
	if ext == "" {
		ext = models.ExtensionNone
	}
	b := models.Booking{
		ID:            uuid.NewString(),
		SpaceTitle:    space.Title,
		PublishedDate: now.Format(models.PublishedDateLayout),
		BookingDate:   req.BookingDate,
		GuestCount:    req.GuestCount,
		EventTime:     req.EventTime,
		ExtraChairs:   req.ExtraChairs,
		TimeExtension: ext,
		Price:         price,
		Status:        models.StatusPending,
		Category:      space.Category,
	}
	if len(space.Images) > 0 {
		b.Image = space.Images[0]
	}

	err = s.bookings.Update(ctx, sess.Username, func(list []models.Booking) ([]models.Booking, error) {
		return append(list, b), nil
	})
	if err != nil {
		return nil, err
	}

	s.notify.deliver(ctx, notifications.UserRecipient(sess.AccountID), "Booking Pending",
		fmt.Sprintf("Your booking for '%s' has been in Pending.", b.SpaceTitle))
	s.notify.deliver(ctx, notifications.OwnerRecipient(ownerID), "New Booking",
		fmt.Sprintf("%s booked your '%s' with BookingID %s. Confirm it now.", sess.Username, b.SpaceTitle, b.ID))

	s.log.Info(ctx, "booking created", "booking_id", b.ID, "username", sess.Username, "owner_id", ownerID, "price", price)
	return &b, nil
}

// transition moves booking id in username's ledger to next, after check
// accepts it. The booking as written is returned.
func (s *BookingService) transition(ctx context.Context, username, id string, next models.BookingStatus, check func(*models.Booking) error) (models.Booking, error) {
	var out models.Booking
	err := s.bookings.Update(ctx, username, func(list []models.Booking) ([]models.Booking, error) {
		i := bookings.FindByID(list, id)
		if i < 0 {
			return nil, fmt.Errorf("booking %s: %w", id, common.ErrorNotFound)
		}
		b := &list[i]
		if !b.Status.CanTransition(next) {
			return nil, fmt.Errorf("booking %s %s -> %s: %w", id, b.Status, next, common.ErrorInvalidTransition)
		}
		if check != nil {
			if err := check(b); err != nil {
				return nil, err
			}
		}
		b.Status = next
		out = *b
		return list, nil
	})
	return out, err
}

func (s *BookingService) find(ctx context.Context, username, id string) (*models.Booking, error) {
	list, err := s.bookings.List(ctx, username)
	if err != nil {
		return nil, err
	}
	i := bookings.FindByID(list, id)
	if i < 0 {
		return nil, fmt.Errorf("booking %s: %w", id, common.ErrorNotFound)
	}
	return &list[i], nil
}

// ownerOf resolves the owner of the booked title. ok is false when no
// catalog lists it any more.
func (s *BookingService) ownerOf(ctx context.Context, title string) (int, bool) {
	id, ok, err := s.agg.OwnerIDForTitle(ctx, title)
	if err != nil {
		s.log.Warn(ctx, "owner lookup failed", "title", title, "error", err)
		return 0, false
	}
	return id, ok
}

// notifyUser delivers to the standard account named username, if any.
func (s *BookingService) notifyUser(ctx context.Context, username, title, message string) {
	users, err := s.accounts.List(ctx, accounts.Standard)
	if err != nil {
		s.log.Warn(ctx, "user lookup failed", "username", username, "error", err)
		return
	}
	for _, u := range users {
		if u.Username == username {
			s.notify.deliver(ctx, notifications.UserRecipient(u.ID), title, message)
			return
		}
	}
	s.log.Warn(ctx, "no account for ledger", "username", username)
}

func (s *BookingService) requireOwner(ctx context.Context, sess models.Session, username, id string) (*models.Booking, error) {
	if !sess.IsOwner() {
		return nil, fmt.Errorf("decide booking as %s: %w", sess.Kind, common.ErrorForbidden)
	}
	b, err := s.find(ctx, username, id)
	if err != nil {
		return nil, err
	}
	ownerID, ok, err := s.agg.OwnerIDForTitle(ctx, b.SpaceTitle)
	if err != nil {
		return nil, err
	}
	if !ok || ownerID != sess.AccountID {
		return nil, fmt.Errorf("booking %s belongs to another owner: %w", id, common.ErrorForbidden)
	}
	return b, nil
}

// Accept confirms a pending booking of one of the owner's spaces.
func (s *BookingService) Accept(ctx context.Context, owner models.Session, username, id string) error {
	if _, err := s.requireOwner(ctx, owner, username, id); err != nil {
		return err
	}
	b, err := s.transition(ctx, username, id, models.StatusConfirmed, nil)
	if err != nil {
		return err
	}

	s.notifyUser(ctx, username, "Booking Accepted",
		fmt.Sprintf("Your booking for '%s' has been accepted.", b.SpaceTitle))
	s.log.Info(ctx, "booking accepted", "booking_id", id, "owner_id", owner.AccountID)
	return nil
}

// Reject declines a pending booking. The record stays in the ledger.
func (s *BookingService) Reject(ctx context.Context, owner models.Session, username, id string) error {
	if _, err := s.requireOwner(ctx, owner, username, id); err != nil {
		return err
	}
	b, err := s.transition(ctx, username, id, models.StatusRejected, nil)
	if err != nil {
		return err
	}

	s.notifyUser(ctx, username, "Booking Rejected",
		fmt.Sprintf("Your booking for '%s' has been rejected.", b.SpaceTitle))
	s.log.Info(ctx, "booking rejected", "booking_id", id, "owner_id", owner.AccountID)
	return nil
}

// Pay marks a confirmed booking as paid.
func (s *BookingService) Pay(ctx context.Context, sess models.Session, id string, method PaymentMethod) error {
	if !sess.IsStandard() {
		return fmt.Errorf("pay as %s: %w", sess.Kind, common.ErrorForbidden)
	}
	if err := s.checkPayment(&method); err != nil {
		return err
	}
	b, err := s.transition(ctx, sess.Username, id, models.StatusPaymentSuccessful, nil)
	if err != nil {
		return err
	}

	title, msg := Template(KindBookingPaid, b.SpaceTitle)
	s.notify.deliver(ctx, notifications.UserRecipient(sess.AccountID), title, msg)
	if ownerID, ok := s.ownerOf(ctx, b.SpaceTitle); ok {
		s.notify.deliver(ctx, notifications.OwnerRecipient(ownerID), "Payment Received",
			fmt.Sprintf("%s has successfully paid for their booking '%s' (Booking ID: %s).", sess.Username, b.SpaceTitle, b.ID))
	}
	s.log.Info(ctx, "booking paid", "booking_id", id, "method", method.Kind)
	return nil
}

// CanCancel reports whether b is still further than the cancellation window
// away.
func (s *BookingService) CanCancel(b models.Booking) bool {
	return b.BookingDate.Sub(s.now()) > s.rules.CancellationWindow
}

// CanRate reports whether b may receive its first rating.
func (s *BookingService) CanRate(b models.Booking) bool {
	paid := b.Status == models.StatusPaymentSuccessful || b.Status == models.StatusRated
	return paid && b.BookingDate.Before(s.now()) && b.Rating == 0
}

func (s *BookingService) CanPay(b models.Booking) bool {
	return b.Status == models.StatusConfirmed
}

// Cancel removes the booking from the user's ledger.
func (s *BookingService) Cancel(ctx context.Context, sess models.Session, id string) error {
	if !sess.IsStandard() {
		return fmt.Errorf("cancel as %s: %w", sess.Kind, common.ErrorForbidden)
	}
	var removed models.Booking
	err := s.bookings.Update(ctx, sess.Username, func(list []models.Booking) ([]models.Booking, error) {
		i := bookings.FindByID(list, id)
		if i < 0 {
			return nil, fmt.Errorf("booking %s: %w", id, common.ErrorNotFound)
		}
		if !s.CanCancel(list[i]) {
			return nil, fmt.Errorf("booking %s is within %s of its date: %w", id, s.rules.CancellationWindow, common.ErrorInvalidTransition)
		}
		removed = list[i]
		return append(list[:i], list[i+1:]...), nil
	})
	if err != nil {
		return err
	}

	s.notify.deliver(ctx, notifications.UserRecipient(sess.AccountID), "Booking Cancelled",
		fmt.Sprintf("You have cancelled your booking for '%s'.", removed.SpaceTitle))
	if ownerID, ok := s.ownerOf(ctx, removed.SpaceTitle); ok {
		s.notify.deliver(ctx, notifications.OwnerRecipient(ownerID), "Booking Cancelled",
			fmt.Sprintf("%s canceled your '%s' with BookingID %s.", sess.Username, removed.SpaceTitle, removed.ID))
	}
	s.log.Info(ctx, "booking cancelled", "booking_id", id, "username", sess.Username)
	return nil
}

// Rate records stars for a paid booking whose date has passed and
// recomputes the space rating. Rating an already rated booking does nothing.
//
// The space rating is the truncated mean of this user's ratings for the
// title, not of all users' ratings. Each accepted rating also adds one to
// the space's ReviewCount, which the rating itself never reads.
func (s *BookingService) Rate(ctx context.Context, sess models.Session, id string, stars int) error {
	if !sess.IsStandard() {
		return fmt.Errorf("rate as %s: %w", sess.Kind, common.ErrorForbidden)
	}
	if stars < 1 || stars > 5 {
		return validation.Fail("Rating", "must be between 1 and 5")
	}

	var (
		rated   models.Booking
		average int
		noop    bool
	)
	err := s.bookings.Update(ctx, sess.Username, func(list []models.Booking) ([]models.Booking, error) {
		i := bookings.FindByID(list, id)
		if i < 0 {
			return nil, fmt.Errorf("booking %s: %w", id, common.ErrorNotFound)
		}
		b := &list[i]
		if b.Rating != 0 {
			noop = true
			return list, nil
		}
		if !s.CanRate(*b) {
			return nil, fmt.Errorf("booking %s cannot be rated in status %s: %w", id, b.Status, common.ErrorInvalidTransition)
		}
		b.Rating = stars
		b.Status = models.StatusRated
		rated = *b

		sum, n := 0, 0
		for _, other := range list {
			if other.SpaceTitle == b.SpaceTitle && other.Rating > 0 {
				sum += other.Rating
				n++
			}
		}
		average = sum / n
		return list, nil
	})
	if err != nil || noop {
		return err
	}

	ownerID, ok := s.ownerOf(ctx, rated.SpaceTitle)
	if !ok {
		s.log.Warn(ctx, "rated space no longer listed", "title", rated.SpaceTitle)
		return nil
	}
	if err := s.catalog.applyRating(ctx, ownerID, rated.SpaceTitle, average); err != nil {
		return err
	}

	s.notify.deliver(ctx, notifications.OwnerRecipient(ownerID), "Booking Rated",
		fmt.Sprintf("%s rated your '%s' with %d stars.", sess.Username, rated.SpaceTitle, stars))
	s.log.Info(ctx, "booking rated", "booking_id", id, "stars", stars, "space_rating", average)
	return nil
}

func (s *BookingService) List(ctx context.Context, username string) ([]models.Booking, error) {
	return s.bookings.List(ctx, username)
}

func (s *BookingService) ReplaceAll(ctx context.Context, username string, list []models.Booking) error {
	return s.bookings.Replace(ctx, username, list)
}

// PendingForOwner lists Pending bookings, across all ledgers, for spaces in
// the owner's catalog.
func (s *BookingService) PendingForOwner(ctx context.Context, owner models.Session) ([]OwnerBooking, error) {
	if !owner.IsOwner() {
		return nil, fmt.Errorf("owner inbox as %s: %w", owner.Kind, common.ErrorForbidden)
	}

	index, err := s.agg.titleIndex(ctx)
	if err != nil {
		return nil, err
	}
	names, err := s.bookings.Usernames(ctx)
	if err != nil {
		return nil, err
	}

	var out []OwnerBooking
	for _, name := range names {
		list, err := s.bookings.List(ctx, name)
		if err != nil {
			s.log.Warn(ctx, "skipping unreadable ledger", "username", name, "error", err)
			continue
		}
		for _, b := range list {
			if b.Status == models.StatusPending && index[b.SpaceTitle] == owner.AccountID {
				out = append(out, OwnerBooking{Username: name, Booking: b})
			}
		}
	}
	return out, nil
}
