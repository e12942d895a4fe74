package services

import (
	"bytes"
	"context"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/filestore"
	"github.com/dmitrijs2005/spacebook/internal/images"
	"github.com/dmitrijs2005/spacebook/internal/logging"
	"github.com/dmitrijs2005/spacebook/internal/models"
	"github.com/dmitrijs2005/spacebook/internal/repositories/accounts"
	"github.com/dmitrijs2005/spacebook/internal/repositories/bookings"
	"github.com/dmitrijs2005/spacebook/internal/repositories/notifications"
	"github.com/dmitrijs2005/spacebook/internal/repositories/spaces"
	"github.com/dmitrijs2005/spacebook/internal/validation"
)

var testAdmin = AdminCredentials{Email: "admin@admin.com", Password: "admin123"}

type fixture struct {
	root string
	now  time.Time

	accounts      *accounts.FileRepository
	spaces        *spaces.FileRepository
	bookings      *bookings.FileRepository
	notifications *notifications.FileRepository

	notify   *NotificationService
	catalog  *CatalogService
	agg      *AggregationService
	identity *IdentityService
	ledger   *BookingService
}

func newFixture(t *testing.T, feedLimit int) *fixture {
	t.Helper()

	f := &fixture{
		root: t.TempDir(),
		now:  time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }

	store := filestore.New()
	log := logging.Discard()
	v := validation.New()
	img := images.New(f.root, store.Locks())

	f.accounts = accounts.NewFileRepository(store, f.root)
	f.spaces = spaces.NewFileRepository(store, f.root)
	f.bookings = bookings.NewFileRepository(store, f.root)
	f.notifications = notifications.NewFileRepository(store, f.root)

	f.notify = NewNotificationService(f.notifications, feedLimit, log).WithClock(clock)
	f.catalog = NewCatalogService(f.spaces, img, v, "₱", log)
	f.agg = NewAggregationService(f.accounts, f.spaces, f.bookings, "₱", log)
	f.identity = NewIdentityService(f.accounts, f.spaces, f.catalog, img, f.notify, v, testAdmin, log)
	f.ledger = NewBookingService(f.accounts, f.bookings, f.spaces, f.catalog, f.agg, f.notify, v,
		BookingRules{LeadTime: 72 * time.Hour, CancellationWindow: 72 * time.Hour}, log).WithClock(clock)

	return f
}

func (f *fixture) user(t *testing.T, username, email string) models.Session {
	t.Helper()
	ctx := context.Background()

	_, err := f.identity.Register(ctx, models.Account{Email: email, Username: username, Password: "pw"})
	require.NoError(t, err)
	sess, err := f.identity.Authenticate(ctx, email, "pw")
	require.NoError(t, err)
	return sess
}

// owner registers and activates an owner and lists the given spaces.
func (f *fixture) owner(t *testing.T, username, email string, list ...models.EventSpace) models.Session {
	t.Helper()
	ctx := context.Background()

	id, err := f.identity.Register(ctx, models.Account{Email: email, Username: username, Password: "pw", Kind: common.KindOwner})
	require.NoError(t, err)
	require.NoError(t, f.identity.SetOwnerActivation(ctx, id, true))
	for _, sp := range list {
		require.NoError(t, f.catalog.Create(ctx, id, sp))
	}

	sess, err := f.identity.Authenticate(ctx, email, "pw")
	require.NoError(t, err)
	return sess
}

func gardenHall() models.EventSpace {
	return models.EventSpace{
		Title:         "Garden Hall",
		Description:   "Open-air hall",
		Location:      "Cebu City",
		Capacity:      150,
		DailyRate:     1000,
		ExtensionRate: 200,
		ChairRate:     50,
		Category:      "Wedding, Birthday",
	}
}

func space(title string, rating int) models.EventSpace {
	sp := gardenHall()
	sp.Title = title
	sp.Rating = rating
	return sp
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, imaging.New(2, 2, color.NRGBA{G: 255, A: 255}), nil))
	return buf.Bytes()
}

func titles(list []models.EventSpace) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Title
	}
	return out
}
