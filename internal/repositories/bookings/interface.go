package bookings

import (
	"context"

	"github.com/dmitrijs2005/spacebook/internal/models"
)

type Repository interface {
	List(ctx context.Context, username string) ([]models.Booking, error)
	Update(ctx context.Context, username string, fn func([]models.Booking) ([]models.Booking, error)) error
	Replace(ctx context.Context, username string, bookings []models.Booking) error

	// Usernames lists every user that has a ledger shard, sorted.
	Usernames(ctx context.Context) ([]string, error)
}
