package spaces

import (
	"context"
	"time"

	"github.com/dmitrijs2005/spacebook/internal/models"
)

// Repository stores each owner's catalog in its own EO-{ownerId}.txt shard.
type Repository interface {
	List(ctx context.Context, ownerID int) ([]models.EventSpace, error)
	Update(ctx context.Context, ownerID int, fn func([]models.EventSpace) ([]models.EventSpace, error)) error
	Replace(ctx context.Context, ownerID int, spaces []models.EventSpace) error

	// Seed creates an empty catalog for the owner if none exists.
	Seed(ctx context.Context, ownerID int) error

	// OwnerIDs lists owners that have a catalog shard, ascending.
	OwnerIDs(ctx context.Context) ([]int, error)

	// ModTime reports when the owner's catalog was last written.
	ModTime(ownerID int) (time.Time, bool)
}
