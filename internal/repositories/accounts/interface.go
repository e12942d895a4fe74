package accounts

import (
	"context"

	"github.com/dmitrijs2005/spacebook/internal/models"
)

type Partition int

const (
	Standard Partition = iota
	Owners
)

func (p Partition) String() string {
	if p == Owners {
		return "owners"
	}
	return "standard"
}

// Guard inspects the partition before an insert and may veto it.
type Guard func(existing []models.Account) error

type Repository interface {
	// List returns every account in the partition in file order.
	List(ctx context.Context, p Partition) ([]models.Account, error)

	// Get returns the account with id, or common.ErrorNotFound.
	Get(ctx context.Context, p Partition, id int) (*models.Account, error)

	// Insert assigns the next id to a, appends it and returns the id.
	// guard runs under the partition lock first; a nil guard always passes.
	Insert(ctx context.Context, p Partition, a *models.Account, guard Guard) (int, error)

	// Modify applies fn to the account with id and persists it.
	Modify(ctx context.Context, p Partition, id int, fn func(*models.Account) error) error

	// Update is the raw read-modify-write over the whole partition.
	Update(ctx context.Context, p Partition, fn func([]models.Account) ([]models.Account, error)) error
}
