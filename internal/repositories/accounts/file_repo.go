package accounts

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/filestore"
	"github.com/dmitrijs2005/spacebook/internal/models"
)

const (
	UsersFile  = "Users.txt"
	OwnersFile = "EventSpaceOwners.txt"
)

type FileRepository struct {
	store *filestore.Store
	root  string
}

func NewFileRepository(store *filestore.Store, root string) *FileRepository {
	return &FileRepository{store: store, root: root}
}

func (r *FileRepository) path(p Partition) string {
	if p == Owners {
		return filepath.Join(r.root, OwnersFile)
	}
	return filepath.Join(r.root, UsersFile)
}

func (r *FileRepository) List(ctx context.Context, p Partition) ([]models.Account, error) {
	items, err := filestore.Read[models.Account](ctx, r.store, r.path(p))
	if err != nil {
		return items, fmt.Errorf("list %s accounts: %w", p, err)
	}
	return items, nil
}

func (r *FileRepository) Get(ctx context.Context, p Partition, id int) (*models.Account, error) {
	items, err := r.List(ctx, p)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("%s account %d: %w", p, id, common.ErrorNotFound)
}

func (r *FileRepository) Insert(ctx context.Context, p Partition, a *models.Account, guard Guard) (int, error) {
	var id int
	err := r.Update(ctx, p, func(items []models.Account) ([]models.Account, error) {
		if guard != nil {
			if err := guard(items); err != nil {
				return nil, err
			}
		}
		id = len(items) + 1
		a.ID = id
		return append(items, *a), nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *FileRepository) Modify(ctx context.Context, p Partition, id int, fn func(*models.Account) error) error {
	return r.Update(ctx, p, func(items []models.Account) ([]models.Account, error) {
		for i := range items {
			if items[i].ID == id {
				if err := fn(&items[i]); err != nil {
					return nil, err
				}
				return items, nil
			}
		}
		return nil, fmt.Errorf("%s account %d: %w", p, id, common.ErrorNotFound)
	})
}

func (r *FileRepository) Update(ctx context.Context, p Partition, fn func([]models.Account) ([]models.Account, error)) error {
	if err := filestore.Update(ctx, r.store, r.path(p), fn); err != nil {
		return fmt.Errorf("update %s accounts: %w", p, err)
	}
	return nil
}
