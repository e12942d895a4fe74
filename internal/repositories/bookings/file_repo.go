package bookings

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/filestore"
	"github.com/dmitrijs2005/spacebook/internal/models"
)

const (
	shardPrefix = "S-"
	shardExt    = ".txt"
)

type FileRepository struct {
	store *filestore.Store
	root  string
}

func NewFileRepository(store *filestore.Store, root string) *FileRepository {
	return &FileRepository{store: store, root: root}
}

func (r *FileRepository) path(username string) (string, error) {
	if username == "" || username == "." || username == ".." ||
		strings.ContainsAny(username, `/\`) {
		return "", fmt.Errorf("ledger name %q: %w", username, common.ErrorValidation)
	}
	return filepath.Join(r.root, shardPrefix+username+shardExt), nil
}

func (r *FileRepository) List(ctx context.Context, username string) ([]models.Booking, error) {
	path, err := r.path(username)
	if err != nil {
		return nil, err
	}
	items, err := filestore.Read[models.Booking](ctx, r.store, path)
	if err != nil {
		return items, fmt.Errorf("list ledger %s: %w", username, err)
	}
	return items, nil
}

func (r *FileRepository) Update(ctx context.Context, username string, fn func([]models.Booking) ([]models.Booking, error)) error {
	path, err := r.path(username)
	if err != nil {
		return err
	}
	if err := filestore.Update(ctx, r.store, path, fn); err != nil {
		return fmt.Errorf("update ledger %s: %w", username, err)
	}
	return nil
}

func (r *FileRepository) Replace(ctx context.Context, username string, bookings []models.Booking) error {
	path, err := r.path(username)
	if err != nil {
		return err
	}

	unlock, err := r.store.Locks().Lock(ctx, path)
	if err != nil {
		return err
	}
	defer unlock()

	if err := filestore.Save(ctx, path, bookings); err != nil {
		return fmt.Errorf("replace ledger %s: %w", username, err)
	}
	return nil
}

func (r *FileRepository) Usernames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(r.root, shardPrefix+"*"+shardExt))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), shardPrefix), shardExt)
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// FindByID returns the index of the booking with id, or -1.
func FindByID(list []models.Booking, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
