package notifications

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/dmitrijs2005/spacebook/internal/filestore"
	"github.com/dmitrijs2005/spacebook/internal/models"
)

const (
	UserDir  = "UserNotifs"
	OwnerDir = "OwnerNotifs"
	feedFile = "notifications.txt"
)

type FileRepository struct {
	store *filestore.Store
	root  string
}

func NewFileRepository(store *filestore.Store, root string) *FileRepository {
	return &FileRepository{store: store, root: root}
}

func (r *FileRepository) path(to Recipient) string {
	dir := UserDir
	if to.Audience == Owners {
		dir = OwnerDir
	}
	return filepath.Join(r.root, dir, strconv.Itoa(to.ID), feedFile)
}

func (r *FileRepository) List(ctx context.Context, to Recipient) ([]models.Notification, error) {
	items, err := filestore.Read[models.Notification](ctx, r.store, r.path(to))
	if err != nil {
		return items, fmt.Errorf("list feed %s: %w", to, err)
	}
	return items, nil
}

func (r *FileRepository) Prepend(ctx context.Context, to Recipient, n models.Notification, limit int) error {
	err := filestore.Update(ctx, r.store, r.path(to), func(items []models.Notification) ([]models.Notification, error) {
		items = append([]models.Notification{n}, items...)
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		return items, nil
	})
	if err != nil {
		return fmt.Errorf("append feed %s: %w", to, err)
	}
	return nil
}
