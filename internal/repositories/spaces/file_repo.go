package spaces

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/filestore"
	"github.com/dmitrijs2005/spacebook/internal/models"
)

const (
	shardPrefix = "EO-"
	shardExt    = ".txt"
)

type FileRepository struct {
	store *filestore.Store
	root  string
}

func NewFileRepository(store *filestore.Store, root string) *FileRepository {
	return &FileRepository{store: store, root: root}
}

func ShardName(ownerID int) string {
	return shardPrefix + strconv.Itoa(ownerID) + shardExt
}

func (r *FileRepository) path(ownerID int) string {
	return filepath.Join(r.root, ShardName(ownerID))
}

func (r *FileRepository) List(ctx context.Context, ownerID int) ([]models.EventSpace, error) {
	items, err := filestore.Read[models.EventSpace](ctx, r.store, r.path(ownerID))
	if err != nil {
		return items, fmt.Errorf("list catalog %d: %w", ownerID, err)
	}
	return items, nil
}

func (r *FileRepository) Update(ctx context.Context, ownerID int, fn func([]models.EventSpace) ([]models.EventSpace, error)) error {
	if err := filestore.Update(ctx, r.store, r.path(ownerID), fn); err != nil {
		return fmt.Errorf("update catalog %d: %w", ownerID, err)
	}
	return nil
}

func (r *FileRepository) Replace(ctx context.Context, ownerID int, spaces []models.EventSpace) error {
	path := r.path(ownerID)
	unlock, err := r.store.Locks().Lock(ctx, path)
	if err != nil {
		return err
	}
	defer unlock()

	if err := filestore.Save(ctx, path, spaces); err != nil {
		return fmt.Errorf("replace catalog %d: %w", ownerID, err)
	}
	return nil
}

func (r *FileRepository) Seed(ctx context.Context, ownerID int) error {
	_, err := r.List(ctx, ownerID)
	return err
}

func (r *FileRepository) OwnerIDs(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches, err := filepath.Glob(filepath.Join(r.root, shardPrefix+"*"+shardExt))
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(m), shardPrefix), shardExt)
		id, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *FileRepository) ModTime(ownerID int) (time.Time, bool) {
	fi, err := os.Stat(r.path(ownerID))
	if err != nil {
		return time.Time{}, false
	}
	return fi.ModTime(), true
}

// FindByTitle returns the index of the first space titled title, or -1.
func FindByTitle(spaces []models.EventSpace, title string) int {
	for i := range spaces {
		if spaces[i].Title == title {
			return i
		}
	}
	return -1
}

// Get returns the first space titled title in the owner's catalog.
func Get(ctx context.Context, r Repository, ownerID int, title string) (*models.EventSpace, error) {
	list, err := r.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	i := FindByTitle(list, title)
	if i < 0 {
		return nil, fmt.Errorf("space %q in catalog %d: %w", title, ownerID, common.ErrorNotFound)
	}
	return &list[i], nil
}
