package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/filex"
)

// ParseError reports a shard whose content is not a JSON array of T.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == common.ErrorParse }

var emptyArray = []byte("[]")

// Store binds shard access to a set of locks. The zero value is not usable;
// call New.
type Store struct {
	locks *Locks
}

func New() *Store {
	return &Store{locks: NewLocks()}
}

// Locks exposes the store's keyed mutex so other writers (images) can share it.
func (s *Store) Locks() *Locks {
	return s.locks
}

// Load reads the shard at path without taking its lock.
func Load[T any](ctx context.Context, path string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, seed(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", path, common.ErrorIO, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return []T{}, &ParseError{Path: path, Err: err}
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save overwrites the shard at path with items.
func Save[T any](ctx context.Context, path string, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return writeAtomic(path, data)
}

// Update loads the shard at path under its lock, hands the items to fn and
// saves whatever fn returns. A malformed shard aborts the update so it is not
// overwritten. An error from fn skips the save and is returned unchanged.
func Update[T any](ctx context.Context, s *Store, path string, fn func([]T) ([]T, error)) error {
	unlock, err := s.locks.Lock(ctx, path)
	if err != nil {
		return err
	}
	defer unlock()

	items, err := Load[T](ctx, path)
	if err != nil {
		return err
	}

	items, err = fn(items)
	if err != nil {
		return err
	}
	return Save(ctx, path, items)
}

// Read loads the shard at path while holding its lock.
func Read[T any](ctx context.Context, s *Store, path string) ([]T, error) {
	unlock, err := s.locks.Lock(ctx, path)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return Load[T](ctx, path)
}

// seed creates path holding "[]" unless something else created it first.
func seed(path string) error {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
	if errors.Is(err, os.ErrExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed %s: %w: %w", path, common.ErrorIO, err)
	}
	defer f.Close()

	if _, err := f.Write(emptyArray); err != nil {
		return fmt.Errorf("seed %s: %w: %w", path, common.ErrorIO, err)
	}
	return nil
}

func ensureDir(dir string) error {
	if err := filex.EnsureDir(dir); err != nil {
		return fmt.Errorf("%w: %w", common.ErrorIO, err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := ensureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w: %w", path, common.ErrorIO, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w: %w", path, common.ErrorIO, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w: %w", path, common.ErrorIO, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w: %w", path, common.ErrorIO, err)
	}
	return nil
}
