// Package images stores uploaded pictures under the data directory as PNG
// files numbered per directory (img_1.png, img_2.png, ...).
package images

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/filestore"
	"github.com/dmitrijs2005/spacebook/internal/filex"
)

const (
	SpaceImagesDir = "Event Space Images"
	UserImagesDir  = "User Images"

	SpacePrefix  = "img"
	AvatarPrefix = "avatar"

	ext = ".png"
)

// Store writes images below root. Directory numbering is serialized through
// locks shared with the shard store.
type Store struct {
	root  string
	locks *filestore.Locks
}

func New(root string, locks *filestore.Locks) *Store {
	return &Store{root: root, locks: locks}
}

// Decode reads every upload into memory. Any undecodable upload fails the
// whole batch with common.ErrorValidation before anything is written.
func Decode(readers []io.Reader) ([]image.Image, error) {
	imgs := make([]image.Image, 0, len(readers))
	for i, r := range readers {
		img, err := decode(r)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i+1, err)
		}
		imgs = append(imgs, img)
	}
	return imgs, nil
}

func decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w: %w", common.ErrorValidation, err)
	}
	return img, nil
}

// SaveSpaceImages decodes all readers, then writes each as the next
// img_N.png for the owner. It returns the record paths relative to root, in
// order.
func (s *Store) SaveSpaceImages(ctx context.Context, ownerID int, readers []io.Reader) ([]string, error) {
	imgs, err := Decode(readers)
	if err != nil {
		return nil, err
	}
	return s.WriteSpaceImages(ctx, ownerID, imgs)
}

// WriteSpaceImages writes already decoded images for the owner.
func (s *Store) WriteSpaceImages(ctx context.Context, ownerID int, imgs []image.Image) ([]string, error) {
	dir := filepath.Join(s.root, SpaceImagesDir, strconv.Itoa(ownerID))

	paths := make([]string, 0, len(imgs))
	for _, img := range imgs {
		p, err := s.writeNext(ctx, dir, SpacePrefix, img)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// SaveAvatar writes the next avatar_N.png for the user.
func (s *Store) SaveAvatar(ctx context.Context, userID int, r io.Reader) (string, error) {
	dir := filepath.Join(s.root, UserImagesDir, strconv.Itoa(userID))
	img, err := decode(r)
	if err != nil {
		return "", err
	}
	return s.writeNext(ctx, dir, AvatarPrefix, img)
}

// Path resolves a stored relative path against root.
func (s *Store) Path(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func (s *Store) writeNext(ctx context.Context, dir, prefix string, img image.Image) (string, error) {
	unlock, err := s.locks.Lock(ctx, dir)
	if err != nil {
		return "", err
	}
	defer unlock()

	if err := filex.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorIO, err)
	}

	n, err := filex.NextIndex(dir, prefix, ext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorIO, err)
	}

	target := filepath.Join(dir, prefix+"_"+strconv.Itoa(n)+ext)
	if err := writePNG(target, img); err != nil {
		return "", fmt.Errorf("write %s: %w: %w", target, common.ErrorIO, err)
	}

	return filex.Rel(s.root, target)
}

func writePNG(target string, img image.Image) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload.*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()

	if err := imaging.Encode(tmp, img, imaging.PNG); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, target); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}
