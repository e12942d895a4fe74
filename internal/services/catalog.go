package services

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/images"
	"github.com/dmitrijs2005/spacebook/internal/logging"
	"github.com/dmitrijs2005/spacebook/internal/models"
	"github.com/dmitrijs2005/spacebook/internal/repositories/spaces"
	"github.com/dmitrijs2005/spacebook/internal/validation"
)

// CatalogService manages owners' listings. Titles are the only key; when a
// catalog holds duplicate titles the first one wins.
type CatalogService struct {
	spaces   spaces.Repository
	images   *images.Store
	validate *validation.Validator
	currency string
	log      logging.Logger
}

func NewCatalogService(sp spaces.Repository, img *images.Store, v *validation.Validator, currency string, log logging.Logger) *CatalogService {
	return &CatalogService{spaces: sp, images: img, validate: v, currency: currency, log: log}
}

func (s *CatalogService) check(space *models.EventSpace, maxImages int) error {
	if err := s.validate.Struct(space); err != nil {
		return err
	}
	if len(space.Images) > maxImages {
		return validation.Fail("ImageUrls", fmt.Sprintf("must hold at most %d images", maxImages))
	}
	return nil
}

// Create appends space to the owner's catalog.
func (s *CatalogService) Create(ctx context.Context, ownerID int, space models.EventSpace) error {
	if err := s.check(&space, common.MaxImagesOnCreate); err != nil {
		return err
	}
	space.Rating = 0
	space.ReviewCount = 0
	space.FormattedPrice = formatAmount(s.currency, space.DailyRate)

	err := s.spaces.Update(ctx, ownerID, func(list []models.EventSpace) ([]models.EventSpace, error) {
		if spaces.FindByTitle(list, space.Title) >= 0 {
			s.log.Warn(ctx, "duplicate space title in catalog", "owner_id", ownerID, "title", space.Title)
		}
		return append(list, space), nil
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "space created", "owner_id", ownerID, "title", space.Title)
	return nil
}

// UpdateByTitle overwrites the editable fields of the first space titled
// updated.Title. Rating and review count are kept.
func (s *CatalogService) UpdateByTitle(ctx context.Context, ownerID int, updated models.EventSpace) error {
	if err := s.check(&updated, common.MaxImagesOnUpdate); err != nil {
		return err
	}

	return s.spaces.Update(ctx, ownerID, func(list []models.EventSpace) ([]models.EventSpace, error) {
		i := spaces.FindByTitle(list, updated.Title)
		if i < 0 {
			return nil, fmt.Errorf("space %q: %w", updated.Title, common.ErrorNotFound)
		}

		sp := &list[i]
		sp.Description = updated.Description
		sp.Capacity = updated.Capacity
		sp.DailyRate = updated.DailyRate
		sp.ExtensionRate = updated.ExtensionRate
		sp.ChairRate = updated.ChairRate
		sp.Location = updated.Location
		sp.Category = updated.Category
		sp.Images = updated.Images
		sp.FormattedPrice = formatAmount(s.currency, updated.DailyRate)
		return list, nil
	})
}

// ReplaceAll overwrites the owner's whole catalog.
func (s *CatalogService) ReplaceAll(ctx context.Context, ownerID int, list []models.EventSpace) error {
	for i := range list {
		if err := s.check(&list[i], common.MaxImagesOnUpdate); err != nil {
			return fmt.Errorf("space %d: %w", i, err)
		}
	}
	return s.spaces.Replace(ctx, ownerID, list)
}

func (s *CatalogService) List(ctx context.Context, ownerID int) ([]models.EventSpace, error) {
	return s.spaces.List(ctx, ownerID)
}

func (s *CatalogService) Get(ctx context.Context, ownerID int, title string) (*models.EventSpace, error) {
	return spaces.Get(ctx, s.spaces, ownerID, title)
}

// SaveImages stores the uploads for the owner and returns their record paths.
func (s *CatalogService) SaveImages(ctx context.Context, ownerID int, readers []io.Reader) ([]string, error) {
	return s.images.SaveSpaceImages(ctx, ownerID, readers)
}

// WriteImages stores images decoded earlier with images.Decode.
func (s *CatalogService) WriteImages(ctx context.Context, ownerID int, imgs []image.Image) ([]string, error) {
	return s.images.WriteSpaceImages(ctx, ownerID, imgs)
}

// applyRating sets the aggregate rating of the first space titled title and
// counts one more review.
func (s *CatalogService) applyRating(ctx context.Context, ownerID int, title string, rating int) error {
	return s.spaces.Update(ctx, ownerID, func(list []models.EventSpace) ([]models.EventSpace, error) {
		i := spaces.FindByTitle(list, title)
		if i < 0 {
			return nil, fmt.Errorf("space %q: %w", title, common.ErrorNotFound)
		}
		list[i].Rating = rating
		list[i].ReviewCount++
		return list, nil
	})
}
