package services

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/models"
)

func TestCatalogCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	sp := gardenHall()
	sp.Rating = 5
	require.NoError(t, f.catalog.Create(ctx, 1, sp))

	got, err := f.catalog.Get(ctx, 1, "Garden Hall")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Rating, "ratings are earned, not declared")
	assert.Equal(t, "₱1000", got.FormattedPrice)
}

func TestCatalogCreate_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	tooManyTags := gardenHall()
	tooManyTags.Category = "a, b, c, d"
	assert.ErrorIs(t, f.catalog.Create(ctx, 1, tooManyTags), common.ErrorValidation)

	tooManyImages := gardenHall()
	tooManyImages.Images = []string{"1", "2", "3", "4", "5", "6"}
	assert.ErrorIs(t, f.catalog.Create(ctx, 1, tooManyImages), common.ErrorValidation)

	noCapacity := gardenHall()
	noCapacity.Capacity = 0
	assert.ErrorIs(t, f.catalog.Create(ctx, 1, noCapacity), common.ErrorValidation)

	list, err := f.catalog.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list, "nothing written on validation failure")
}

func TestUpdateByTitle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	require.NoError(t, f.spaces.Replace(ctx, 1, []models.EventSpace{
		{Title: "Garden Hall", Capacity: 10, Rating: 4, ReviewCount: 3},
		{Title: "Garden Hall", Capacity: 20},
	}))

	upd := gardenHall()
	upd.Capacity = 300
	upd.Images = make([]string, 20)
	require.NoError(t, f.catalog.UpdateByTitle(ctx, 1, upd))

	list, err := f.catalog.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 300, list[0].Capacity, "first match is updated")
	assert.Equal(t, 4, list[0].Rating)
	assert.Equal(t, 3, list[0].ReviewCount)
	assert.Equal(t, "Cebu City", list[0].Location)
	assert.Equal(t, 20, list[1].Capacity)

	missing := gardenHall()
	missing.Title = "garden hall"
	assert.ErrorIs(t, f.catalog.UpdateByTitle(ctx, 1, missing), common.ErrorNotFound)

	upd.Images = make([]string, 21)
	assert.ErrorIs(t, f.catalog.UpdateByTitle(ctx, 1, upd), common.ErrorValidation)
}

func TestCatalogReplaceAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	require.NoError(t, f.catalog.Create(ctx, 1, gardenHall()))

	require.NoError(t, f.catalog.ReplaceAll(ctx, 1, []models.EventSpace{space("Sky Deck", 0)}))
	list, err := f.catalog.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sky Deck"}, titles(list))

	bad := space("X", 0)
	bad.Category = ""
	assert.ErrorIs(t, f.catalog.ReplaceAll(ctx, 1, []models.EventSpace{bad}), common.ErrorValidation)
}

func TestCatalogSaveImages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)
	img := jpegBytes(t)

	paths, err := f.catalog.SaveImages(ctx, 4, []io.Reader{bytes.NewReader(img)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Event Space Images/4/img_1.png"}, paths)

	paths, err = f.catalog.SaveImages(ctx, 4, []io.Reader{bytes.NewReader(img)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Event Space Images/4/img_2.png"}, paths)
}
