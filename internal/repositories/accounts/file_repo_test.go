package accounts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/spacebook/internal/common"
	"github.com/dmitrijs2005/spacebook/internal/filestore"
	"github.com/dmitrijs2005/spacebook/internal/models"
)

func newRepo(t *testing.T) (*FileRepository, string) {
	t.Helper()
	root := t.TempDir()
	return NewFileRepository(filestore.New(), root), root
}

func TestInsert_SequentialIDs(t *testing.T) {
	ctx := context.Background()
	r, root := newRepo(t)

	for want := 1; want <= 3; want++ {
		a := models.Account{Email: "u@x.com", Username: "u"}
		id, err := r.Insert(ctx, Standard, &a, nil)
		require.NoError(t, err)
		assert.Equal(t, want, id)
		assert.Equal(t, want, a.ID)
	}

	assert.FileExists(t, filepath.Join(root, UsersFile))
	list, err := r.List(ctx, Standard)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	owners, err := r.List(ctx, Owners)
	require.NoError(t, err)
	assert.Empty(t, owners)
}

func TestInsert_ConcurrentIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	r, _ := newRepo(t)

	const n = 40
	ids := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a := models.Account{Username: "x"}
			id, err := r.Insert(ctx, Owners, &a, nil)
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	seen := map[int]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	for id := 1; id <= n; id++ {
		assert.True(t, seen[id])
	}
}

func TestInsert_GuardVetoSkipsWrite(t *testing.T) {
	ctx := context.Background()
	r, _ := newRepo(t)

	veto := errors.New("dup")
	_, err := r.Insert(ctx, Standard, &models.Account{}, func([]models.Account) error { return veto })
	assert.ErrorIs(t, err, veto)

	list, err := r.List(ctx, Standard)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetAndModify(t *testing.T) {
	ctx := context.Background()
	r, _ := newRepo(t)

	_, err := r.Insert(ctx, Owners, &models.Account{Username: "o"}, nil)
	require.NoError(t, err)

	require.NoError(t, r.Modify(ctx, Owners, 1, func(a *models.Account) error {
		a.Activation = common.ActivationActivated
		return nil
	}))

	got, err := r.Get(ctx, Owners, 1)
	require.NoError(t, err)
	assert.Equal(t, common.ActivationActivated, got.Activation)

	_, err = r.Get(ctx, Owners, 2)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, r.Modify(ctx, Owners, 2, func(*models.Account) error { return nil }), common.ErrorNotFound)
}

func TestList_CorruptPartition(t *testing.T) {
	r, root := newRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, OwnersFile), []byte("{"), 0o600))

	_, err := r.List(context.Background(), Owners)
	assert.ErrorIs(t, err, common.ErrorParse)
}
