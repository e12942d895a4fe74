package notifications

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/spacebook/internal/filestore"
	"github.com/dmitrijs2005/spacebook/internal/models"
)

func TestPrepend_NewestFirst(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	r := NewFileRepository(filestore.New(), root)
	to := UserRecipient(1)

	for i := 1; i <= 3; i++ {
		require.NoError(t, r.Prepend(ctx, to, models.Notification{Title: fmt.Sprint(i)}, 0))
	}

	got, err := r.List(ctx, to)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "3", got[0].Title)
	assert.Equal(t, "1", got[2].Title)
	assert.FileExists(t, filepath.Join(root, "UserNotifs", "1", "notifications.txt"))
}

func TestPrepend_EvictsOldestBeyondLimit(t *testing.T) {
	ctx := context.Background()
	r := NewFileRepository(filestore.New(), t.TempDir())
	to := OwnerRecipient(4)

	for i := 1; i <= 5; i++ {
		require.NoError(t, r.Prepend(ctx, to, models.Notification{Title: fmt.Sprint(i)}, 3))
	}

	got, err := r.List(ctx, to)
	require.NoError(t, err)
	titles := []string{}
	for _, n := range got {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"5", "4", "3"}, titles)
}

func TestFeedsAreSeparatedByAudience(t *testing.T) {
	ctx := context.Background()
	r := NewFileRepository(filestore.New(), t.TempDir())

	require.NoError(t, r.Prepend(ctx, UserRecipient(1), models.Notification{Title: "u"}, 0))
	owner, err := r.List(ctx, OwnerRecipient(1))
	require.NoError(t, err)
	assert.Empty(t, owner)
	assert.Equal(t, "owner/1", OwnerRecipient(1).String())
	assert.Equal(t, "user/1", UserRecipient(1).String())
}
