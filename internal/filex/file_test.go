package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesNested(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "preupload")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o660))

	require.Error(t, EnsureDir(p), "should fail when a file exists with the same name")
}

func TestNextIndex(t *testing.T) {
	dir := t.TempDir()

	n, err := NextIndex(filepath.Join(dir, "missing"), "img", ".png")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for _, name := range []string{"img_1.png", "img_7.png", "img_x.png", "avatar_9.png", "img_3.jpg"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "img_20.png"), 0o700))

	n, err = NextIndex(dir, "img", ".png")
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = NextIndex(dir, "avatar", ".png")
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestRel(t *testing.T) {
	base := t.TempDir()
	got, err := Rel(base, filepath.Join(base, "Event Space Images", "3", "img_1.png"))
	require.NoError(t, err)
	assert.Equal(t, "Event Space Images/3/img_1.png", got)
}
