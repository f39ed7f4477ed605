package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	f, err := Read("testdata/feed.xml")
	require.NoError(t, err)

	t.Run("new file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feed.xml")
		require.NoError(t, Write(context.Background(), f, path))

		got, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, f, got)

		_, err = os.Stat(path + TempSuffix)
		assert.True(t, os.IsNotExist(err), "temp file should be gone")
	})

	t.Run("replace keeps permissions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feed.xml")
		require.NoError(t, os.WriteFile(path, []byte("old content"), 0o600))

		require.NoError(t, Write(context.Background(), f, path))

		fi, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

		got, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, "Example Feed", got.Title)
	})

	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "no", "such", "dir", "feed.xml")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := Write(ctx, f, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "write feed")

		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})
}
