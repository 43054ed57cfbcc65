package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "archive")

	storage, err := NewFileStorage(dir)
	require.NoError(t, err)

	require.NoError(t, storage.Store(ctx, "metrics/2024-01-02.json", []byte(`{"b":2}`)))
	require.NoError(t, storage.Store(ctx, "metrics/2024-01-01.json", []byte(`{"a":1}`)))
	require.NoError(t, storage.Store(ctx, "other.json", []byte(`{}`)))

	data, err := os.ReadFile(filepath.Join(dir, "metrics", "2024-01-01.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	names, err := storage.List(ctx, "metrics/")
	require.NoError(t, err)
	assert.Equal(t, []string{"metrics/2024-01-01.json", "metrics/2024-01-02.json"}, names)

	require.NoError(t, storage.Delete(ctx, "metrics/2024-01-01.json"))
	names, err = storage.List(ctx, "metrics/")
	require.NoError(t, err)
	assert.Equal(t, []string{"metrics/2024-01-02.json"}, names)

	assert.Error(t, storage.Delete(ctx, "metrics/missing.json"))
}
