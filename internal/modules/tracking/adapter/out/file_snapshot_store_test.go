package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	trackingoutadapter "dragochi/internal/modules/tracking/adapter/out"
)

func TestFileSnapshotStoreLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "state", "tracking-snapshot.json")
	store := trackingoutadapter.NewFileSnapshotStore(path)

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, store.Save(ctx, []byte(`{"status":"running"}`)))
	require.NoError(t, store.Save(ctx, []byte(`{"status":"paused"}`)))
	data, err = store.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"paused"}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	data, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)
}
