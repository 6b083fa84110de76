package lock

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eips-wg/preprocessor/errors"
)

func TestAcquire_Uncontended(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".lock")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	f, err := Acquire(context.Background(), path, logger, "cache directory")
	require.NoError(t, err)
	assert.Equal(t, path, f.Path())
	assert.NotContains(t, buf.String(), "waiting on")

	require.NoError(t, f.Release())
	require.NoError(t, f.Release())
}

func TestAcquire_WaitsForHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	holder := flock.New(path)
	ok, err := holder.TryLock()
	require.NoError(t, err)
	require.True(t, ok)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	go func() {
		time.Sleep(300 * time.Millisecond)
		_ = holder.Unlock()
	}()

	f, err := Acquire(context.Background(), path, logger, "cache directory")
	require.NoError(t, err)
	defer f.Release()

	assert.Contains(t, buf.String(), "waiting on cache directory...")
}

func TestAcquire_ContextCancelled(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	holder := flock.New(path)
	ok, err := holder.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer holder.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = Acquire(ctx, path, nil, "build directory")
	require.Error(t, err)
	assert.Equal(t, errors.CodeLockFailed, errors.GetCode(err))
}
