package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/namedrop/internal/adapters/driving/mcp"
)

type stubWatcher struct {
	changes chan struct{}
	err     error
	called  chan struct{}
}

func (w *stubWatcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	close(w.called)
	if w.err != nil {
		return nil, w.err
	}
	go func() {
		<-ctx.Done()
		close(w.changes)
	}()
	return w.changes, nil
}

func TestMCPServeCmd_HasPortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_RequiresAnnotationService(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()
	annotationService = nil

	_, err := execute(t, "mcp", "serve")
	require.Error(t, err)
	assert.ErrorIs(t, err, mcp.ErrMissingAnnotationService)
}

func TestWatchConfig(t *testing.T) {
	t.Run("no watcher", func(t *testing.T) {
		old := configWatcher
		configWatcher = nil
		defer func() { configWatcher = old }()

		assert.NoError(t, watchConfig(context.Background()))
	})

	t.Run("watch error is returned", func(t *testing.T) {
		old := configWatcher
		configWatcher = &stubWatcher{err: errors.New("no inotify"), called: make(chan struct{})}
		defer func() { configWatcher = old }()

		assert.Error(t, watchConfig(context.Background()))
	})

	t.Run("drains changes until cancelled", func(t *testing.T) {
		old := configWatcher
		w := &stubWatcher{changes: make(chan struct{}, 1), called: make(chan struct{})}
		configWatcher = w
		defer func() { configWatcher = old }()

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, watchConfig(ctx))
		w.changes <- struct{}{}

		select {
		case <-w.called:
		case <-time.After(time.Second):
			t.Fatal("watcher not started")
		}
		cancel()
	})
}
