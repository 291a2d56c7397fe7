package host

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stackbit/sourcebit-sample-plugin/internal/store"
	"github.com/stackbit/sourcebit-sample-plugin/pkg/sourcebit"
)

// stubPlugin records lifecycle calls and captures the refresh func the host
// hands out at bootstrap.
type stubPlugin struct {
	refresh        sourcebit.RefreshFunc
	transformCalls atomic.Int32
	stopped        bool
}

func (p *stubPlugin) Name() string { return "stub" }

func (p *stubPlugin) OptionSpecs() []sourcebit.OptionSpec { return nil }

func (p *stubPlugin) Bootstrap(ctx *sourcebit.BootstrapContext) error {
	p.refresh = ctx.Refresh
	return nil
}

func (p *stubPlugin) Transform(data sourcebit.Data, st sourcebit.ContextStore) sourcebit.Data {
	p.transformCalls.Add(1)
	return data
}

func (p *stubPlugin) Stop() { p.stopped = true }

func TestHost_RunWithoutWatchTransformsOnce(t *testing.T) {
	plugin := &stubPlugin{}
	h := New(plugin, store.NewMemoryStore(), zap.NewNop())

	err := h.Run(context.Background(), nil, false)
	require.NoError(t, err)

	assert.Equal(t, int32(1), plugin.transformCalls.Load())
	assert.True(t, plugin.stopped, "plugin background work is stopped on exit")
}

func TestHost_RefreshSignalRerunsTransform(t *testing.T) {
	plugin := &stubPlugin{}
	h := New(plugin, store.NewMemoryStore(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- h.Run(ctx, nil, true)
	}()

	require.Eventually(t, func() bool {
		return plugin.transformCalls.Load() == 1
	}, 2*time.Second, 10*time.Millisecond, "initial transform should run")

	plugin.refresh()

	require.Eventually(t, func() bool {
		return plugin.transformCalls.Load() == 2
	}, 2*time.Second, 10*time.Millisecond, "refresh should re-run the transform")

	cancel()
	require.NoError(t, <-done)
}

func TestHost_RefreshNeverBlocks(t *testing.T) {
	plugin := &stubPlugin{}
	h := New(plugin, store.NewMemoryStore(), zap.NewNop())

	// Nobody is draining the channel; repeated signals must still return.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.signalRefresh()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("signalRefresh blocked")
	}
}
