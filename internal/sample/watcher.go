package sample

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/stackbit/sourcebit-sample-plugin/internal/clock"
	"github.com/stackbit/sourcebit-sample-plugin/pkg/sourcebit"
)

// watchInterval is how often the watch routine mutates an entry.
const watchInterval = 3 * time.Second

// Watcher periodically picks one entry at random, increments its points,
// persists the updated state, and signals the host to re-run the transform
// chain. Exactly one firing runs at a time; each read-modify-write completes
// before the next tick is handled.
type Watcher struct {
	store   sourcebit.ContextStore
	refresh sourcebit.RefreshFunc
	clock   clock.Clock
	logger  *zap.Logger
	pick    func(n int) int

	stopChan    chan struct{}
	stoppedChan chan struct{}
	started     bool
}

// NewWatcher creates a watcher. pick selects the entry index to update given
// the entry count; production callers pass rand.IntN, tests pass a stub.
func NewWatcher(
	store sourcebit.ContextStore,
	refresh sourcebit.RefreshFunc,
	clk clock.Clock,
	logger *zap.Logger,
	pick func(n int) int,
) *Watcher {
	return &Watcher{
		store:       store,
		refresh:     refresh,
		clock:       clk,
		logger:      logger.Named("watcher"),
		pick:        pick,
		stopChan:    make(chan struct{}),
		stoppedChan: make(chan struct{}),
	}
}

// Start begins the periodic update goroutine.
func (w *Watcher) Start() error {
	if w.started {
		return fmt.Errorf("watcher already started")
	}
	w.started = true

	w.logger.Info("Starting watch routine",
		zap.Duration("interval", watchInterval))

	// The ticker is created here rather than in the goroutine so a caller
	// driving a mock clock can advance it as soon as Start returns.
	ticker := w.clock.NewTicker(watchInterval)
	go w.run(ticker)
	return nil
}

// Stop shuts down the periodic updates and waits for the goroutine to
// finish.
func (w *Watcher) Stop() {
	if !w.started {
		return
	}

	close(w.stopChan)
	<-w.stoppedChan
	w.logger.Info("Watch routine stopped")
}

func (w *Watcher) run(ticker clock.Ticker) {
	defer close(w.stoppedChan)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C():
			if err := w.updateRandomEntry(); err != nil {
				w.logger.Error("Failed to update entry", zap.Error(err))
			}

		case <-w.stopChan:
			return
		}
	}
}

// updateRandomEntry performs one firing: increment a random entry's points
// by one, persist, and request a refresh.
func (w *Watcher) updateRandomEntry() error {
	state, err := w.store.Get()
	if err != nil {
		return fmt.Errorf("failed to load plugin state: %w", err)
	}
	if state == nil || len(state.Entries) == 0 {
		return nil
	}

	entry := &state.Entries[w.pick(len(state.Entries))]
	oldPoints := entry.Fields.Points
	entry.Fields.Points++

	if err := w.store.Set(state); err != nil {
		return fmt.Errorf("failed to persist plugin state: %w", err)
	}

	w.logger.Info("Updated entry points",
		zap.String("id", entry.ID),
		zap.Int("old", oldPoints),
		zap.Int("new", entry.Fields.Points))

	w.refresh()
	return nil
}
