// Package host is a minimal stand-in for the real pipeline orchestrator. It
// wires a plugin to a context store, drives the bootstrap/transform
// lifecycle, and re-runs the transform chain whenever the plugin signals a
// refresh.
package host

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/stackbit/sourcebit-sample-plugin/pkg/sourcebit"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// stopper is the optional shutdown hook a plugin may expose for its
// background work.
type stopper interface {
	Stop()
}

// Host runs one plugin through the pipeline lifecycle.
type Host struct {
	plugin  sourcebit.Plugin
	store   sourcebit.ContextStore
	logger  *zap.Logger
	refresh chan struct{}
}

// New creates a host for the given plugin and store.
func New(plugin sourcebit.Plugin, store sourcebit.ContextStore, logger *zap.Logger) *Host {
	return &Host{
		plugin: plugin,
		store:  store,
		logger: logger,
		// Buffer of one: a refresh arriving while another is pending
		// coalesces with it.
		refresh: make(chan struct{}, 1),
	}
}

// Run bootstraps the plugin, executes the initial transform, and in watch
// mode keeps re-running the transform on each refresh signal until the
// context is canceled.
func (h *Host) Run(ctx context.Context, options map[string]any, watch bool) error {
	bootstrapCtx := &sourcebit.BootstrapContext{
		Options: options,
		Store:   h.store,
		Logger:  h.logger,
		Refresh: h.signalRefresh,
	}
	if err := h.plugin.Bootstrap(bootstrapCtx); err != nil {
		return fmt.Errorf("bootstrap failed: %w", err)
	}
	defer func() {
		if s, ok := h.plugin.(stopper); ok {
			s.Stop()
		}
	}()

	h.runTransform()

	if !watch {
		return nil
	}

	h.logger.Info("Watching for updates, press Ctrl+C to exit")
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.refresh:
			h.runTransform()
		}
	}
}

// signalRefresh is the RefreshFunc handed to the plugin. It never blocks.
func (h *Host) signalRefresh() {
	select {
	case h.refresh <- struct{}{}:
	default:
	}
}

// runTransform rebuilds the shared data object from scratch and prints it.
// Starting from an empty Data each cycle is what keeps repeated transforms
// from duplicating buckets.
func (h *Host) runTransform() {
	data := h.plugin.Transform(sourcebit.Data{}, h.store)
	fmt.Println(renderSummary(data))
}

func renderSummary(data sourcebit.Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d model(s), %d object(s)",
		len(data.Models), len(data.Objects))))

	for _, object := range data.Objects {
		b.WriteString(fmt.Sprintf("\n  %v %v", object["firstName"], object["lastName"]))
		b.WriteString(detailStyle.Render(fmt.Sprintf("  %v points  id=%v",
			object["points"], object["id"])))
	}
	return b.String()
}
