// Package sample implements the reference source plugin. It owns a small
// list of person records, keeps them in persisted plugin state, and feeds
// them into the pipeline's shared data object on every transform. The whole
// package is meant to be copied and adapted by plugin authors.
package sample

import (
	"fmt"
	"math/rand"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/stackbit/sourcebit-sample-plugin/internal/clock"
	"github.com/stackbit/sourcebit-sample-plugin/pkg/sourcebit"
)

const (
	pluginName = "sourcebit-sample-plugin"

	modelName  = "sample-data"
	modelLabel = "Sample Data"

	johnEntryID = "123456"
	janeEntryID = "654321"
)

// fieldNames is the declared field list of the sample model, in the order
// objects carry them.
var fieldNames = []string{"firstName", "lastName", "points"}

// Options are the plugin's resolved option values. mySecret is never read
// by any logic; it exists to demonstrate private option handling.
type Options struct {
	MySecret      string `mapstructure:"mySecret"`
	Watch         bool   `mapstructure:"watch"`
	PointsForJane int    `mapstructure:"pointsForJane"`
	PointsForJohn int    `mapstructure:"pointsForJohn"`
}

// Plugin is the sample source plugin.
type Plugin struct {
	clock   clock.Clock
	watcher *Watcher
}

var (
	_ sourcebit.Plugin      = (*Plugin)(nil)
	_ sourcebit.SetupPlugin = (*Plugin)(nil)
)

// New creates the sample plugin. The clock drives the optional watch
// routine; production callers pass clock.NewRealClock().
func New(clk clock.Clock) *Plugin {
	return &Plugin{clock: clk}
}

// Name returns the plugin's identifier, used as the model source.
func (p *Plugin) Name() string {
	return pluginName
}

// OptionSpecs declares the plugin's configuration options and how each one
// resolves.
func (p *Plugin) OptionSpecs() []sourcebit.OptionSpec {
	return []sourcebit.OptionSpec{
		{Name: "mySecret", Env: "MY_SECRET", Private: true},
		{Name: "watch", Default: false, RuntimeParameter: "watch"},
		{Name: "pointsForJane", Default: 0},
		{Name: "pointsForJohn", Default: 0},
	}
}

// Bootstrap loads the persisted state or, on first run, seeds it with the
// two fixed entries. With the watch option set it also starts the periodic
// update routine. Bootstrap is called at most once per process.
func (p *Plugin) Bootstrap(ctx *sourcebit.BootstrapContext) error {
	opts, err := decodeOptions(ctx.Options)
	if err != nil {
		return fmt.Errorf("failed to decode options: %w", err)
	}

	logger := ctx.Logger.Named("sample")

	state, err := ctx.Store.Get()
	if err != nil {
		return fmt.Errorf("failed to load plugin state: %w", err)
	}

	if state != nil && len(state.Entries) > 0 {
		logger.Info("Loaded entries from persisted state",
			zap.Int("count", len(state.Entries)))
	} else {
		state = &sourcebit.PluginState{
			Entries: []sourcebit.Entry{
				{
					ID: johnEntryID,
					Fields: sourcebit.EntryFields{
						FirstName: "John",
						LastName:  "Doe",
						Points:    opts.PointsForJohn,
					},
				},
				{
					ID: janeEntryID,
					Fields: sourcebit.EntryFields{
						FirstName: "Jane",
						LastName:  "Doe",
						Points:    opts.PointsForJane,
					},
				},
			},
		}
		if err := ctx.Store.Set(state); err != nil {
			return fmt.Errorf("failed to persist initial state: %w", err)
		}
		logger.Info("Initialized entries", zap.Int("count", len(state.Entries)))
	}

	if opts.Watch {
		p.watcher = NewWatcher(ctx.Store, ctx.Refresh, p.clock, logger, rand.Intn)
		if err := p.watcher.Start(); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
	}

	return nil
}

// Stop shuts down the watch routine if one is running.
func (p *Plugin) Stop() {
	if p.watcher != nil {
		p.watcher.Stop()
	}
}

// Transform appends the sample model and one normalized object per entry to
// the shared data object. It reads state fresh on every call and never
// mutates its input, so repeated calls over the same state produce
// equivalent output.
func (p *Plugin) Transform(data sourcebit.Data, store sourcebit.ContextStore) sourcebit.Data {
	var entries []sourcebit.Entry
	if state, err := store.Get(); err == nil && state != nil {
		entries = state.Entries
	}

	model := p.model()

	objects := make([]sourcebit.Object, 0, len(entries))
	for _, entry := range entries {
		object := sourcebit.Object{
			"firstName": entry.Fields.FirstName,
			"lastName":  entry.Fields.LastName,
			"points":    entry.Fields.Points,
			"id":        entry.ID,
		}
		object[sourcebit.MetadataKey] = model
		objects = append(objects, object)
	}

	models := make([]sourcebit.Model, 0, len(data.Models)+1)
	models = append(models, data.Models...)
	models = append(models, model)

	allObjects := make([]sourcebit.Object, 0, len(data.Objects)+len(objects))
	allObjects = append(allObjects, data.Objects...)
	allObjects = append(allObjects, objects...)

	return sourcebit.Data{Models: models, Objects: allObjects}
}

// model builds the static descriptor for the entries this plugin produces.
// It is recomputed on every transform and never persisted.
func (p *Plugin) model() sourcebit.Model {
	return sourcebit.Model{
		Source:     pluginName,
		ModelName:  modelName,
		ModelLabel: modelLabel,
		FieldNames: fieldNames,
	}
}

// decodeOptions maps resolved option values onto the typed Options struct.
// Weak typing lets YAML and environment scalars coerce to the right types.
func decodeOptions(raw map[string]any) (Options, error) {
	var opts Options
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &opts,
	})
	if err != nil {
		return opts, err
	}
	if err := decoder.Decode(raw); err != nil {
		return opts, err
	}
	return opts, nil
}
