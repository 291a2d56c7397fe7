// Package sourcebit defines the plugin contract for the content-aggregation
// pipeline: the shared data shapes exchanged between the orchestrator and a
// source plugin, and the capability interfaces the orchestrator supplies to
// the plugin at each lifecycle point.
//
// The actual sample plugin lives in internal/sample; external plugin authors
// only need this package to implement their own source.
package sourcebit

import "go.uber.org/zap"

// MetadataKey is the object key under which a normalized object carries its
// model descriptor.
const MetadataKey = "__metadata"

// EntryFields is the fixed field set of the sample plugin's records.
// The JSON tags match the pipeline's cache format, so persisted state from a
// previous run round-trips unchanged.
type EntryFields struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Points    int    `json:"points"`
}

// Entry is one record owned by a plugin: a stable opaque identifier plus its
// field values. Entries are created once at bootstrap and mutated in place
// afterwards, never deleted.
type Entry struct {
	ID     string      `json:"id"`
	Fields EntryFields `json:"fields"`
}

// PluginState is the persisted context owned exclusively by one plugin
// instance. Entry order is creation order and stays stable across runs.
// No component other than the owning plugin may mutate it.
type PluginState struct {
	Entries []Entry `json:"entries"`
}

// Model describes the shape and provenance of the objects a plugin produces.
// It is recomputed on every transform and never persisted.
type Model struct {
	Source             string   `json:"source"`
	ModelName          string   `json:"modelName"`
	ModelLabel         string   `json:"modelLabel"`
	ProjectID          string   `json:"projectId"`
	ProjectEnvironment string   `json:"projectEnvironment"`
	FieldNames         []string `json:"fieldNames"`
}

// Object is the orchestrator-facing representation of an entry: the entry's
// fields flattened to top-level keys, plus "id" and "__metadata" (the Model).
type Object map[string]any

// Data is the shared data object passed through the transform chain. Each
// plugin appends to both buckets and must preserve existing contents and
// order.
type Data struct {
	Models  []Model
	Objects []Object
}

// BootstrapContext carries the capabilities the orchestrator hands a plugin
// when it bootstraps. All fields are supplied by the host; the plugin owns
// none of them.
type BootstrapContext struct {
	// Options holds the plugin's option values, already resolved through the
	// runtime-parameter / config-file / environment / default chain.
	Options map[string]any

	// Store reads and writes the plugin's persisted state.
	Store ContextStore

	// Logger is a structured logger for the plugin to use. Plugins should
	// namespace it with logger.Named(pluginName).
	Logger *zap.Logger

	// Refresh asks the orchestrator to re-run the transform chain. It is
	// fire-and-forget and must not block.
	Refresh RefreshFunc
}
