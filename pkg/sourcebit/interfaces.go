package sourcebit

// ContextStore provides access to a plugin's persisted state. The
// orchestrator owns the persistence format and guarantees the state survives
// across runs; the plugin only sees Get and Set.
type ContextStore interface {
	// Get returns the persisted state, or nil when nothing has been
	// persisted yet.
	Get() (*PluginState, error)

	// Set replaces the persisted state. Plugins call it after every
	// mutation, including the initial creation at bootstrap.
	Set(state *PluginState) error
}

// RefreshFunc signals the orchestrator to re-execute the transform chain.
// Delivery ordering and backpressure are the orchestrator's contract; the
// function must not block the caller.
type RefreshFunc func()

// OptionSpec declares one configuration option recognized by a plugin and
// how its value may be resolved. Precedence, highest first: runtime
// parameter (when declared), config-file value, environment variable (when
// declared), then Default.
type OptionSpec struct {
	// Name is the option key as it appears in config files and resolved
	// option maps.
	Name string

	// Env names the environment variable the option may be resolved from.
	// Empty means the option has no environment source.
	Env string

	// Private marks options that must be kept out of the main config
	// artifact (secrets). The setup flow never writes private options to
	// the config file.
	Private bool

	// Default is the value used when no other source supplies one. Its type
	// also drives coercion of environment variable strings.
	Default any

	// RuntimeParameter names the runtime parameter (CLI flag) that, when
	// set, overrides every other source. Empty means none.
	RuntimeParameter string
}

// Plugin is the contract every source plugin implements. The orchestrator
// calls Bootstrap exactly once per process, then Transform once initially
// and once per refresh signal.
type Plugin interface {
	// Name returns the plugin's unique identifier, used for model source
	// attribution and logging.
	Name() string

	// OptionSpecs declares the configuration options this plugin
	// understands.
	OptionSpecs() []OptionSpec

	// Bootstrap initializes or loads the plugin's persisted state and may
	// start background work (e.g. a watch routine).
	Bootstrap(ctx *BootstrapContext) error

	// Transform maps the plugin's state into the shared data object. It
	// must not mutate its input or the persisted state; it returns a new
	// Data with the plugin's model and objects appended.
	Transform(data Data, store ContextStore) Data
}
