package sourcebit

// Question describes one prompt the setup flow wants rendered. The plugin
// only declares questions; rendering is the setup driver's job.
type Question struct {
	// Type is the answer type the prompt should collect ("number", "input",
	// "confirm").
	Type string

	// Name keys the answer in the answers map and matches the option name
	// the answer will configure.
	Name string

	// Message is the prompt text shown to the operator.
	Message string
}

// Prompter renders a list of questions to the operator and returns their
// answers keyed by question name.
type Prompter interface {
	Prompt(questions []Question) (map[string]any, error)
}

// ProgressIndicator shows progress for a setup step that takes a while.
type ProgressIndicator interface {
	// Start begins showing the indicator with the given title.
	Start(title string)

	// Succeed stops the indicator and marks the step as completed.
	Succeed(message string)
}

// SetupDriver bundles the operator-facing capabilities the orchestrator
// supplies to a plugin's setup flow.
type SetupDriver struct {
	Prompter Prompter
	Progress ProgressIndicator
}

// SetupPlugin is the optional interface for plugins that participate in the
// interactive setup flow. Setup runs outside the data path and only shapes
// configuration read on a later run.
type SetupPlugin interface {
	// Setup collects raw answers from the operator via the driver.
	Setup(driver *SetupDriver) (map[string]any, error)

	// OptionsFromSetup turns raw answers into the final option values to
	// persist. It may apply corrective policy (clamping) but never rejects.
	OptionsFromSetup(answers map[string]any) map[string]any
}
