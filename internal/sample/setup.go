package sample

import "github.com/stackbit/sourcebit-sample-plugin/pkg/sourcebit"

// maxPointsForJohn caps John's starting points collected during setup.
// Values above the cap are silently clamped, never rejected.
const maxPointsForJohn = 15

// Setup collects the plugin's initial configuration from the operator. The
// progress step is a placeholder for the remote round-trip a real source
// would make before prompting.
func (p *Plugin) Setup(driver *sourcebit.SetupDriver) (map[string]any, error) {
	driver.Progress.Start("Preparing sample data")
	driver.Progress.Succeed("Sample data ready")

	return driver.Prompter.Prompt(p.setupQuestions())
}

func (p *Plugin) setupQuestions() []sourcebit.Question {
	return []sourcebit.Question{
		{
			Type:    "number",
			Name:    "pointsForJane",
			Message: "How many points should Jane start with?",
		},
		{
			Type:    "number",
			Name:    "pointsForJohn",
			Message: "How many points should John start with?",
		},
	}
}

// OptionsFromSetup shapes the operator's answers into the option values to
// persist: pointsForJane passes through unchanged, pointsForJohn is clamped
// to maxPointsForJohn.
func (p *Plugin) OptionsFromSetup(answers map[string]any) map[string]any {
	options := map[string]any{
		"pointsForJane": answers["pointsForJane"],
		"pointsForJohn": answers["pointsForJohn"],
	}

	if points, ok := toInt(answers["pointsForJohn"]); ok && points > maxPointsForJohn {
		options["pointsForJohn"] = maxPointsForJohn
	}
	return options
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
