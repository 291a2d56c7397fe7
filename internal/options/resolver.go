// Package options resolves plugin option values through their declared
// fallback chain. Each option resolves independently; precedence from
// highest to lowest is runtime parameter, config-file value, environment
// variable, declared default.
package options

import (
	"os"
	"strconv"

	"github.com/stackbit/sourcebit-sample-plugin/pkg/sourcebit"
)

// Sources holds the value sources an option may resolve from.
type Sources struct {
	// RuntimeParameters are values passed on this run's command line. A
	// runtime parameter only applies to options that declare one.
	RuntimeParameters map[string]any

	// ConfigFile are the option values loaded from the config file.
	ConfigFile map[string]any

	// LookupEnv reads an environment variable. Defaults to os.LookupEnv;
	// tests inject their own.
	LookupEnv func(key string) (string, bool)
}

// Resolve produces the final value for every declared option. No validation
// happens here beyond coercing environment strings to the type of the
// option's default; malformed values fall through to the next source.
func Resolve(specs []sourcebit.OptionSpec, src Sources) map[string]any {
	lookupEnv := src.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	resolved := make(map[string]any, len(specs))
	for _, spec := range specs {
		resolved[spec.Name] = resolveOne(spec, src, lookupEnv)
	}
	return resolved
}

func resolveOne(spec sourcebit.OptionSpec, src Sources, lookupEnv func(string) (string, bool)) any {
	if spec.RuntimeParameter != "" {
		if value, ok := src.RuntimeParameters[spec.RuntimeParameter]; ok {
			return value
		}
	}

	if value, ok := src.ConfigFile[spec.Name]; ok {
		return value
	}

	if spec.Env != "" {
		if raw, ok := lookupEnv(spec.Env); ok {
			if value, ok := coerce(raw, spec.Default); ok {
				return value
			}
		}
	}

	return spec.Default
}

// coerce converts an environment string to the type of the option's default.
// Options without a typed default pass the string through unchanged.
func coerce(raw string, defaultValue any) (any, bool) {
	switch defaultValue.(type) {
	case bool:
		value, err := strconv.ParseBool(raw)
		return value, err == nil
	case int:
		value, err := strconv.Atoi(raw)
		return value, err == nil
	case float64:
		value, err := strconv.ParseFloat(raw, 64)
		return value, err == nil
	default:
		return raw, true
	}
}

// Public filters resolved options down to the ones safe to write to the main
// config artifact, dropping any option whose spec is marked private.
func Public(specs []sourcebit.OptionSpec, resolved map[string]any) map[string]any {
	public := make(map[string]any, len(resolved))
	for _, spec := range specs {
		if spec.Private {
			continue
		}
		if value, ok := resolved[spec.Name]; ok {
			public[spec.Name] = value
		}
	}
	return public
}
