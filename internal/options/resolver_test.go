package options

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stackbit/sourcebit-sample-plugin/pkg/sourcebit"
)

func envWith(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := vars[key]
		return value, ok
	}
}

func TestResolve_Precedence(t *testing.T) {
	watchSpec := sourcebit.OptionSpec{Name: "watch", Default: false, RuntimeParameter: "watch"}
	pointsSpec := sourcebit.OptionSpec{Name: "points", Env: "POINTS", Default: 0}

	tests := []struct {
		name     string
		spec     sourcebit.OptionSpec
		src      Sources
		expected any
	}{
		{
			name: "runtime parameter overrides config file",
			spec: watchSpec,
			src: Sources{
				RuntimeParameters: map[string]any{"watch": true},
				ConfigFile:        map[string]any{"watch": false},
			},
			expected: true,
		},
		{
			name:     "absent all sources resolves to default",
			spec:     watchSpec,
			src:      Sources{},
			expected: false,
		},
		{
			name: "config file overrides environment",
			spec: pointsSpec,
			src: Sources{
				ConfigFile: map[string]any{"points": 7},
				LookupEnv:  envWith(map[string]string{"POINTS": "9"}),
			},
			expected: 7,
		},
		{
			name: "environment overrides default",
			spec: pointsSpec,
			src: Sources{
				LookupEnv: envWith(map[string]string{"POINTS": "9"}),
			},
			expected: 9,
		},
		{
			name: "malformed environment value falls through to default",
			spec: pointsSpec,
			src: Sources{
				LookupEnv: envWith(map[string]string{"POINTS": "not-a-number"}),
			},
			expected: 0,
		},
		{
			name: "runtime parameter only applies when declared",
			spec: pointsSpec,
			src: Sources{
				RuntimeParameters: map[string]any{"points": 42},
			},
			expected: 0,
		},
		{
			name: "untyped option passes environment string through",
			spec: sourcebit.OptionSpec{Name: "mySecret", Env: "MY_SECRET", Private: true},
			src: Sources{
				LookupEnv: envWith(map[string]string{"MY_SECRET": "hunter2"}),
			},
			expected: "hunter2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.src.LookupEnv == nil {
				tt.src.LookupEnv = envWith(nil)
			}
			resolved := Resolve([]sourcebit.OptionSpec{tt.spec}, tt.src)
			assert.Equal(t, tt.expected, resolved[tt.spec.Name])
		})
	}
}

func TestResolve_BoolCoercionFromEnv(t *testing.T) {
	spec := sourcebit.OptionSpec{Name: "watch", Env: "WATCH", Default: false, RuntimeParameter: "watch"}

	resolved := Resolve([]sourcebit.OptionSpec{spec}, Sources{
		LookupEnv: envWith(map[string]string{"WATCH": "true"}),
	})
	assert.Equal(t, true, resolved["watch"])
}

func TestResolve_AllDeclaredOptionsPresent(t *testing.T) {
	specs := []sourcebit.OptionSpec{
		{Name: "mySecret", Env: "MY_SECRET", Private: true},
		{Name: "watch", Default: false, RuntimeParameter: "watch"},
		{Name: "pointsForJane", Default: 0},
		{Name: "pointsForJohn", Default: 0},
	}

	resolved := Resolve(specs, Sources{LookupEnv: envWith(nil)})
	assert.Len(t, resolved, 4)
	assert.Equal(t, false, resolved["watch"])
	assert.Equal(t, 0, resolved["pointsForJane"])
	assert.Equal(t, 0, resolved["pointsForJohn"])
	assert.Nil(t, resolved["mySecret"])
}

func TestPublic_DropsPrivateOptions(t *testing.T) {
	specs := []sourcebit.OptionSpec{
		{Name: "mySecret", Env: "MY_SECRET", Private: true},
		{Name: "pointsForJane", Default: 0},
	}
	resolved := map[string]any{
		"mySecret":      "hunter2",
		"pointsForJane": 5,
	}

	public := Public(specs, resolved)
	assert.Equal(t, map[string]any{"pointsForJane": 5}, public)
}
