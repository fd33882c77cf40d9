package main

import (
	"testing"

	"github.com/alexflint/go-arg"
	"github.com/stretchr/testify/assert"
)

func TestColorDisabled(t *testing.T) {
	type testCase struct {
		noColor  bool
		env      string
		tty      bool
		expected bool
	}

	tests := []testCase{
		{tty: true, expected: false},
		{noColor: true, tty: true, expected: true},
		{env: "1", tty: true, expected: true},
		{env: "yes", tty: true, expected: true},
		{env: "false", tty: true, expected: true},
		{tty: false, expected: true},
	}

	for i := range tests {
		tc := &tests[i]
		getenv := func(key string) string {
			if key == "NO_COLOR" {
				return tc.env
			}
			return ""
		}

		actual := colorDisabled(tc.noColor, getenv, tc.tty)
		assert.Equal(t, tc.expected, actual, "case %d", i+1)
	}
}

func TestParseArgsIgnoresNoColorValue(t *testing.T) {
	t.Setenv("NO_COLOR", "yes")

	args := mainArg{}
	p, err := arg.NewParser(arg.Config{}, &args)
	assert.NoError(t, err)
	assert.NoError(t, p.Parse([]string{"site.json"}))
	assert.False(t, args.NoColor)
	assert.Equal(t, []string{"site.json"}, args.Manifests)
}
