package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd", "-a", "http://10.0.0.5:8000", "-p", "/tmp/p.db", "-t", "3", "events", "ieee"},
			expected: &Config{ServerURL: "http://10.0.0.5:8000", ProfilePath: "/tmp/p.db", RequestTimeout: 3 * time.Second}},
		{name: "positional args are ignored", args: []string{"cmd", "signup"},
			expected: &Config{}},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
