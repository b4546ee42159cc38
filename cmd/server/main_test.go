package main

import (
	"testing"

	"github.com/phrazzld/gtask-api/internal/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{name: "no flags", args: nil, want: options{}},
		{name: "migration command", args: []string{"--migrate", "status"}, want: options{migrate: "status"}},
		{name: "migrate only", args: []string{"--migrate-only"}, want: options{migrateOnly: true}},
		{name: "config flags pass through", args: []string{"--port", "9000", "--log-level", "debug"}, want: options{}},
		{name: "conflicting", args: []string{"--migrate", "up", "--migrate-only"}, wantErr: true},
		{name: "unknown flag", args: []string{"--verbose"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, opts, err := parseFlags(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts)
			assert.NotNil(t, fs.Lookup(config.FlagConfigFile))
		})
	}
}

func TestParseFlagsHelp(t *testing.T) {
	_, _, err := parseFlags([]string{"--help"})
	assert.ErrorIs(t, err, pflag.ErrHelp)
}

func TestRunHelpExitsCleanly(t *testing.T) {
	assert.NoError(t, run([]string{"-h"}))
}
