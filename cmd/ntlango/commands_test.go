package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "type Query")
	assert.Contains(t, out, "readEvents(")
}

func TestInvalidConfig(t *testing.T) {
	tests := map[string]struct {
		args []string
		want string
	}{
		"log_level":   {[]string{"schema", "--log-level", "loud"}, `unknown log-level "loud"`},
		"token_ttl":   {[]string{"schema", "--token-ttl", "0s"}, "token-ttl must be positive"},
		"config_file": {[]string{"schema", "--config", "/nonexistent/ntlango.yaml"}, "reading config file"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, test.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.want)
		})
	}
}

func TestSeedNeedsPassword(t *testing.T) {
	_, err := execute(t, "seed", "--admin-email", "admin@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--admin-password")
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "launch")
	assert.Error(t, err)
}
