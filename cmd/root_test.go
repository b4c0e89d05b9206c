// File: cmd/root_test.go
package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs a fresh command tree with args and returns its stdout.
func executeCommand(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

// writeConfig writes a YAML config file into a temp dir and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "humanpace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRootCmd_VersionFlag(t *testing.T) {
	out, err := executeCommand(t, context.Background(), "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "humanpace version "+Version)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, context.Background(), "version")
	require.NoError(t, err)
	assert.Equal(t, "humanpace version "+Version+"\n", out)
}

func TestRootCmd_NoArgs(t *testing.T) {
	out, err := executeCommand(t, context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "humanpace generates human-like pauses")
	assert.Contains(t, out, "simulate")
	assert.Contains(t, out, "plan")
}

func TestRootCmd_ConfigErrors(t *testing.T) {
	t.Run("MissingExplicitFile", func(t *testing.T) {
		_, err := executeCommand(t, context.Background(), "version", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize configuration")
	})

	t.Run("InvalidValues", func(t *testing.T) {
		path := writeConfig(t, "humanoid:\n  history_size: -4\n")
		_, err := executeCommand(t, context.Background(), "version", "-c", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "history_size must be a positive integer")
	})
}

func TestExecute_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"humanpace", "pause", "reading", "--seed", "3"}

	err := Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
