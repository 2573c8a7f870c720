package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anchor-Protocol/terrariums/internal/config"
)

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	toml := "[contracts.vault]\nsrc = \"contracts/vault\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.TerrariumFile), []byte(toml), 0644))
	return dir
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for the Go 1.21 toolchain
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestRootCmdTimeoutRelease(t *testing.T) {
	t.Run("failed command leaves the timeout handle for Execute to release", func(t *testing.T) {
		chdir(t, writeProject(t))

		var cancelTimeout context.CancelFunc
		cmd := newRootCmd(&cancelTimeout)
		cmd.SetArgs([]string{"compose", "missing.yaml"})
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)

		require.Error(t, cmd.Execute())

		// Cobra skips PersistentPostRun when RunE fails, so the handle must
		// still be armed for the caller's deferred release
		require.NotNil(t, cancelTimeout)
		cancelTimeout()
	})

	t.Run("successful command releases the timeout in PersistentPostRun", func(t *testing.T) {
		chdir(t, writeProject(t))

		var cancelTimeout context.CancelFunc
		cmd := newRootCmd(&cancelTimeout)
		cmd.SetArgs([]string{"list", "--non-interactive"})
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)

		require.NoError(t, cmd.Execute())
		assert.NotNil(t, cancelTimeout)
	})
}
