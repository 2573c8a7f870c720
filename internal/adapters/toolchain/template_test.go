package toolchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderOptimizeCommand(t *testing.T) {
	t.Run("substitutes contract and workspace", func(t *testing.T) {
		rendered, err := RenderOptimizeCommand(
			"cargo run-script optimize -p {{.Contract}} --manifest-path {{.Workspace}}/Cargo.toml",
			"vault", "/srv/project")
		require.NoError(t, err)
		assert.Equal(t, "cargo run-script optimize -p vault --manifest-path /srv/project/Cargo.toml", rendered)
	})

	t.Run("plain commands pass through", func(t *testing.T) {
		rendered, err := RenderOptimizeCommand("make optimize", "vault", "/srv/project")
		require.NoError(t, err)
		assert.Equal(t, "make optimize", rendered)
	})

	t.Run("unknown placeholder is rejected", func(t *testing.T) {
		_, err := RenderOptimizeCommand("run {{.Shell}}", "vault", "/srv/project")
		assert.Error(t, err)
	})

	t.Run("malformed template is rejected", func(t *testing.T) {
		_, err := RenderOptimizeCommand("run {{.Contract", "vault", "/srv/project")
		assert.Error(t, err)
	})
}
