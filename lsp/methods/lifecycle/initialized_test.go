package lifecycle

import (
	"errors"
	"testing"

	"bennypowers.dev/wcaglint/lsp/testutil"
	"bennypowers.dev/wcaglint/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestInitialized(t *testing.T) {
	t.Run("stores context and loads config", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		glspCtx := &glsp.Context{}
		req := types.NewRequestContext(ctx, glspCtx)

		err := Initialized(req, &protocol.InitializedParams{})
		require.NoError(t, err)

		assert.Same(t, glspCtx, ctx.GLSPContext())
		assert.True(t, ctx.LoadWorkspaceConfigCalled)
		assert.False(t, req.HasWarnings())
	})

	t.Run("config errors do not fail initialization", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		ctx.LoadWorkspaceConfigFunc = func() error {
			return errors.New("rules.nope: unknown rule")
		}
		req := types.NewRequestContext(ctx, &glsp.Context{})

		err := Initialized(req, &protocol.InitializedParams{})
		require.NoError(t, err)

		require.True(t, req.HasWarnings())
		assert.Contains(t, req.Warnings()[0].Error(), "unknown rule")
	})
}
