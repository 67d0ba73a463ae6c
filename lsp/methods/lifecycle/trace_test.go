package lifecycle

import (
	"testing"

	"bennypowers.dev/wcaglint/internal/log"
	"bennypowers.dev/wcaglint/lsp/testutil"
	"bennypowers.dev/wcaglint/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestSetTrace(t *testing.T) {
	t.Cleanup(func() { log.SetLevel(log.LevelInfo) })
	req := types.NewRequestContext(testutil.NewMockServerContext(), &glsp.Context{})

	tests := []struct {
		value protocol.TraceValue
		want  log.Level
	}{
		{value: protocol.TraceValueVerbose, want: log.LevelDebug},
		{value: protocol.TraceValueMessage, want: log.LevelInfo},
		{value: protocol.TraceValueOff, want: log.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			require.NoError(t, SetTrace(req, &protocol.SetTraceParams{Value: tt.value}))
			assert.Equal(t, tt.want, log.GetLevel())
		})
	}
}
