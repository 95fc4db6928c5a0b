package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrompter(t *testing.T) {
	t.Run("reads one line per prompt", func(t *testing.T) {
		var out bytes.Buffer
		p := NewPrompter(strings.NewReader("2\nabc\n"), &out)

		first, err := p.Prompt("move? ")
		require.NoError(t, err)
		second, err := p.Prompt("again? ")
		require.NoError(t, err)

		require.Equal(t, "2", first)
		require.Equal(t, "abc", second)
		require.Equal(t, "move? again? ", out.String())
	})

	t.Run("returns EOF once input is closed", func(t *testing.T) {
		p := NewPrompter(strings.NewReader(""), io.Discard)

		_, err := p.Prompt("move? ")

		require.ErrorIs(t, err, io.EOF)
	})
}

func TestEmitter(t *testing.T) {
	var out bytes.Buffer
	e := NewEmitter(&out)

	e.Emit("||||| |")
	e.Emitf("wins: %d", 3)

	require.Equal(t, "||||| |\nwins: 3\n", out.String())
}
