package streamconsole

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipp01105/nconsole/console"
	"github.com/philipp01105/nconsole/core"
)

func TestDuplex_Echo(t *testing.T) {
	var out syncBuffer
	d := NewDuplex(Config{Writer: &out, Async: true}, strings.NewReader("ok"))
	c := console.New("uart0", d, core.ScopeOf(core.PhaseAll)|core.FlagTranslateCRLF)
	require.True(t, c.CanWrite())
	require.True(t, c.CanRead())
	require.True(t, c.CanFlush())

	reg := console.NewRegistry(console.Config{})
	require.NoError(t, reg.Register(c))

	for {
		ch, err := reg.GetChar()
		if err != nil {
			assert.True(t, errors.Is(err, io.EOF), "unexpected error %v", err)
			break
		}
		_, err = reg.PutChar(byte(ch))
		require.NoError(t, err)
	}
	_, err := reg.PutChar('\n')
	require.NoError(t, err)
	require.NoError(t, reg.Flush())

	assert.Equal(t, "ok\r\n", out.String())
	assert.NoError(t, reg.Close())
}
