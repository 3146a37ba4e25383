package wire_test

import (
	"testing"

	"github.com/cloudrobotics/relaycore/fifo"
	"github.com/cloudrobotics/relaycore/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	b, err := wire.EncodeHeader(1234, wire.TypeROSMsg, "req-1", wire.CommID("A"), wire.CommID("B"))
	require.NoError(t, err)
	require.Len(t, b, wire.HeaderLen)

	totalLen, typ, msgID, origin, dest, err := wire.DecodeHeader(b)
	require.NoError(t, err)
	assert.Equal(t, 1234, totalLen)
	assert.Equal(t, wire.TypeROSMsg, typ)
	assert.Equal(t, "req-1", msgID)
	assert.Equal(t, wire.CommID("A"), origin)
	assert.Equal(t, wire.CommID("B"), dest)
}

func TestHeaderRejectsEmptyFields(t *testing.T) {
	_, err := wire.EncodeHeader(10, "", "id", wire.CommID("A"), wire.CommID("B"))
	assert.Error(t, err)
}

func TestHeaderRejectsOverlongField(t *testing.T) {
	long := make([]byte, wire.AddrLen+1)
	_, err := wire.EncodeHeader(10, wire.TypeTag, "id", wire.CommID(long), wire.CommID("B"))
	assert.Error(t, err)
}

func TestStreamElementRoundTrip(t *testing.T) {
	buf := fifo.New()
	w := wire.NewWriter(buf)
	w.AddElement([]byte("hello"))
	w.AddInt(42)
	require.NoError(t, w.AddIdentifier("x", wire.CmdIdentLen()))
	w.AddList([][]byte{[]byte("a"), []byte("bb"), []byte("ccc")})

	r := wire.NewReader(buf)
	el, err := r.GetElement()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(el))

	n, err := r.GetInt()
	require.NoError(t, err)
	assert.EqualValues(t, 42, n)

	ident, err := r.GetIdentifier(wire.CmdIdentLen())
	require.NoError(t, err)
	assert.Equal(t, "x", ident)

	list, err := r.GetList()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "bb", string(list[1]))
}

func TestIsPrivate(t *testing.T) {
	assert.True(t, wire.IsPrivate(wire.CommID(wire.PrefixPrivAddr+"container-1")))
	assert.False(t, wire.IsPrivate(wire.CommID("relay-1")))
}
