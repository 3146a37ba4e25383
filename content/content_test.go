package content_test

import (
	"testing"

	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) (*content.Registry, *content.CommandRegistry) {
	t.Helper()
	reg := content.NewRegistry()
	cmdReg := content.NewCommandRegistry()
	require.NoError(t, content.RegisterBuiltins(reg, cmdReg))
	return reg, cmdReg
}

// Framing round-trip (spec.md §8 invariant 1): deserialize(serialize(m))
// == m for every builtin content type.
func TestRoundTripEveryBuiltinType(t *testing.T) {
	reg, _ := newRegistry(t)

	cases := []struct {
		typ string
		c   any
	}{
		{wire.TypeConnect, content.ConnectDirective{{CommID: "A", IP: "10.0.0.1"}, {CommID: "B", IP: "10.0.0.2"}}},
		{wire.TypeCommInfo, content.CommInfo("relay-7")},
		{wire.TypeRequest, content.Request{User: "u", Type: "list", Args: [][]byte{[]byte("a"), []byte("b")}}},
		{wire.TypeTag, content.Tag{User: "u", Tag: "t", Type: "publisher"}},
		{wire.TypeROSMsg, content.ROSMsg{Msg: []byte{1, 2, 3}, DestTag: "d", SrcTag: "s", MsgID: "7", User: "u"}},
		{wire.TypeROSAdd, content.ROSAdd{RosAddr: "/ns/p", Tag: "p", MsgType: "std_msgs/Int8", Kind: "publisher"}},
		{wire.TypeROSRemove, content.ROSRemove{Type: "interface", Tag: "p"}},
		{wire.TypeROSUser, content.ROSUser{Tag: "p", Target: "x", CommID: "C1", Add: true}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.typ, func(t *testing.T) {
			msg := &wire.Message{Type: tc.typ, Origin: "A", Dest: "B", MsgID: "1", Content: tc.c}
			buf, err := content.Serialize(msg, reg)
			require.NoError(t, err)

			got, err := content.Deserialize(tc.typ, buf, reg)
			require.NoError(t, err)
			assert.Equal(t, tc.c, got)
		})
	}
}

func TestRegisterDuplicateIsInternalError(t *testing.T) {
	reg := content.NewRegistry()
	cmdReg := content.NewCommandRegistry()
	require.NoError(t, content.RegisterBuiltins(reg, cmdReg))

	err := reg.Register(wire.TypeTag, nil)
	var ie *errs.InternalError
	assert.ErrorAs(t, err, &ie)
}

func TestSerializeUnknownTypeIsInternalError(t *testing.T) {
	reg := content.NewRegistry()
	msg := &wire.Message{Type: "NOPE", Origin: "A", Dest: "B", Content: nil}
	_, err := content.Serialize(msg, reg)
	var ie *errs.InternalError
	assert.ErrorAs(t, err, &ie)
}

func TestDeserializeUnknownTypeIsSerializationError(t *testing.T) {
	reg := content.NewRegistry()
	_, err := content.Deserialize("NOPE", nil, reg)
	var se *errs.SerializationError
	assert.ErrorAs(t, err, &se)
}

// pingCmd is a toy polymorphic COMMAND class used only by tests.
type pingCmd struct{ Seq int32 }

func (pingCmd) Identifier() string { return "p" }

func (c pingCmd) Serialize(w *wire.Writer) error {
	w.AddInt(c.Seq)
	return nil
}

func buildPing(r *wire.Reader) (content.Command, error) {
	seq, err := r.GetInt()
	if err != nil {
		return nil, err
	}
	return pingCmd{Seq: seq}, nil
}

func TestPolymorphicCommandRoundTrip(t *testing.T) {
	reg, cmdReg := newRegistry(t)
	require.NoError(t, cmdReg.Register("p", buildPing))

	msg := &wire.Message{Type: wire.TypeCommand, Origin: "A", Dest: "B",
		Content: content.CommandContent{User: "u", Cmd: pingCmd{Seq: 99}}}

	buf, err := content.Serialize(msg, reg)
	require.NoError(t, err)

	got, err := content.Deserialize(wire.TypeCommand, buf, reg)
	require.NoError(t, err)
	assert.Equal(t, content.CommandContent{User: "u", Cmd: pingCmd{Seq: 99}}, got)
}

func TestCommandWithUnregisteredClassFails(t *testing.T) {
	reg, _ := newRegistry(t)
	msg := &wire.Message{Type: wire.TypeCommand, Origin: "A", Dest: "B",
		Content: content.CommandContent{User: "u", Cmd: pingCmd{Seq: 1}}}
	_, err := content.Serialize(msg, reg)
	var se *errs.SerializationError
	assert.ErrorAs(t, err, &se)
}
