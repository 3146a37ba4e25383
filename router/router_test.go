package router

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/handler"
	"github.com/cloudrobotics/relaycore/metrics"
	"github.com/cloudrobotics/relaycore/processor"
	"github.com/cloudrobotics/relaycore/wire"
	"github.com/stretchr/testify/require"
)

type recordingOutbound struct {
	writes       [][]byte
	unregistered int
}

func (o *recordingOutbound) RegisterProducer(_ handler.Producer, _ bool) error { return nil }
func (o *recordingOutbound) Write(data []byte) {
	cp := append([]byte(nil), data...)
	o.writes = append(o.writes, cp)
}
func (o *recordingOutbound) UnregisterProducer() { o.unregistered++ }

func (o *recordingOutbound) flat() []byte {
	var out []byte
	for _, w := range o.writes {
		out = append(out, w...)
	}
	return out
}

func newTestManager(t *testing.T, commID wire.CommID) *Manager {
	t.Helper()
	reg := content.NewRegistry()
	cmdReg := content.NewCommandRegistry()
	require.NoError(t, content.RegisterBuiltins(reg, cmdReg))
	m := NewManager(commID, reg, processor.NewRegistry(), nil)
	t.Cleanup(m.Stop)
	return m
}

func TestReceiveOverLengthGoesToSink(t *testing.T) {
	m := newTestManager(t, "A000000000000000")
	filter := NewConnFilter(wire.TypeROSMsg)
	c := m.Receive(filter, wire.MaxLength+1, wire.TypeROSMsg, "msgid0000000000", "B000000000000000", "A000000000000000", nil)
	_, isSink := c.(*handler.Sink)
	require.True(t, isSink, "over-length message must route to Sink")
}

type stubProcessor struct{ calls int }

func (p *stubProcessor) ProcessMessage(*wire.Message) error { p.calls++; return nil }

func TestReceivePreAuthGoesToHandshakeHandler(t *testing.T) {
	m := newTestManager(t, "A000000000000000")
	filter := NewConnFilter() // nothing allowed yet; must not matter for init
	init := &stubProcessor{}
	c := m.Receive(filter, 0, wire.TypeConnect, "msgid0000000000", "B000000000000000", "whatever0000000", init)
	_, isEnd := c.(*handler.EndReceiver)
	require.True(t, isEnd, "pre-auth connection must route to an EndReceiver bound to the handshake handler")
}

func TestReceiveFilteredTypeGoesToSink(t *testing.T) {
	m := newTestManager(t, "A000000000000000")
	filter := NewConnFilter(wire.TypeConnect) // ROS_MSG not allowed
	c := m.Receive(filter, 0, wire.TypeROSMsg, "msgid0000000000", "A000000000000000", "A000000000000000", nil)
	_, isSink := c.(*handler.Sink)
	require.True(t, isSink, "filtered type must route to Sink")
}

func TestReceiveLocalDestGoesToEndReceiver(t *testing.T) {
	m := newTestManager(t, "A000000000000000")
	filter := NewConnFilter(wire.TypeTag)
	c := m.Receive(filter, 0, wire.TypeTag, "msgid0000000000", "B000000000000000", "A000000000000000", nil)
	_, isEnd := c.(*handler.EndReceiver)
	require.True(t, isEnd, "message addressed to the local node must route to an EndReceiver")
}

func TestReceiveNeighborAddrGoesToEndReceiver(t *testing.T) {
	m := newTestManager(t, "A000000000000000")
	filter := NewConnFilter(wire.TypeTag)
	c := m.Receive(filter, 0, wire.TypeTag, "msgid0000000000", "B000000000000000", wire.NeighborAddr, nil)
	_, isEnd := c.(*handler.EndReceiver)
	require.True(t, isEnd, "message addressed to the neighbor sentinel must route to an EndReceiver")
}

func TestReceivePrivateDestGoesToSink(t *testing.T) {
	m := newTestManager(t, "A000000000000000")
	filter := NewConnFilter(wire.TypeTag)
	c := m.Receive(filter, 0, wire.TypeTag, "msgid0000000000", "B000000000000000", wire.CommID(wire.PrefixPrivAddr+"X"), nil)
	_, isSink := c.(*handler.Sink)
	require.True(t, isSink, "private-prefixed destination must route to Sink (§8 invariant 7)")
}

func TestReceiveForwardsToOutboundConnection(t *testing.T) {
	m := newTestManager(t, "R000000000000000")
	out := &recordingOutbound{}
	m.AddConn("C000000000000000", out)

	filter := NewConnFilter(wire.TypeROSMsg)
	c := m.Receive(filter, 147, wire.TypeROSMsg, "msgid0000000000", "origin00000000000", "C000000000000000", nil)

	fwd, isFwd := c.(*handler.Forwarder)
	require.True(t, isFwd, "message for another node must route to a Forwarder")

	// S3: bytes arriving in three chunks of sizes (100, 5, 42) must appear
	// at the outbound consumer as the same 147 bytes in order.
	chunk1 := make([]byte, 100)
	chunk2 := make([]byte, 5)
	chunk3 := make([]byte, 42)
	for i := range chunk1 {
		chunk1[i] = byte(i)
	}
	for i := range chunk2 {
		chunk2[i] = byte(200 + i)
	}
	for i := range chunk3 {
		chunk3[i] = byte(50 + i)
	}
	fwd.Write(chunk1)
	fwd.Write(chunk2)
	fwd.Write(chunk3)
	fwd.UnregisterProducer()

	want := append(append(append([]byte{}, chunk1...), chunk2...), chunk3...)
	require.Equal(t, want, out.flat())
	require.Len(t, want, 147)
}

func TestReceiveNoRouteDropsForwarder(t *testing.T) {
	m := newTestManager(t, "R000000000000000")
	filter := NewConnFilter(wire.TypeROSMsg)
	// No AddConn call: destination table has no entry for "unknown".
	c := m.Receive(filter, 3, wire.TypeROSMsg, "msgid0000000000", "origin00000000000", "unknown0000000000", nil)
	_, isFwd := c.(*handler.Forwarder)
	require.True(t, isFwd, "the decision is still Forwarder even with no route; the drop happens at registration")
}

func TestProcessMessageDispatchesToRegisteredProcessor(t *testing.T) {
	reg := content.NewRegistry()
	cmdReg := content.NewCommandRegistry()
	require.NoError(t, content.RegisterBuiltins(reg, cmdReg))
	procs := processor.NewRegistry()
	p := &stubProcessor{}
	require.NoError(t, procs.Register(wire.TypeTag, p))

	m := NewManager("A000000000000000", reg, procs, nil)
	t.Cleanup(m.Stop)

	require.NoError(t, m.ProcessMessage(&wire.Message{Type: wire.TypeTag, Origin: "B000000000000000", Dest: "A000000000000000"}))
	require.Equal(t, 1, p.calls)
}

func TestSendMessageFramesHeaderAndRecordsMetrics(t *testing.T) {
	reg := content.NewRegistry()
	cmdReg := content.NewCommandRegistry()
	require.NoError(t, content.RegisterBuiltins(reg, cmdReg))
	metricsReg := metrics.New(prometheus.NewRegistry())

	m := NewManager("A000000000000000", reg, processor.NewRegistry(), metricsReg)
	t.Cleanup(m.Stop)

	out := &recordingOutbound{}
	m.AddConn("B000000000000000", out)

	tag := content.Tag{User: "alice", Tag: "camera", Type: "sensor_msgs/Image"}
	m.SendMessage(&wire.Message{Type: wire.TypeTag, MsgID: "msgid0000000000", Origin: "A000000000000000", Dest: "B000000000000000", Content: tag})

	require.Eventually(t, func() bool { return len(out.writes) > 0 }, time.Second, time.Millisecond)

	frame := out.flat()
	totalLen, typ, msgID, origin, dest, err := wire.DecodeHeader(frame)
	require.NoError(t, err)
	require.Equal(t, len(frame), totalLen, "declared length must cover the full frame, header included")
	require.Equal(t, wire.TypeTag, typ)
	require.Equal(t, "msgid0000000000", msgID)
	require.Equal(t, wire.CommID("A000000000000000"), origin)
	require.Equal(t, wire.CommID("B000000000000000"), dest)

	require.Equal(t, float64(1), testutil.ToFloat64(metricsReg.MessagesSent.WithLabelValues(wire.TypeTag)))
	require.Equal(t, float64(len(frame)), testutil.ToFloat64(metricsReg.BytesSent.WithLabelValues(wire.TypeTag)))
}

func TestReceiveDroppedBranchesRecordMetrics(t *testing.T) {
	metricsReg := metrics.New(prometheus.NewRegistry())
	reg := content.NewRegistry()
	cmdReg := content.NewCommandRegistry()
	require.NoError(t, content.RegisterBuiltins(reg, cmdReg))
	m := NewManager("A000000000000000", reg, processor.NewRegistry(), metricsReg)
	t.Cleanup(m.Stop)

	filter := NewConnFilter(wire.TypeROSMsg)
	m.Receive(filter, wire.MaxLength+1, wire.TypeROSMsg, "msgid0000000000", "B000000000000000", "A000000000000000", nil)
	require.Equal(t, float64(1), testutil.ToFloat64(metricsReg.MessagesDropped.WithLabelValues("over_length")))

	m.Receive(filter, 0, wire.TypeTag, "msgid0000000000", "A000000000000000", "A000000000000000", nil)
	require.Equal(t, float64(1), testutil.ToFloat64(metricsReg.MessagesDropped.WithLabelValues("filtered")))

	privFilter := NewConnFilter(wire.TypeTag)
	m.Receive(privFilter, 0, wire.TypeTag, "msgid0000000000", "B000000000000000", wire.CommID(wire.PrefixPrivAddr+"X"), nil)
	require.Equal(t, float64(1), testutil.ToFloat64(metricsReg.MessagesDropped.WithLabelValues("private_dest")))
}

func TestProcessMessageWithNoProcessorIsLoggedAndDropped(t *testing.T) {
	m := newTestManager(t, "A000000000000000")
	err := m.ProcessMessage(&wire.Message{Type: "UNKNOWN_TYPE", Origin: "B000000000000000", Dest: "A000000000000000"})
	require.NoError(t, err, "an unregistered type is dropped, not surfaced as an error")
}
