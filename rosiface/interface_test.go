package rosiface

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/cloudrobotics/relaycore/cmn/cos"
	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/metrics"
	"github.com/cloudrobotics/relaycore/wire"
	"github.com/stretchr/testify/require"
)

func init() { cos.InitIDGen(1) }

type fakeContainer struct {
	reserved map[string]bool
	sent     []*wire.Message
	received []ClientMessage
}

func newFakeContainer() *fakeContainer {
	return &fakeContainer{reserved: make(map[string]bool)}
}

func (c *fakeContainer) ReserveAddr(rosAddr string) error {
	if c.reserved[rosAddr] {
		return errs.NewInvalidRequest("address %q already reserved", rosAddr)
	}
	c.reserved[rosAddr] = true
	return nil
}
func (c *fakeContainer) FreeAddr(rosAddr string) { delete(c.reserved, rosAddr) }
func (c *fakeContainer) Send(msg *wire.Message) error {
	c.sent = append(c.sent, msg)
	return nil
}
func (c *fakeContainer) ReceivedFromInterface(cm ClientMessage) error {
	c.received = append(c.received, cm)
	return nil
}

func (c *fakeContainer) typesSent() []string {
	var out []string
	for _, m := range c.sent {
		out = append(out, m.Type)
	}
	return out
}

func TestInterfaceLifecycleEmitsExpectedSequence(t *testing.T) {
	// S6: publisher p, two users register then unregister in turn.
	c := newFakeContainer()
	iface, err := NewInterface(c, "p", "/ns/p", "std/Int8", Publisher, nil, nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, iface.RegisterUser("x", "C1000000000000000"))
	require.NoError(t, iface.RegisterUser("y", "C2000000000000000"))
	require.NoError(t, iface.UnregisterUser("x", "C1000000000000000"))
	require.NoError(t, iface.UnregisterUser("y", "C2000000000000000"))

	require.Equal(t, []string{
		wire.TypeROSAdd,
		wire.TypeROSUser, // x added
		wire.TypeROSUser, // y added
		wire.TypeROSUser, // x removed
		wire.TypeROSRemove,
	}, c.typesSent())

	adds := c.sent[1].Content.(content.ROSUser)
	require.True(t, adds.Add)
	require.Equal(t, "x", adds.Target)
}

func TestRegisterUserIsMultiset(t *testing.T) {
	c := newFakeContainer()
	iface, err := NewInterface(c, "p", "/ns/p", "std/Int8", Publisher, nil, nil, nil, nil)
	require.NoError(t, err)

	require.NoError(t, iface.RegisterUser("x", "C1000000000000000"))
	require.NoError(t, iface.RegisterUser("x", "C1000000000000000")) // same user twice
	require.Len(t, iface.refs, 2)

	// only the very first registration (empty -> non-empty) emits ROS_ADD
	require.Equal(t, []string{wire.TypeROSAdd, wire.TypeROSUser, wire.TypeROSUser}, c.typesSent())

	require.NoError(t, iface.UnregisterUser("x", "C1000000000000000"))
	require.Len(t, iface.refs, 1, "one reference remains: ROS_REMOVE must not fire yet")
	require.NotEqual(t, wire.TypeROSRemove, c.sent[len(c.sent)-1].Type)
}

func TestUnregisterAbsentUserIsError(t *testing.T) {
	c := newFakeContainer()
	iface, err := NewInterface(c, "p", "/ns/p", "std/Int8", Publisher, nil, nil, nil, nil)
	require.NoError(t, err)

	require.Error(t, iface.UnregisterUser("ghost", "C0000000000000000"))
}

func TestDuplicateAddrReservationFails(t *testing.T) {
	c := newFakeContainer()
	_, err := NewInterface(c, "p", "/ns/p", "std/Int8", Publisher, nil, nil, nil, nil)
	require.NoError(t, err)

	_, err = NewInterface(c, "q", "/ns/p", "std/Int8", Publisher, nil, nil, nil, nil)
	require.Error(t, err)
}

func TestSendOnSubscriberIsContractViolation(t *testing.T) {
	c := newFakeContainer()
	iface, err := NewInterface(c, "s", "/ns/s", "std/Int8", Subscriber, nil, nil, nil, nil)
	require.NoError(t, err)

	err = iface.Send(ClientMessage{Type: "std/Int8"}, "sender", "C0000000000000000")
	require.Error(t, err)
}

func TestReceiveOnPublisherIsContractViolation(t *testing.T) {
	c := newFakeContainer()
	iface, err := NewInterface(c, "p", "/ns/p", "std/Int8", Publisher, nil, nil, nil, nil)
	require.NoError(t, err)

	err = iface.Receive(content.ROSMsg{})
	require.Error(t, err)
}

func TestNewInterfaceAndDestroyTrackActiveInterfacesGauge(t *testing.T) {
	c := newFakeContainer()
	metricsReg := metrics.New(prometheus.NewRegistry())

	iface, err := NewInterface(c, "p", "/ns/p", "std/Int8", Publisher, nil, nil, nil, metricsReg)
	require.NoError(t, err)
	require.Equal(t, float64(1), testutil.ToFloat64(metricsReg.ActiveInterfaces))

	require.NoError(t, iface.Destroy())
	require.Equal(t, float64(0), testutil.ToFloat64(metricsReg.ActiveInterfaces))
}

func TestDestroyWithRemainingRefsEmitsROSRemove(t *testing.T) {
	c := newFakeContainer()
	iface, err := NewInterface(c, "p", "/ns/p", "std/Int8", Publisher, nil, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, iface.RegisterUser("x", "C1000000000000000"))

	require.NoError(t, iface.Destroy())
	require.False(t, c.reserved["/ns/p"], "destroy must release the ROS address")
	require.Equal(t, wire.TypeROSRemove, c.sent[len(c.sent)-1].Type)
}
