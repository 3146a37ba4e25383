package relay

import (
	"testing"

	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/wire"
	"github.com/stretchr/testify/require"
)

func TestProcessRequestQueuesConnectEntries(t *testing.T) {
	n := NewNode("A0000000000000000")
	require.NoError(t, n.ProcessRequest(content.ConnectDirective{
		{CommID: "B0000000000000000", IP: "10.0.0.1:7447"},
		{CommID: "C0000000000000000", IP: "10.0.0.2:7447"},
	}))

	pending := n.PendingConnections()
	require.Len(t, pending, 2)
	require.Equal(t, wire.CommID("B0000000000000000"), pending[0].CommID)
}

func TestRegisterPeerIsQueryable(t *testing.T) {
	n := NewNode("A0000000000000000")
	n.RegisterPeer("link0000000000000", "B0000000000000000")

	peer, ok := n.PeerFor("link0000000000000")
	require.True(t, ok)
	require.Equal(t, wire.CommID("B0000000000000000"), peer)

	_, ok = n.PeerFor("unknown000000000000")
	require.False(t, ok)
}

func TestHandleRequestSucceeds(t *testing.T) {
	n := NewNode("A0000000000000000")
	err := n.HandleRequest("B0000000000000000", content.Request{User: "u", Type: "ping", Args: nil})
	require.NoError(t, err)
}

func TestReceivedSucceeds(t *testing.T) {
	n := NewNode("A0000000000000000")
	err := n.Received("u", "tag0", "B0000000000000000", "sender0", []byte("payload"), "msg-1")
	require.NoError(t, err)
}
