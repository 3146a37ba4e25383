package router

import (
	"github.com/cloudrobotics/relaycore/cmn/nlog"
	"github.com/cloudrobotics/relaycore/handler"
	"github.com/cloudrobotics/relaycore/wire"
)

// Receive implements the six-step inbound routing decision table of
// §4.E verbatim and returns the handler.Consumer that owns this
// message's bytes from here on. filter is the originating connection's
// ConnFilter; init, when non-nil, is the handshake processor for a
// not-yet-authenticated connection (step 2).
func (m *Manager) Receive(filter *ConnFilter, msgLen int, msgType, msgID string, origin, dest wire.CommID, init handler.Processor) handler.Consumer {
	// 1. Over-length messages are never buffered in full.
	if msgLen > wire.MaxLength {
		nlog.Warningf("message of type %q declares length %d > %d; dropped", msgType, msgLen, wire.MaxLength)
		m.dropped("over_length")
		return handler.NewSink()
	}

	// 2. Pre-authentication connections may only progress handshake
	// messages, regardless of type filter or destination.
	if init != nil {
		return handler.NewEndReceiver(init, m.contentReg, m.metrics, msgLen, msgType, msgID, origin, m.commID)
	}

	// 3. Per-connection type filter.
	if filter.FilterMessage(msgType) {
		nlog.Infof("message of type %q has been filtered out", msgType)
		m.dropped("filtered")
		return handler.NewSink()
	}

	// 4. Addressed to this node, or to the sentinel meaning "my direct peer".
	if dest == m.commID || dest == wire.NeighborAddr {
		return handler.NewEndReceiver(m, m.contentReg, m.metrics, msgLen, msgType, msgID, origin, m.commID)
	}

	// 5. Container-manager addresses never cross an arbitrary relay.
	if wire.IsPrivate(dest) {
		nlog.Warningf("received a private message via this node; dropped")
		m.dropped("private_dest")
		return handler.NewSink()
	}

	// 6. Forward, registering the handler as producer against the
	// outbound connection immediately.
	fwd := handler.NewForwarder(msgLen, origin, dest)
	m.RegisterProducer(fwd, dest)
	return fwd
}
