package handler

import (
	"github.com/cloudrobotics/relaycore/cmn/nlog"
	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/metrics"
	"github.com/cloudrobotics/relaycore/wire"
)

// EndReceiver is a Receiver whose finalization deserializes the
// accumulated body and hands the reconstructed Message to a Processor
// (§4.D). It is chosen for messages addressed to this node, to the
// neighbor sentinel, or — before authentication completes — to the
// connection's handshake handler (§4.E steps 2 and 4).
type EndReceiver struct {
	*Receiver
	typ     string
	msgID   string
	reg     *content.Registry
	proc    Processor
	metrics *metrics.Registry
}

var _ Consumer = (*EndReceiver)(nil)

// NewEndReceiver returns an EndReceiver that will deserialize content of
// type typ and hand the reconstructed message to proc. metricsReg may be
// nil, in which case no metrics are recorded.
func NewEndReceiver(proc Processor, reg *content.Registry, metricsReg *metrics.Registry, msgLen int, typ, msgID string, origin, dest wire.CommID) *EndReceiver {
	return &EndReceiver{
		Receiver: NewReceiver(msgLen, origin, dest),
		typ:      typ,
		msgID:    msgID,
		reg:      reg,
		proc:     proc,
		metrics:  metricsReg,
	}
}

// UnregisterProducer finalizes the message: it logs the byte count (via
// the embedded Receiver), deserializes the body, and dispatches it to the
// Processor. Deserialization failure is logged, not propagated to the
// transport (§4.D, §7).
func (e *EndReceiver) UnregisterProducer() {
	e.Receiver.UnregisterProducer()

	decoded, err := content.Deserialize(e.typ, e.Buffer(), e.reg)
	if err != nil {
		nlog.Errorf("could not deserialize message of type %q: %s", e.typ, err)
		return
	}

	if e.metrics != nil {
		e.metrics.MessagesReceived.WithLabelValues(e.typ).Inc()
		e.metrics.BytesReceived.WithLabelValues(e.typ).Add(float64(e.recv))
	}

	msg := &wire.Message{Type: e.typ, Origin: e.Origin(), Dest: e.Dest(), MsgID: e.msgID, Content: decoded}
	if err := e.proc.ProcessMessage(msg); err != nil {
		nlog.Errorf("message processor for type %q failed: %s", e.typ, err)
	}
}
