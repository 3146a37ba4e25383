package handler

import (
	"github.com/cloudrobotics/relaycore/cmn/nlog"
	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/fifo"
	"github.com/cloudrobotics/relaycore/wire"
)

// base carries the fields common to every handler variant (§4.D).
type base struct {
	msgLen int
	origin wire.CommID
	dest   wire.CommID
	buf    *fifo.Buffer
}

// Origin is the CommID of the connection the message arrived on.
func (b *base) Origin() wire.CommID { return b.origin }

// Dest is the CommID of this message's next destination.
func (b *base) Dest() wire.CommID { return b.dest }

// Receiver accumulates incoming bytes into a FIFO and logs the total
// received on finalization (§4.D).
type Receiver struct {
	base
	recv     int
	producer Producer
}

var _ Consumer = (*Receiver)(nil)

// NewReceiver returns a Receiver accumulating into a fresh FIFO.
func NewReceiver(msgLen int, origin, dest wire.CommID) *Receiver {
	return &Receiver{base: base{msgLen: msgLen, origin: origin, dest: dest, buf: fifo.New()}}
}

func (r *Receiver) RegisterProducer(p Producer, streaming bool) error {
	if !streaming {
		return errs.NewInternalError("pull producers are not supported; use a push producer")
	}
	r.producer = p
	return nil
}

func (r *Receiver) Write(data []byte) {
	r.buf.Push(data)
	r.recv += len(data)
}

func (r *Receiver) UnregisterProducer() {
	nlog.Infof("message handler: %d of %d bytes received", r.recv, r.msgLen)
}

// Buffer exposes the accumulated bytes, e.g. for EndReceiver's
// finalization step.
func (r *Receiver) Buffer() *fifo.Buffer { return r.buf }
