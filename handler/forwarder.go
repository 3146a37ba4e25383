package handler

import (
	"github.com/cloudrobotics/relaycore/fifo"
	"github.com/cloudrobotics/relaycore/wire"
)

// Forwarder combines a Receiver and a Sender over one shared FIFO: bytes
// arriving from the upstream connection are appended to the buffer and,
// once a downstream consumer is attached, pumped immediately (§4.D). It
// is chosen by the router when a message's destination is neither this
// node nor forbidden (§4.E step 6).
//
// Forwarder does not embed Receiver and Sender directly — both carry a
// `base` field, and embedding both would make every promoted base method
// ambiguous — so it holds them as named fields and implements Consumer
// and Producer by delegation.
type Forwarder struct {
	recv *Receiver
	send *Sender
}

var (
	_ Consumer = (*Forwarder)(nil)
	_ Producer = (*Forwarder)(nil)
)

// NewForwarder returns a Forwarder for a message of msgLen bytes flowing
// from origin toward dest.
func NewForwarder(msgLen int, origin, dest wire.CommID) *Forwarder {
	r := NewReceiver(msgLen, origin, dest)
	s := NewSender(msgLen, origin, dest, r.buf)
	return &Forwarder{recv: r, send: s}
}

func (f *Forwarder) Origin() wire.CommID { return f.recv.Origin() }
func (f *Forwarder) Dest() wire.CommID   { return f.recv.Dest() }

func (f *Forwarder) RegisterProducer(p Producer, streaming bool) error {
	return f.recv.RegisterProducer(p, streaming)
}

// Write appends to the shared FIFO and, if a downstream consumer is
// already attached, pumps immediately rather than waiting for a
// resumeProducing edge (§4.D).
func (f *Forwarder) Write(data []byte) {
	f.recv.Write(data)
	if f.send.consumer != nil {
		f.send.pump()
	}
}

func (f *Forwarder) UnregisterProducer() { f.recv.UnregisterProducer() }

func (f *Forwarder) PauseProducing()  { f.send.PauseProducing() }
func (f *Forwarder) ResumeProducing() { f.send.ResumeProducing() }

// StopProducing aborts the downstream send and propagates the
// cancellation upstream to whatever registered as this Forwarder's own
// producer (§4.D, §5 "Cancellation"). A stopped forwarder must not go
// on retaining its FIFO buffer, so the shared buffer is dropped in
// favor of a fresh, empty one.
func (f *Forwarder) StopProducing() {
	f.send.StopProducing()
	if f.recv.producer != nil {
		f.recv.producer.StopProducing()
	}
	f.recv.buf = fifo.New()
	f.send.buf = f.recv.buf
}

// Send registers consumer as the Forwarder's downstream and begins
// pumping whatever has already accumulated.
func (f *Forwarder) Send(consumer Consumer) error {
	return f.send.Send(consumer)
}
