package handler

import (
	"github.com/cloudrobotics/relaycore/cmn/debug"
	"github.com/cloudrobotics/relaycore/cmn/nlog"
	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/fifo"
	"github.com/cloudrobotics/relaycore/wire"
)

// Sender pulls up to wire.ChunkSize bytes from its FIFO per write until
// paused, aborted, or drained (§4.D). State diagram: Idle -> Streaming on
// Send; Streaming -> Paused on PauseProducing; Paused -> Streaming on
// ResumeProducing; any state -> Aborted (terminal) on StopProducing.
type Sender struct {
	base
	sent     int
	consumer Consumer
	paused   bool
	aborted  bool
	done     bool // guards the exactly-once UnregisterProducer call
}

var _ Producer = (*Sender)(nil)

// NewSender returns a Sender pulling from buf, which already holds the
// full serialized message.
func NewSender(msgLen int, origin, dest wire.CommID, buf *fifo.Buffer) *Sender {
	return &Sender{base: base{msgLen: msgLen, origin: origin, dest: dest, buf: buf}}
}

// Paused reports whether this Sender is currently paused.
func (s *Sender) Paused() bool { return s.paused }

func (s *Sender) PauseProducing() { s.paused = true }

func (s *Sender) ResumeProducing() {
	s.paused = false
	s.pump()
}

func (s *Sender) StopProducing() {
	s.paused = true
	s.aborted = true
	s.finish()
}

func (s *Sender) pump() {
	for !s.paused && !s.buf.Empty() {
		data, n := s.buf.Pop(wire.ChunkSize)
		s.consumer.Write(data)
		s.sent += n
	}
	debug.Assertf(s.sent <= s.msgLen, "sender sent %d bytes past declared length %d", s.sent, s.msgLen)
	if s.sent == s.msgLen || s.aborted {
		s.finish()
	}
}

func (s *Sender) finish() {
	if s.done {
		return
	}
	s.done = true
	nlog.Infof("message handler: %d of %d bytes sent", s.sent, s.msgLen)
	s.consumer.UnregisterProducer()
}

// Send registers consumer as this Sender's sole downstream and begins
// pumping. Registering a second consumer is an InternalError (§4.D
// "at-most-one consumer").
func (s *Sender) Send(consumer Consumer) error {
	if s.consumer != nil {
		return errs.NewInternalError("this message sender is already sending a message")
	}
	s.consumer = consumer
	if err := consumer.RegisterProducer(s, true); err != nil {
		return err
	}
	s.pump()
	return nil
}
