package handler

import "github.com/cloudrobotics/relaycore/errs"

// Sink discards every byte it receives. It is used when a message is too
// long, has been filtered out, or is addressed to a forbidden
// destination; it must still consume the full byte stream so that the
// connection stays framed (§4.D).
type Sink struct{}

var _ Consumer = (*Sink)(nil)

// NewSink returns a fresh Sink.
func NewSink() *Sink { return &Sink{} }

func (*Sink) RegisterProducer(_ Producer, streaming bool) error {
	if !streaming {
		return errs.NewInternalError("pull producers are not supported; use a push producer")
	}
	return nil
}

func (*Sink) Write(_ []byte) {}

func (*Sink) UnregisterProducer() {}
