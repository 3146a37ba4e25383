// Package handler implements the five stream-handler state machines that
// own every in-flight message: Sink, Receiver, Sender, Forwarder, and
// EndReceiver (§4.D of SPEC_FULL.md). They are built on a Producer/
// Consumer contract standing in for the cooperative push-producer model
// described in §5: every callback here executes on the single I/O
// goroutine owned by router.Manager, so none of these types take a lock.
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package handler

import "github.com/cloudrobotics/relaycore/wire"

// Consumer accepts bytes from a Producer until the producer unregisters
// itself. RegisterProducer rejects pull producers: this transport only
// ever streams (push).
type Consumer interface {
	RegisterProducer(p Producer, streaming bool) error
	Write(data []byte)
	UnregisterProducer()
}

// Producer streams bytes to a registered Consumer and obeys its
// backpressure signals.
type Producer interface {
	PauseProducing()
	ResumeProducing()
	StopProducing()
}

// Processor handles a fully-assembled, deserialized message. Implemented
// either by router.Manager (dispatch via the message-processor registry,
// §4.G) or by a connection-specific handshake handler (§4.E step 2).
type Processor interface {
	ProcessMessage(msg *wire.Message) error
}
