package router

import (
	"sync"

	"github.com/cloudrobotics/relaycore/cmn/nlog"
	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/fifo"
	"github.com/cloudrobotics/relaycore/handler"
	"github.com/cloudrobotics/relaycore/metrics"
	"github.com/cloudrobotics/relaycore/processor"
	"github.com/cloudrobotics/relaycore/wire"
)

// Outbound is the wire-level sink a Sender or Forwarder streams into:
// one per outbound connection toward some destination CommID.
type Outbound interface {
	handler.Consumer
}

// Streamer is anything that can be registered as the producer for an
// outbound connection: *handler.Sender for a message being sent fresh,
// *handler.Forwarder for a message being relayed through this node.
type Streamer interface {
	Send(consumer handler.Consumer) error
}

// Manager is the CommManager of §4.E: it holds the local CommID, the
// destination table (CommID -> outbound connection), and the message-
// processor registry, and funnels every outbound send through a single
// run-loop goroutine rather than replicating the source's
// isInIOThread()/callFromThread test (§9 "Cross-thread submission").
// The destination table itself is guarded by a mutex: AddConn and
// RemoveConn update it directly on the caller's goroutine.
type Manager struct {
	commID     wire.CommID
	contentReg *content.Registry
	procs      *processor.Registry
	metrics    *metrics.Registry

	mu   sync.RWMutex
	dest map[wire.CommID]Outbound

	jobs chan func()
	done chan struct{}
}

var _ handler.Processor = (*Manager)(nil)

// NewManager returns a Manager for commID and starts its run-loop
// goroutine. contentReg serializes outbound messages; procs dispatches
// inbound ones once deserialized. metricsReg records traffic counters
// and may be nil, in which case no metrics are recorded.
func NewManager(commID wire.CommID, contentReg *content.Registry, procs *processor.Registry, metricsReg *metrics.Registry) *Manager {
	m := &Manager{
		commID:     commID,
		contentReg: contentReg,
		procs:      procs,
		metrics:    metricsReg,
		dest:       make(map[wire.CommID]Outbound),
		jobs:       make(chan func(), 64),
		done:       make(chan struct{}),
	}
	go m.run()
	return m
}

// CommID returns the local node's communication ID.
func (m *Manager) CommID() wire.CommID { return m.commID }

// Stop terminates the run-loop goroutine. Jobs already enqueued but not
// yet run are dropped.
func (m *Manager) Stop() { close(m.done) }

func (m *Manager) run() {
	for {
		select {
		case j := <-m.jobs:
			j()
		case <-m.done:
			return
		}
	}
}

// AddConn registers out as the outbound connection toward dest.
func (m *Manager) AddConn(dest wire.CommID, out Outbound) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dest[dest] = out
}

// RemoveConn forgets the outbound connection toward dest, if any.
func (m *Manager) RemoveConn(dest wire.CommID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.dest, dest)
}

func (m *Manager) outbound(dest wire.CommID) (Outbound, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out, ok := m.dest[dest]
	return out, ok
}

// RegisterProducer finds the outbound connection for dest and attaches
// streamer to it. If no route exists, streamer is dropped and the
// failure logged (§4.E).
func (m *Manager) RegisterProducer(streamer Streamer, dest wire.CommID) {
	out, ok := m.outbound(dest)
	if !ok {
		nlog.Warningf("no outbound connection for destination %q; message dropped", dest)
		return
	}
	if err := streamer.Send(out); err != nil {
		nlog.Errorf("could not register producer for destination %q: %s", dest, err)
	}
}

// SendMessage serializes and sends msg. It may be called from any
// goroutine; the destination-table lookup and sender registration
// always run on the manager's own run-loop goroutine (§5, §9).
// Serialization failure is logged, not raised, matching the propagation
// policy in §7. The frame handed to the Sender is the full wire message
// of §4.B/§6 — the fixed header followed by the serialized content body
// — not the content body alone.
func (m *Manager) SendMessage(msg *wire.Message) {
	m.jobs <- func() {
		body, err := content.Serialize(msg, m.contentReg)
		if err != nil {
			nlog.Errorf("message could not be sent: %s", err)
			return
		}
		bodyLen := body.Len()

		header, err := wire.EncodeHeader(wire.HeaderLen+bodyLen, msg.Type, msg.MsgID, msg.Origin, msg.Dest)
		if err != nil {
			nlog.Errorf("message could not be framed: %s", err)
			return
		}

		frame := fifo.New()
		frame.Push(header)
		frame.Push(body.Bytes())

		if m.metrics != nil {
			m.metrics.MessagesSent.WithLabelValues(msg.Type).Inc()
			m.metrics.BytesSent.WithLabelValues(msg.Type).Add(float64(frame.Len()))
		}

		sender := handler.NewSender(frame.Len(), m.commID, msg.Dest, frame)
		m.RegisterProducer(sender, msg.Dest)
	}
}

// dropped records a message discarded by the routing decision table of
// §4.E, by reason (e.g. "over_length", "filtered", "private_dest").
func (m *Manager) dropped(reason string) {
	if m.metrics != nil {
		m.metrics.MessagesDropped.WithLabelValues(reason).Inc()
	}
}

// ProcessMessage looks up the processor registered for msg.Type and
// dispatches to it; absence is logged and the message dropped (§4.E).
// Manager itself is handed to EndReceiver as the local message
// processor (routing decision step 4).
func (m *Manager) ProcessMessage(msg *wire.Message) error {
	proc, ok := m.procs.Get(msg.Type)
	if !ok {
		nlog.Warningf("no processor registered for message type %q; dropped", msg.Type)
		return nil
	}
	return proc.ProcessMessage(msg)
}
