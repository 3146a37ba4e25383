package processor

import (
	"sync"

	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/handler"
	"github.com/cloudrobotics/relaycore/wire"
)

// ControlHandler consumes one user's COMMAND or TAG traffic for one
// inner identifier.
//
// TAG carries no polymorphic inner identifier the way COMMAND does
// (§4.C); this registry keys a TAG by its Tag field instead, so that
// "keyed by user and inner identifier" (§4.G) extends naturally to both
// message types rather than needing two unrelated dispatch mechanisms.
type ControlHandler interface {
	HandleCommand(user string, cmd content.Command) error
	HandleTag(user string, tag content.Tag) error
}

type distKey struct {
	user       string
	identifier string
}

// Distributor routes COMMAND and TAG payloads to per-user, per-
// identifier control handlers (§4.G).
type Distributor struct {
	mu       sync.RWMutex
	handlers map[distKey]ControlHandler
}

// NewDistributor returns an empty Distributor.
func NewDistributor() *Distributor {
	return &Distributor{handlers: make(map[distKey]ControlHandler)}
}

// Register adds h as the control handler for (user, identifier).
// Duplicate registration is an InternalError.
func (d *Distributor) Register(user, identifier string, h ControlHandler) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := distKey{user, identifier}
	if _, dup := d.handlers[key]; dup {
		return errs.NewInternalError("control handler already registered for user %q, identifier %q", user, identifier)
	}
	d.handlers[key] = h
	return nil
}

// Unregister removes a previously-registered control handler.
func (d *Distributor) Unregister(user, identifier string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := distKey{user, identifier}
	if _, ok := d.handlers[key]; !ok {
		return errs.NewInternalError("no control handler registered for user %q, identifier %q", user, identifier)
	}
	delete(d.handlers, key)
	return nil
}

func (d *Distributor) lookup(user, identifier string) (ControlHandler, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.handlers[distKey{user, identifier}]
	return h, ok
}

// Command implements handler.Processor for COMMAND messages, dispatched
// by (user, command identifier).
type Command struct {
	Dist *Distributor
}

var _ handler.Processor = (*Command)(nil)

func (c *Command) ProcessMessage(msg *wire.Message) error {
	cc, ok := msg.Content.(content.CommandContent)
	if !ok {
		return errs.NewInternalError("COMMAND processor got unexpected content type %T", msg.Content)
	}
	h, ok := c.Dist.lookup(cc.User, cc.Cmd.Identifier())
	if !ok {
		return errs.NewInvalidRequest("no control handler for user %q, command %q", cc.User, cc.Cmd.Identifier())
	}
	return h.HandleCommand(cc.User, cc.Cmd)
}

// Tag implements handler.Processor for TAG messages, dispatched by
// (user, tag).
type Tag struct {
	Dist *Distributor
}

var _ handler.Processor = (*Tag)(nil)

func (t *Tag) ProcessMessage(msg *wire.Message) error {
	tg, ok := msg.Content.(content.Tag)
	if !ok {
		return errs.NewInternalError("TAG processor got unexpected content type %T", msg.Content)
	}
	h, ok := t.Dist.lookup(tg.User, tg.Tag)
	if !ok {
		return errs.NewInvalidRequest("no control handler for user %q, tag %q", tg.User, tg.Tag)
	}
	return h.HandleTag(tg.User, tg)
}
