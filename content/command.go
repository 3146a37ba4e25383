package content

import (
	"sync"

	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/wire"
)

// Command is a polymorphic COMMAND payload. Concrete command classes are
// resolved by a fixed-width string identifier, not by language-level
// dispatch (§9 "Polymorphic content payloads").
type Command interface {
	Identifier() string
	Serialize(w *wire.Writer) error
}

// CommandFactory builds a Command of a known identifier off the wire.
type CommandFactory func(r *wire.Reader) (Command, error)

// CommandRegistry maps a COMMAND's inner identifier to the factory that
// can deserialize it, mirroring remote/message.py's
// CommandSerializer.registerCommand.
type CommandRegistry struct {
	mu    sync.RWMutex
	build map[string]CommandFactory
}

// NewCommandRegistry returns an empty CommandRegistry.
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{build: make(map[string]CommandFactory)}
}

// Register adds a factory for the given identifier. Duplicate
// registration is an InternalError.
func (c *CommandRegistry) Register(identifier string, build CommandFactory) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, dup := c.build[identifier]; dup {
		return errs.NewInternalError("command class already registered for identifier %q", identifier)
	}
	c.build[identifier] = build
	return nil
}

// Unregister removes a previously-registered command class. Unregistering
// an identifier that was never registered is an InternalError (§9 note:
// "not really necessary; just for completeness" in the source, kept here
// for symmetry).
func (c *CommandRegistry) Unregister(identifier string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.build[identifier]; !ok {
		return errs.NewInternalError("cannot unregister non-existent command %q", identifier)
	}
	delete(c.build, identifier)
	return nil
}

func (c *CommandRegistry) lookup(identifier string) (CommandFactory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	build, ok := c.build[identifier]
	return build, ok
}

// CommandContent is the COMMAND message content: a user-attributed,
// polymorphic command.
type CommandContent struct {
	User string
	Cmd  Command
}

type commandCodec struct {
	reg *CommandRegistry
}

var _ Codec = commandCodec{}

func (c commandCodec) Serialize(w *wire.Writer, content any) error {
	cc, ok := content.(CommandContent)
	if !ok {
		return errs.NewSerializationError("COMMAND content must be a CommandContent, got %T", content)
	}
	if cc.Cmd == nil {
		return errs.NewSerializationError("COMMAND content has a nil command")
	}
	if _, known := c.reg.lookup(cc.Cmd.Identifier()); !known {
		return errs.NewSerializationError("command class %q is not registered", cc.Cmd.Identifier())
	}
	w.AddElement([]byte(cc.User))
	if err := w.AddIdentifier(cc.Cmd.Identifier(), wire.CmdIdentLen()); err != nil {
		return err
	}
	return cc.Cmd.Serialize(w)
}

func (c commandCodec) Deserialize(r *wire.Reader) (any, error) {
	user, err := r.GetElement()
	if err != nil {
		return nil, err
	}
	identifier, err := r.GetIdentifier(wire.CmdIdentLen())
	if err != nil {
		return nil, err
	}
	build, ok := c.reg.lookup(identifier)
	if !ok {
		return nil, errs.NewSerializationError("command class %q is not registered", identifier)
	}
	cmd, err := build(r)
	if err != nil {
		return nil, err
	}
	return CommandContent{User: string(user), Cmd: cmd}, nil
}
