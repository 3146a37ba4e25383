package processor

import (
	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/handler"
	"github.com/cloudrobotics/relaycore/wire"
)

// RelayManager is the narrow collaborator a Connect processor hands its
// decoded directive to: the owning relay manager's own connection logic
// (§4.G: "CONNECT: hand the list of (commID, ip) pairs to the
// relay-manager's processRequest").
type RelayManager interface {
	ProcessRequest(entries content.ConnectDirective) error
}

// Connect dispatches a CONNECT message's (commID, ip) pairs to the
// owning relay manager.
type Connect struct {
	Manager RelayManager
}

var _ handler.Processor = (*Connect)(nil)

func (c *Connect) ProcessMessage(msg *wire.Message) error {
	entries, ok := msg.Content.(content.ConnectDirective)
	if !ok {
		return errs.NewInternalError("CONNECT processor got unexpected content type %T", msg.Content)
	}
	return c.Manager.ProcessRequest(entries)
}
