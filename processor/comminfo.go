package processor

import (
	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/handler"
	"github.com/cloudrobotics/relaycore/wire"
)

// PeerRegistry records the relay CommID a peer announces about itself
// in a COMM_INFO message (§4.G).
type PeerRegistry interface {
	RegisterPeer(origin, peer wire.CommID)
}

// CommInfo registers the peer relay CommID carried by a COMM_INFO
// message against Peers.
type CommInfo struct {
	Peers PeerRegistry
}

var _ handler.Processor = (*CommInfo)(nil)

func (c *CommInfo) ProcessMessage(msg *wire.Message) error {
	id, ok := msg.Content.(content.CommInfo)
	if !ok {
		return errs.NewInternalError("COMM_INFO processor got unexpected content type %T", msg.Content)
	}
	c.Peers.RegisterPeer(msg.Origin, wire.CommID(id))
	return nil
}
