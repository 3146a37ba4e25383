package processor

import (
	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/handler"
	"github.com/cloudrobotics/relaycore/wire"
)

// RequestHandler is the owning manager a Request processor hands a
// decoded REQUEST to (§4.G).
type RequestHandler interface {
	HandleRequest(origin wire.CommID, req content.Request) error
}

// Request dispatches a REQUEST message's user-attributed request dict
// to the owning manager.
type Request struct {
	Owner RequestHandler
}

var _ handler.Processor = (*Request)(nil)

func (r *Request) ProcessMessage(msg *wire.Message) error {
	req, ok := msg.Content.(content.Request)
	if !ok {
		return errs.NewInternalError("REQUEST processor got unexpected content type %T", msg.Content)
	}
	return r.Owner.HandleRequest(msg.Origin, req)
}
