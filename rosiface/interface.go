package rosiface

import (
	"github.com/cloudrobotics/relaycore/cmn/cos"
	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/fifo"
	"github.com/cloudrobotics/relaycore/metrics"
	"github.com/cloudrobotics/relaycore/wire"
)

// ref is one (target, commID) user reference. The reference set is a
// multiset: registering the same user twice does not collapse into one
// entry, and each registration must be matched by its own
// unregistration (§9 "Reference counting on interfaces").
type ref struct {
	target string
	commID wire.CommID
}

// Interface is one ROS endpoint inside a container: a publisher,
// subscriber, or service identified by (tag, rosAddr, msgType, kind),
// holding a multiset of (target, commID) user references (§3, §4.H).
type Interface struct {
	tag     string
	rosAddr string
	msgType string
	kind    Kind

	container Container
	toClass   MsgClass // publisher, service: encodes the outgoing ROS payload
	fromClass MsgClass // subscriber, service: decodes the incoming ROS payload
	conv      Converter

	metrics *metrics.Registry
	refs    []ref
}

// NewInterface reserves rosAddr from container and returns a new
// Interface. Duplicate reservation surfaces container's error, which by
// convention is an InvalidRequest (§3 "duplicate reservation fails with
// InvalidRequest"). metricsReg may be nil, in which case no metrics are
// recorded.
func NewInterface(container Container, tag, rosAddr, msgType string, kind Kind, toClass, fromClass MsgClass, conv Converter, metricsReg *metrics.Registry) (*Interface, error) {
	if err := container.ReserveAddr(rosAddr); err != nil {
		return nil, err
	}
	if metricsReg != nil {
		metricsReg.ActiveInterfaces.Inc()
	}
	return &Interface{
		tag:       tag,
		rosAddr:   rosAddr,
		msgType:   msgType,
		kind:      kind,
		container: container,
		toClass:   toClass,
		fromClass: fromClass,
		conv:      conv,
		metrics:   metricsReg,
	}, nil
}

// Validate reports whether (tag, rosAddr, msgType, kind) exactly match
// this interface's identity; used for idempotent re-registration.
func (i *Interface) Validate(tag, rosAddr, msgType string, kind Kind) bool {
	return i.tag == tag && i.rosAddr == rosAddr && i.msgType == msgType && i.kind == kind
}

// RegisterUser adds (target, commID) to the reference multiset. The
// first registration into an empty set emits ROS_ADD before the
// ROS_USER that always follows a registration (§4.H).
func (i *Interface) RegisterUser(target string, commID wire.CommID) error {
	if len(i.refs) == 0 {
		if err := i.emitROSAdd(); err != nil {
			return err
		}
	}
	if err := i.emitROSUser(target, commID, true); err != nil {
		return err
	}
	i.refs = append(i.refs, ref{target: target, commID: commID})
	return nil
}

// UnregisterUser removes the first matching (target, commID) reference.
// Emptying the set emits ROS_REMOVE instead of the usual ROS_USER.
// Removing an absent reference is a domain error.
func (i *Interface) UnregisterUser(target string, commID wire.CommID) error {
	idx := -1
	for n, r := range i.refs {
		if r.target == target && r.commID == commID {
			idx = n
			break
		}
	}
	if idx < 0 {
		return errs.NewInvalidRequest("no user reference (%q, %q) on interface %q", target, commID, i.tag)
	}
	i.refs = append(i.refs[:idx], i.refs[idx+1:]...)
	if len(i.refs) == 0 {
		return i.emitROSRemove("interface")
	}
	return i.emitROSUser(target, commID, false)
}

// Destroy releases rosAddr back to the container. If user references
// remain, it emits ROS_REMOVE (§3 "destruction").
func (i *Interface) Destroy() error {
	i.container.FreeAddr(i.rosAddr)
	if i.metrics != nil {
		i.metrics.ActiveInterfaces.Dec()
	}
	if len(i.refs) > 0 {
		return i.emitROSRemove("interface")
	}
	return nil
}

// Send pushes a client-originated payload onto the ROS side: reject if
// cm.Type doesn't match, decode via the converter into the to-ROS
// message class, serialize it into a fresh FIFO, and emit ROS_MSG.
// Valid only on Service and Publisher interfaces (§4.H).
func (i *Interface) Send(cm ClientMessage, senderTag string, sender wire.CommID) error {
	if i.kind == Subscriber {
		return errs.NewInvalidRequest("cannot send on subscriber interface %q", i.tag)
	}
	if cm.Type != i.msgType {
		return errs.NewInvalidRequest("client message type %q does not match interface type %q", cm.Type, i.msgType)
	}

	rosMsg, err := i.conv.Decode(i.toClass, cm.Msg)
	if err != nil {
		return errs.NewInvalidRequest("could not decode client message for interface %q: %s", i.tag, err)
	}

	buf := fifo.New()
	if err := rosMsg.Serialize(buf); err != nil {
		return errs.NewInvalidRequest("could not serialize ROS message for interface %q: %s", i.tag, err)
	}

	msg := &wire.Message{
		Type: wire.TypeROSMsg,
		Content: content.ROSMsg{
			Msg:     buf.Bytes(),
			DestTag: i.tag,
			SrcTag:  senderTag,
			MsgID:   cos.GenMsgID(),
			User:    string(sender),
		},
	}
	return i.container.Send(msg)
}

// Receive pushes a ROS-originated payload onto the client side:
// instantiate the from-ROS message class, decode the wire bytes,
// encode to JSON, and hand it to the container. Valid only on Service
// and Subscriber interfaces (§4.H).
func (i *Interface) Receive(rm content.ROSMsg) error {
	if i.kind == Publisher {
		return errs.NewInvalidRequest("cannot receive on publisher interface %q", i.tag)
	}

	rosMsg, err := i.fromClass.Deserialize(rm.Msg)
	if err != nil {
		return errs.NewInvalidRequest("could not decode ROS message for interface %q: %s", i.tag, err)
	}

	encoded, err := i.conv.Encode(rosMsg)
	if err != nil {
		return errs.NewInvalidRequest("could not encode ROS message for interface %q: %s", i.tag, err)
	}

	cm := ClientMessage{Type: i.msgType, MsgID: rm.MsgID, InterfaceTag: i.tag, Msg: encoded}
	return i.container.ReceivedFromInterface(cm)
}

func (i *Interface) emitROSAdd() error {
	msg := &wire.Message{
		Type:    wire.TypeROSAdd,
		Content: content.ROSAdd{RosAddr: i.rosAddr, Tag: i.tag, MsgType: i.msgType, Kind: i.kind.String()},
	}
	return i.container.Send(msg)
}

func (i *Interface) emitROSUser(target string, commID wire.CommID, add bool) error {
	msg := &wire.Message{
		Type:    wire.TypeROSUser,
		Content: content.ROSUser{Tag: i.tag, Target: target, CommID: commID, Add: add},
	}
	return i.container.Send(msg)
}

func (i *Interface) emitROSRemove(kind string) error {
	msg := &wire.Message{
		Type:    wire.TypeROSRemove,
		Content: content.ROSRemove{Type: kind, Tag: i.tag},
	}
	return i.container.Send(msg)
}
