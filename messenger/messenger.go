// Package messenger implements the Messenger of §4.I: it delivers ROS
// payloads either to the local interface manager (when the destination
// is this node) or to a remote node through the router.
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package messenger

import (
	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/handler"
	"github.com/cloudrobotics/relaycore/wire"
)

// LocalDelivery is the local interface manager Messenger hands a
// decoded ROS payload to once its destination is known to be this node
// (§4.I: "dispatch to the local interface manager's received").
type LocalDelivery interface {
	Received(userID, tag string, commID wire.CommID, senderTag string, msg []byte, msgID string) error
}

// Router is the narrow collaborator Messenger submits remote ROS_MSG
// traffic through.
type Router interface {
	SendMessage(msg *wire.Message)
}

// Messenger delivers ROS payloads to either a local interface manager
// or a remote endpoint through the router (§4.I).
type Messenger struct {
	localCommID wire.CommID
	local       LocalDelivery
	router      Router
}

var _ handler.Processor = (*Messenger)(nil)

// New returns a Messenger for localCommID.
func New(localCommID wire.CommID, local LocalDelivery, router Router) *Messenger {
	return &Messenger{localCommID: localCommID, local: local, router: router}
}

// Send delivers payload addressed to (userID, tag) on commID, from
// senderTag, correlated by msgID. When commID is the local node it is
// delivered directly; otherwise a ROS_MSG wire message is constructed
// and submitted to the router (§4.I).
//
// The wire message built here (wireMsg) is a variable distinct from
// payload: content.ROSMsg.Msg is always set to the original payload
// bytes, never reassigned to the wire envelope itself. The source this
// core is modeled on reuses its msg parameter's name for the
// newly-built wire message, which leaves content["msg"] holding the
// wire envelope instead of the ROS bytes once the reassignment lands
// (§9 Open Question); keeping payload and wireMsg as distinct bindings
// avoids replicating that.
func (m *Messenger) Send(userID, tag string, commID wire.CommID, senderTag string, payload []byte, msgID string) error {
	if commID == m.localCommID {
		return m.local.Received(userID, tag, commID, senderTag, payload, msgID)
	}

	wireMsg := &wire.Message{
		Type:   wire.TypeROSMsg,
		Origin: m.localCommID,
		Dest:   commID,
		MsgID:  msgID,
		Content: content.ROSMsg{
			Msg:     payload,
			DestTag: tag,
			SrcTag:  senderTag,
			MsgID:   msgID,
			User:    userID,
		},
	}
	m.router.SendMessage(wireMsg)
	return nil
}

// ProcessMessage implements handler.Processor for ROS_MSG messages
// arriving from a remote node: extract the origin CommID and dispatch
// to the local interface manager (§4.I).
func (m *Messenger) ProcessMessage(msg *wire.Message) error {
	rm, ok := msg.Content.(content.ROSMsg)
	if !ok {
		return errs.NewInternalError("ROS_MSG processor got unexpected content type %T", msg.Content)
	}
	return m.local.Received(rm.User, rm.DestTag, msg.Origin, rm.SrcTag, rm.Msg, rm.MsgID)
}
