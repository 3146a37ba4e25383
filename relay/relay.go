// Package relay is the thin application layer cmd/relay wires up: it
// satisfies the narrow collaborator interfaces processor.Connect,
// processor.CommInfo, and processor.Request dispatch to, and the
// messenger.LocalDelivery slot that ROS_MSG traffic lands on once it
// reaches this node. Establishing the actual peer sockets a CONNECT
// directive names, and delivering a ROS_MSG to a live rosiface.Interface,
// are owned by the transport substrate and the ROS container
// respectively (both out of scope per SPEC_FULL.md's Non-goals); Node
// records the bookkeeping this core is responsible for and logs the
// rest, the way a relay would before its container/transport layer is
// plugged in.
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package relay

import (
	"sync"

	"github.com/cloudrobotics/relaycore/cmn/nlog"
	"github.com/cloudrobotics/relaycore/content"
	"github.com/cloudrobotics/relaycore/wire"
)

// Node tracks the peer and local-delivery bookkeeping a relay node needs
// beyond what router.Manager itself owns: the announced CommID of each
// directly connected peer, and the set of CONNECT directives received so
// far.
type Node struct {
	commID wire.CommID

	mu      sync.RWMutex
	peers   map[wire.CommID]wire.CommID // origin (link) -> announced CommID
	pending []content.ConnectEntry
}

// NewNode returns a Node for commID.
func NewNode(commID wire.CommID) *Node {
	return &Node{commID: commID, peers: make(map[wire.CommID]wire.CommID)}
}

// ProcessRequest implements processor.RelayManager: record each
// (commID, ip) entry a CONNECT directive names. Actually dialing the
// peer is the transport substrate's job.
func (n *Node) ProcessRequest(entries content.ConnectDirective) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, entries...)
	for _, e := range entries {
		nlog.Infof("relay %s: queued outbound connection to %s at %s", n.commID, e.CommID, e.IP)
	}
	return nil
}

// PendingConnections returns the CONNECT entries queued so far, for the
// transport substrate to dial.
func (n *Node) PendingConnections() []content.ConnectEntry {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]content.ConnectEntry, len(n.pending))
	copy(out, n.pending)
	return out
}

// RegisterPeer implements processor.PeerRegistry: remember which
// CommID announced itself over the link from origin.
func (n *Node) RegisterPeer(origin, peer wire.CommID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.peers[origin] = peer
	nlog.Infof("relay %s: link %s identifies as %s", n.commID, origin, peer)
}

// PeerFor returns the CommID the link from origin last announced.
func (n *Node) PeerFor(origin wire.CommID) (wire.CommID, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	p, ok := n.peers[origin]
	return p, ok
}

// HandleRequest implements processor.RequestHandler. Dispatching a
// REQUEST to the right container/session is outside this core's scope;
// it is logged so a caller can see traffic reaching this node.
func (n *Node) HandleRequest(origin wire.CommID, req content.Request) error {
	nlog.Infof("relay %s: REQUEST %q from %s (user %s, %d args)", n.commID, req.Type, origin, req.User, len(req.Args))
	return nil
}

// Received implements messenger.LocalDelivery. Handing the payload to
// the matching rosiface.Interface is the owning container's job
// (rosiface.Container, declared not implemented); this core logs
// arrival so the dispatch path is observable end to end.
func (n *Node) Received(userID, tag string, commID wire.CommID, senderTag string, msg []byte, msgID string) error {
	nlog.Infof("relay %s: ROS_MSG for user %s, tag %s from %s (sender tag %s, %d bytes, msgID %s)",
		n.commID, userID, tag, commID, senderTag, len(msg), msgID)
	return nil
}
