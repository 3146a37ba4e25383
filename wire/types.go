// Package wire defines the on-the-wire framing for messages exchanged
// between relay nodes: the fixed-width header, the content stream codec
// primitives content serializers are built on, and the message envelope
// itself (§3, §4.B, §6 of SPEC_FULL.md).
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package wire

// CommID is the opaque, fixed-width address of a node in the overlay.
type CommID string

const (
	// AddrLen is the fixed wire width, in bytes, of an encoded CommID.
	AddrLen = 16
	// TypeLen is the fixed wire width of the message type token.
	TypeLen = 12
	// MsgIDLen is the fixed wire width of the request/response correlator.
	MsgIDLen = 16
	// cmdIdentLen is the fixed wire width of COMMAND's inner class tag.
	cmdIdentLen = 1

	// HeaderLen is the total size of the fixed header that precedes the
	// content body: [length][type][msgID][origin][dest].
	HeaderLen = 4 + TypeLen + MsgIDLen + AddrLen + AddrLen

	// ChunkSize bounds the number of bytes a Sender pulls from its FIFO
	// on a single write, i.e. the per-wake unit of backpressure.
	ChunkSize = 16 * 1024

	// MaxLength caps the total wire size (header + content) of a single
	// message. Messages declaring a larger length are drained via Sink
	// and never buffered in full.
	MaxLength = 4 * 1024 * 1024

	// PrefixPrivAddr marks a CommID as private: reserved for
	// container-manager traffic and never forwardable through an
	// arbitrary relay (§4.E step 5).
	PrefixPrivAddr = "$priv-"

	// NeighborAddr is the sentinel destination meaning "the directly
	// connected peer of this link", regardless of that peer's real CommID.
	NeighborAddr CommID = "*neighbor*"
)

// CmdIdentLen returns the fixed width of a COMMAND payload's inner class
// identifier, exported for the content package's command registry.
func CmdIdentLen() int { return cmdIdentLen }

// Message type tokens (§3, §6).
const (
	TypeROSAdd    = "ROS_ADD"
	TypeROSMsg    = "ROS_MSG"
	TypeConnect   = "CONNECT"
	TypeCommInfo  = "COMM_INFO"
	TypeRequest   = "REQUEST"
	TypeCommand   = "COMMAND"
	TypeTag       = "TAG"
	TypeROSRemove = "ROS_REMOVE"
	TypeROSUser   = "ROS_USER"
)

// IsPrivate reports whether id carries the reserved private-address
// prefix (§4.E step 5, §8 invariant 7).
func IsPrivate(id CommID) bool {
	return len(id) >= len(PrefixPrivAddr) && string(id[:len(PrefixPrivAddr)]) == PrefixPrivAddr
}
