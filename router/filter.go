// Package router implements the CommManager and protocol factory (§4.E,
// §4.F of SPEC_FULL.md): the destination table that routes outbound
// messages to the right connection, the six-step inbound routing
// decision, and per-connection message-type filtering and handshake
// state.
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package router

// ConnFilter holds the per-connection routing state named in §4.F: an
// allow-list of message types that may traverse this connection, and
// whether the peer has completed the handshake. A freshly accepted
// connection starts unauthenticated. Manager.Receive does not consult
// this flag: pre-authentication gating happens through the init
// processor passed to Receive (routing step 2).
type ConnFilter struct {
	allowed       map[string]bool
	authenticated bool
}

// NewConnFilter returns a ConnFilter permitting exactly the given
// message types.
func NewConnFilter(allowed ...string) *ConnFilter {
	set := make(map[string]bool, len(allowed))
	for _, t := range allowed {
		set[t] = true
	}
	return &ConnFilter{allowed: set}
}

// FilterMessage reports whether typ should be dropped on this
// connection (true means blocked).
func (f *ConnFilter) FilterMessage(typ string) bool {
	return !f.allowed[typ]
}

// Authenticate marks the connection's handshake as complete.
func (f *ConnFilter) Authenticate() { f.authenticated = true }

// Authenticated reports whether the handshake has completed.
func (f *ConnFilter) Authenticated() bool { return f.authenticated }
