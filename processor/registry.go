// Package processor implements the message processor registry and the
// concrete processors named in §4.G of SPEC_FULL.md: Connect, CommInfo,
// Request, Command/Tag (via a per-user Distributor), and the ROS_MSG
// slot filled by messenger.Messenger. A processor is selected by content
// type once a message has been fully deserialized by an EndReceiver.
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package processor

import (
	"sync"

	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/handler"
)

// Registry maps a content-type identifier to the Processor handling
// messages of that type. Registered once at start-up and read-only
// thereafter (§3 "Ownership").
type Registry struct {
	mu    sync.RWMutex
	procs map[string]handler.Processor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{procs: make(map[string]handler.Processor)}
}

// Register adds p as the processor for msgType. Duplicate registration
// is an InternalError.
func (r *Registry) Register(msgType string, p handler.Processor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.procs[msgType]; dup {
		return errs.NewInternalError("processor already registered for type %q", msgType)
	}
	r.procs[msgType] = p
	return nil
}

// Get returns the processor registered for msgType, if any.
func (r *Registry) Get(msgType string) (handler.Processor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.procs[msgType]
	return p, ok
}
