// Package content implements the content serializer registry (§4.C) and
// the concrete codecs for every message type named in §6 of
// SPEC_FULL.md. Registration happens once at start-up; the registry is
// read-only thereafter (§3 "Ownership").
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package content

import (
	"sync"

	"github.com/cloudrobotics/relaycore/errs"
	"github.com/cloudrobotics/relaycore/fifo"
	"github.com/cloudrobotics/relaycore/wire"
)

// Codec (de)serializes the content of one message type. Both directions
// are required by construction — a Go type that implements only one half
// simply isn't a Codec — so the "object does not expose both
// serialize and deserialize" failure from §4.C can only arise from
// duplicate registration, handled by Registry.Register.
type Codec interface {
	Serialize(w *wire.Writer, content any) error
	Deserialize(r *wire.Reader) (any, error)
}

// Registry maps a content-type identifier to its Codec.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Codec
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register adds a codec for id. Registering the same id twice is an
// InternalError: codec identity is established once at start-up and is
// never meant to be contested.
func (r *Registry) Register(id string, c Codec) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.codecs[id]; dup {
		return errs.NewInternalError("content codec already registered for type %q", id)
	}
	r.codecs[id] = c
	return nil
}

func (r *Registry) get(id string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[id]
	return c, ok
}

// Serialize renders msg's content to its wire encoding via the codec
// registered for msg.Type. The returned Buffer holds only the content
// body; the caller (router.Manager.SendMessage) prepends the fixed
// header.
func Serialize(msg *wire.Message, reg *Registry) (*fifo.Buffer, error) {
	codec, ok := reg.get(msg.Type)
	if !ok {
		return nil, errs.NewInternalError("no content codec registered for type %q", msg.Type)
	}
	buf := fifo.New()
	w := wire.NewWriter(buf)
	if err := codec.Serialize(w, msg.Content); err != nil {
		return nil, err
	}
	return buf, nil
}

// Deserialize decodes a content body of the given type off buf using the
// registered codec. The header fields (type/msgID/origin/dest) are
// already known to the caller by this point (§4.B: "the envelope is read
// first... before any content bytes are consumed").
func Deserialize(typ string, buf *fifo.Buffer, reg *Registry) (any, error) {
	codec, ok := reg.get(typ)
	if !ok {
		return nil, errs.NewSerializationError("no content codec registered for type %q", typ)
	}
	r := wire.NewReader(buf)
	return codec.Deserialize(r)
}
