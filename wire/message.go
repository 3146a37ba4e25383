package wire

// Message is the in-memory header + content envelope (§3): a message
// type token, origin/destination CommIDs, a request/response correlator,
// and a typed content payload whose concrete encoding is chosen by the
// content serializer registered for Type.
type Message struct {
	Type    string
	Origin  CommID
	Dest    CommID
	MsgID   string
	Content any
}

// Valid reports whether m satisfies the header invariants from §3: every
// wire message has a non-empty type, origin and dest.
func (m *Message) Valid() bool {
	return m.Type != "" && m.Origin != "" && m.Dest != ""
}
