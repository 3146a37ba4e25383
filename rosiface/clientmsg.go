package rosiface

import jsoniter "github.com/json-iterator/go"

// ClientMessage is the JSON envelope exchanged with the browser/
// WebSocket client (§9: CommID/msgID generation aside, "the client-
// facing JSON envelope is decoded/encoded with json-iterator/go,
// matching api/apc's use of the same library for wire-adjacent JSON").
type ClientMessage struct {
	Type         string          `json:"type"`
	MsgID        string          `json:"msgID,omitempty"`
	InterfaceTag string          `json:"interfaceTag,omitempty"`
	Msg          jsoniter.RawMessage `json:"msg"`
}

// UnmarshalClientMessage decodes a raw JSON payload received from a
// client connection.
func UnmarshalClientMessage(data []byte) (ClientMessage, error) {
	var cm ClientMessage
	err := jsoniter.Unmarshal(data, &cm)
	return cm, err
}

// Marshal encodes cm back to JSON for delivery to a client connection.
func (cm ClientMessage) Marshal() ([]byte, error) {
	return jsoniter.Marshal(cm)
}
