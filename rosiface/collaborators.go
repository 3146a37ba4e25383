package rosiface

import "github.com/cloudrobotics/relaycore/wire"

// Container owns a set of interfaces and provides the ROS address space
// and control-message transport they share (§6 "container").
type Container interface {
	ReserveAddr(rosAddr string) error
	FreeAddr(rosAddr string)
	Send(msg *wire.Message) error
	ReceivedFromInterface(cm ClientMessage) error
}

// RosMsg is an instantiated ROS message, ready to serialize onto the
// wire or freshly decoded off it (§6: "class with .serialize(fifo),
// .deserialize(bytes)").
type RosMsg interface {
	Serialize(buf Sink) error
}

// Sink is the minimal byte-accepting surface a RosMsg serializes into;
// satisfied by *fifo.Buffer without this package importing it merely
// for a Push method.
type Sink interface {
	Push(data []byte)
}

// MsgClass is a ROS message class: given wire bytes it reconstructs the
// message a RosMsg represents.
type MsgClass interface {
	Deserialize(data []byte) (RosMsg, error)
}

// SrvClass is a ROS service class, exposing its distinct request and
// response message classes (§6: "for services, _request_class /
// _response_class").
type SrvClass interface {
	RequestClass() MsgClass
	ResponseClass() MsgClass
}

// ROSLoader resolves a ROS package/message or package/service name to a
// concrete message or service class (§1, §6). Declared, not
// implemented: this core never loads ROS types itself.
type ROSLoader interface {
	LoadMsg(pkg, name string) (MsgClass, error)
	LoadSrv(pkg, name string) (SrvClass, error)
}

// Converter translates between a RosMsg and its client-facing JSON
// encoding (§6: "encode(rosMsg) -> json, decode(cls, json) -> rosMsg").
// Declared, not implemented.
type Converter interface {
	Encode(msg RosMsg) ([]byte, error)
	Decode(cls MsgClass, data []byte) (RosMsg, error)
}
