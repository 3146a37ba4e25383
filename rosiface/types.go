// Package rosiface implements per-logical-endpoint interface objects
// that translate between external client payloads and ROS messages,
// with reference-counted lifetime over interested users (§4.H of
// SPEC_FULL.md). The ROS type loader and the JSON<->ROS converter are
// external collaborators, declared here as interfaces and never
// implemented (§1 Non-goals).
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package rosiface

// Kind enumerates the three interface specializations (§4.H): a service
// has both a request and a response class, a publisher only a to-ROS
// class, a subscriber only a from-ROS class.
type Kind int

const (
	Service Kind = iota
	Publisher
	Subscriber
)

func (k Kind) String() string {
	switch k {
	case Service:
		return "service"
	case Publisher:
		return "publisher"
	case Subscriber:
		return "subscriber"
	default:
		return "unknown"
	}
}
