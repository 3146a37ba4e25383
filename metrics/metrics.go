// Package metrics exposes the relay core's Prometheus instrumentation:
// messages sent/received/dropped per type, bytes transferred, active
// interfaces, and FIFO depth (SPEC_FULL.md §2 "Metrics"). Grounded on
// the teacher's go.mod dependency on prometheus/client_golang, carried
// even though aistore's own stats package (statsd-based) wasn't the
// specific file retrieved for this pack.
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry bundles every counter and gauge this core emits. A single
// instance is constructed at start-up and passed by explicit handle
// (§9 "Global state") rather than kept in package-level variables.
type Registry struct {
	MessagesSent     *prometheus.CounterVec
	MessagesReceived *prometheus.CounterVec
	MessagesDropped  *prometheus.CounterVec
	BytesSent        *prometheus.CounterVec
	BytesReceived    *prometheus.CounterVec
	ActiveInterfaces prometheus.Gauge
	FIFODepth        prometheus.Gauge
}

// New registers every metric against reg (typically
// prometheus.DefaultRegisterer) and returns the bundle.
func New(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)
	return &Registry{
		MessagesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relaycore",
			Name:      "messages_sent_total",
			Help:      "Messages handed to a Sender, by content type.",
		}, []string{"type"}),
		MessagesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relaycore",
			Name:      "messages_received_total",
			Help:      "Messages fully assembled by an EndReceiver, by content type.",
		}, []string{"type"}),
		MessagesDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relaycore",
			Name:      "messages_dropped_total",
			Help:      "Messages routed to a Sink, by reason.",
		}, []string{"reason"}),
		BytesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relaycore",
			Name:      "bytes_sent_total",
			Help:      "Bytes pumped by a Sender, by content type.",
		}, []string{"type"}),
		BytesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "relaycore",
			Name:      "bytes_received_total",
			Help:      "Bytes accumulated by a Receiver, by content type.",
		}, []string{"type"}),
		ActiveInterfaces: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "relaycore",
			Name:      "active_interfaces",
			Help:      "Number of rosiface.Interface objects currently live.",
		}),
		FIFODepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "relaycore",
			Name:      "fifo_depth_bytes",
			Help:      "Sum of unread bytes across all in-flight fifo.Buffers.",
		}),
	}
}
