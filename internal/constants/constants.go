// Package constants holds the protocol's fixed wire and timing parameters.
package constants

import "time"

// Wire identity. Bumping Version invalidates the shared layout for clients.
const (
	Magic   uint32 = 0x4c474d50 // "LGMP"
	Version uint32 = 1
)

// MaxQueues bounds the fixed queues array embedded in the shared header.
const MaxQueues = 64

// MaxSubscribers is the subscriber bit-index range, 0..31.
const MaxSubscribers = 32

// Timing parameters from the protocol.
const (
	// MaxMessageAge bounds how long a head-of-queue message may sit
	// unacknowledged before its remaining recipients are flagged bad.
	MaxMessageAge = 150 * time.Millisecond

	// MaxQueueTimeout is the grace period a bad subscriber has to
	// reattach before its bit is reclaimed for reuse.
	MaxQueueTimeout = 10_000 * time.Millisecond
)
