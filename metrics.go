package lgmp

import "sync/atomic"

// Metrics tracks publish and GC-pass statistics for a Host. Counters
// are atomic so an external observer (e.g. the Prometheus bridge in
// cmd/shmq-host) can read them concurrently with Post/Process running
// on the host's own thread.
type Metrics struct {
	QueuesRegistered             atomic.Uint64
	PayloadBytesAllocated        atomic.Uint64
	MessagesPosted               atomic.Uint64
	MessagesDroppedNoSubscribers atomic.Uint64
	PostQueueFull                atomic.Uint64
	MessagesRetired              atomic.Uint64
	SubscribersMarkedBad         atomic.Uint64
	SubscribersReaped            atomic.Uint64
}

// NewMetrics creates a zeroed Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// MetricsSnapshot is a point-in-time copy of Metrics, safe to log or
// export without further synchronization.
type MetricsSnapshot struct {
	QueuesRegistered             uint64
	PayloadBytesAllocated        uint64
	MessagesPosted               uint64
	MessagesDroppedNoSubscribers uint64
	PostQueueFull                uint64
	MessagesRetired              uint64
	SubscribersMarkedBad         uint64
	SubscribersReaped            uint64
}

// Snapshot copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		QueuesRegistered:             m.QueuesRegistered.Load(),
		PayloadBytesAllocated:        m.PayloadBytesAllocated.Load(),
		MessagesPosted:               m.MessagesPosted.Load(),
		MessagesDroppedNoSubscribers: m.MessagesDroppedNoSubscribers.Load(),
		PostQueueFull:                m.PostQueueFull.Load(),
		MessagesRetired:              m.MessagesRetired.Load(),
		SubscribersMarkedBad:         m.SubscribersMarkedBad.Load(),
		SubscribersReaped:            m.SubscribersReaped.Load(),
	}
}
