package lgmp

import (
	"sync/atomic"

	"github.com/lgmp-go/lgmp/internal/alloc"
	"github.com/lgmp-go/lgmp/internal/constants"
	"github.com/lgmp-go/lgmp/internal/logging"
	"github.com/lgmp-go/lgmp/internal/wire"
)

// Status is the result of a Post or Process call.
type Status int

const (
	StatusOK Status = iota
	StatusQueueFull
)

// Host owns a borrowed, caller-mapped region and the host-private
// bookkeeping mirroring what clients see in the region itself. Not
// safe for concurrent use from more than one goroutine.
type Host struct {
	mem      []byte
	header   *wire.Header
	alloc    *alloc.Bump
	clock    Clock
	sessions SessionSource
	logger   *logging.Logger
	metrics  *Metrics

	started bool
	queues  []*Queue
}

// Init validates the region, writes the shared header with a freshly
// rolled session id, and prepares the bump allocator over the
// remaining bytes. clock and sessions may be nil to use the
// production defaults (SystemClock, CryptoRandSession).
func Init(mem []byte, size int, clock Clock, sessions SessionSource) (*Host, error) {
	if mem == nil {
		return nil, newError("Init", CodeNoMem, "no backing buffer provided")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	if sessions == nil {
		sessions = CryptoRandSession{}
	}
	if clock.NowMillis() == 0 {
		return nil, newError("Init", CodeClockFailure, "clock returned 0, treated as unusable")
	}
	if size < 0 || uint64(size) < wire.HeaderSize || uint64(size) > uint64(len(mem)) {
		return nil, newError("Init", CodeInvalidSize, "region smaller than the fixed header")
	}

	region := mem[:size]
	h := wire.HeaderAt(region)

	prevSession := atomic.LoadUint32(&h.SessionID)
	newSession := sessions.NextSessionID()
	for newSession == prevSession {
		newSession = sessions.NextSessionID()
	}

	atomic.StoreUint32(&h.MagicValue, constants.Magic)
	atomic.StoreUint32(&h.VersionNo, constants.Version)
	atomic.StoreUint32(&h.Caps, 0)
	atomic.StoreUint32(&h.Heartbeat, 0)
	atomic.StoreUint32(&h.NumQueues, 0)
	atomic.StoreUint32(&h.SessionID, newSession)

	logger := logging.Default().WithSession(newSession)
	logger.Info("host initialized", "region_size", size)

	return &Host{
		mem:      region,
		header:   h,
		alloc:    alloc.New(wire.HeaderSize, uint64(size)-wire.HeaderSize),
		clock:    clock,
		sessions: sessions,
		logger:   logger,
		metrics:  NewMetrics(),
	}, nil
}

// Free releases host-private bookkeeping. It does not zero the shared
// region.
func (h *Host) Free() {
	h.queues = nil
	h.mem = nil
	h.header = nil
}

// SessionID returns the current session identifier written at Init.
func (h *Host) SessionID() uint32 {
	if h.header == nil {
		return 0
	}
	return atomic.LoadUint32(&h.header.SessionID)
}

// Heartbeat returns the current heartbeat counter.
func (h *Host) Heartbeat() uint32 {
	if h.header == nil {
		return 0
	}
	return atomic.LoadUint32(&h.header.Heartbeat)
}

// Metrics returns the host's publish/GC counters.
func (h *Host) Metrics() *Metrics {
	return h.metrics
}

// NumQueues returns the number of registered queues.
func (h *Host) NumQueues() int {
	return len(h.queues)
}
