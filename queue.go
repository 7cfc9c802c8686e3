package lgmp

import (
	"sync/atomic"

	"github.com/lgmp-go/lgmp/internal/constants"
	"github.com/lgmp-go/lgmp/internal/spinlock"
	"github.com/lgmp-go/lgmp/internal/wire"
)

// Queue is the host-private handle returned by AddQueue. It mirrors the
// shared QueueDescriptor's cursors with the bookkeeping clients never
// see: the consumer-side start cursor, outstanding count, and the
// per-message and per-subscriber deadlines the GC pass enforces.
type Queue struct {
	host        *Host
	index       int
	queueID     uint32
	numMessages uint32 // effective ring length, including the sentinel slot

	position   uint32 // mirrors the shared descriptor's Position
	start      uint32 // oldest unacknowledged slot
	count      uint32 // outstanding messages, start..position
	msgTimeout uint64 // absolute deadline (ms) for the head message

	// timeout[b] is the absolute deadline (ms) by which bad subscriber
	// b must reattach before its bit is reclaimed.
	timeout [constants.MaxSubscribers]uint64
}

// QueueID returns the opaque tag the host application chose for this
// queue.
func (q *Queue) QueueID() uint32 { return q.queueID }

// Capacity returns the effective ring capacity, numMessages - 1 (the
// sentinel slot is never available for a live message).
func (q *Queue) Capacity() uint32 { return q.numMessages - 1 }

func (q *Queue) descriptor() *wire.QueueDescriptor {
	return q.host.header.QueueDescriptorAt(q.index)
}

// AddQueue registers a new queue with the given opaque ID and ring
// capacity (numMessages live slots; one extra sentinel slot is reserved
// internally). Queues may only be registered before the first Post or
// Process call; layout is frozen after that.
func (h *Host) AddQueue(queueID uint32, numMessages uint32) (*Queue, error) {
	if h.started {
		return nil, newQueueError("AddQueue", queueID, CodeHostStarted, "layout already frozen")
	}
	if len(h.queues) >= constants.MaxQueues {
		return nil, newQueueError("AddQueue", queueID, CodeNoQueues, "queue table full")
	}

	effective := numMessages + 1
	ringBytes := wire.MessageRecordSize * uint64(effective)
	offset, err := h.alloc.Reserve(ringBytes, wire.MessageRecordSize)
	if err != nil {
		return nil, newQueueError("AddQueue", queueID, CodeNoSharedMem, "insufficient shared memory for ring")
	}

	idx := len(h.queues)
	qd := h.header.QueueDescriptorAt(idx)
	qd.QueueID = queueID
	qd.NumMessages = effective
	qd.MessagesOffset = offset
	atomic.StoreUint32(&qd.Position, 0)
	atomic.StoreUint32(&qd.Lock, 0)
	atomic.StoreUint64(&qd.Subs, 0)

	now := h.clock.NowMillis()
	q := &Queue{
		host:        h,
		index:       idx,
		queueID:     queueID,
		numMessages: effective,
		msgTimeout:  now + uint64(MaxMessageAge.Milliseconds()),
	}
	h.queues = append(h.queues, q)
	atomic.StoreUint32(&h.header.NumQueues, uint32(len(h.queues)))
	h.metrics.QueuesRegistered.Add(1)

	h.logger.Debug("queue registered", "queue_id", queueID, "capacity", numMessages)
	return q, nil
}

// Subscribe marks subscriber bit as live on this queue. It takes the
// queue lock, matching the ordering guarantee the protocol requires
// between subscribe/unsubscribe and process()'s reaping.
func (h *Host) Subscribe(q *Queue, bit uint32) error {
	if bit >= constants.MaxSubscribers {
		return newQueueError("Subscribe", q.queueID, CodeInvalidSubscriber, "subscriber bit out of range")
	}
	qd := q.descriptor()
	spinlock.Lock(&qd.Lock)
	subs := atomic.LoadUint64(&qd.Subs)
	subs = wire.SetLive(subs, 1<<bit)
	atomic.StoreUint64(&qd.Subs, subs)
	spinlock.Unlock(&qd.Lock)
	return nil
}

// Unsubscribe clears subscriber bit from both the live and bad halves
// of the queue's subscriber word, under the queue lock.
func (h *Host) Unsubscribe(q *Queue, bit uint32) error {
	if bit >= constants.MaxSubscribers {
		return newQueueError("Unsubscribe", q.queueID, CodeInvalidSubscriber, "subscriber bit out of range")
	}
	qd := q.descriptor()
	spinlock.Lock(&qd.Lock)
	subs := atomic.LoadUint64(&qd.Subs)
	subs = wire.Clear(subs, 1<<bit)
	atomic.StoreUint64(&qd.Subs, subs)
	spinlock.Unlock(&qd.Lock)
	return nil
}

// QueueSnapshot is a point-in-time, lock-free view of a queue's public
// and private state, useful for metrics and debugging without
// perturbing the hot path.
type QueueSnapshot struct {
	QueueID  uint32
	Live     uint32
	Bad      uint32
	Position uint32
	Start    uint32
	Count    uint32
}

// Snapshot reads a queue's current state without taking its lock; Live
// and Bad may be torn relative to Start/Count/Count since those are
// host-private and Subs is shared, but no single word is ever read
// non-atomically.
func (h *Host) Snapshot(q *Queue) QueueSnapshot {
	qd := q.descriptor()
	subs := atomic.LoadUint64(&qd.Subs)
	return QueueSnapshot{
		QueueID:  q.queueID,
		Live:     wire.Live(subs),
		Bad:      wire.Bad(subs),
		Position: atomic.LoadUint32(&qd.Position),
		Start:    q.start,
		Count:    q.count,
	}
}
