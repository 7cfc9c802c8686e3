package lgmp

import (
	"sync/atomic"

	"github.com/lgmp-go/lgmp/internal/constants"
	"github.com/lgmp-go/lgmp/internal/spinlock"
	"github.com/lgmp-go/lgmp/internal/wire"
)

// Process advances the heartbeat and runs the liveness pass over every
// registered queue: it promotes stuck head-of-queue messages' remaining
// recipients to bad once MaxMessageAge has elapsed, retires heads whose
// required acks have all landed (or been excused), and reaps bad
// subscribers once MaxQueueTimeout has passed without them reattaching.
// Process never publishes; the per-queue critical section runs under
// that queue's spinlock, held only across atomic loads/stores.
func (h *Host) Process() (Status, error) {
	h.started = true

	if h.header != nil {
		atomic.AddUint32(&h.header.Heartbeat, 1)
	}

	now := h.clock.NowMillis()
	for _, q := range h.queues {
		h.processQueue(q, now)
	}
	return StatusOK, nil
}

func (h *Host) processQueue(q *Queue, now uint64) {
	qd := q.descriptor()

	spinlock.Lock(&qd.Lock)
	subs := atomic.LoadUint64(&qd.Subs)

	if q.count > 0 {
		subs = h.retireOrStall(q, qd, subs, now)
	}
	subs = h.reapBadSubscribers(q, subs, now)

	atomic.StoreUint64(&qd.Subs, subs)
	spinlock.Unlock(&qd.Lock)
}

// retireOrStall evaluates the head-of-queue message against subs and
// now, promoting stragglers to bad if the message has been stuck past
// MaxMessageAge, then retiring the head if nothing is left to wait for.
// It returns the (possibly bad-updated) subs word; start/count/msgTimeout
// are updated on q directly.
func (h *Host) retireOrStall(q *Queue, qd *wire.QueueDescriptor, subs uint64, now uint64) uint64 {
	msg := wire.MessageRecordAt(h.mem, qd.MessagesOffset, q.start)
	pend := atomic.LoadUint32(&msg.PendingSubs)

	outstanding := pend &^ wire.Bad(subs)
	if outstanding != 0 && now > q.msgTimeout {
		for b := uint32(0); b < constants.MaxSubscribers; b++ {
			bit := uint32(1) << b
			if outstanding&bit == 0 {
				continue
			}
			q.timeout[b] = now + uint64(MaxQueueTimeout.Milliseconds())
		}
		subs = wire.OrBad(subs, outstanding)
		atomic.StoreUint32(&msg.PendingSubs, 0)
		h.metrics.SubscribersMarkedBad.Add(uint64(popcount(outstanding)))
		outstanding = 0
	}

	if outstanding == 0 {
		q.start = (q.start + 1) % q.numMessages
		q.count--
		if q.count > 0 {
			q.msgTimeout = now + uint64(MaxMessageAge.Milliseconds())
		}
		h.metrics.MessagesRetired.Add(1)
	}

	return subs
}

// reapBadSubscribers clears any bad subscriber whose reattach grace
// period has elapsed from both halves of subs, fully evicting it so its
// bit can be reused by a future subscriber.
func (h *Host) reapBadSubscribers(q *Queue, subs uint64, now uint64) uint64 {
	bad := wire.Bad(subs)
	if bad == 0 {
		return subs
	}

	var reap uint32
	for b := uint32(0); b < constants.MaxSubscribers; b++ {
		bit := uint32(1) << b
		if bad&bit == 0 {
			continue
		}
		if now > q.timeout[b] {
			reap |= bit
		}
	}
	if reap != 0 {
		subs = wire.Clear(subs, reap)
		h.metrics.SubscribersReaped.Add(uint64(popcount(reap)))
	}
	return subs
}

func popcount(m uint32) int {
	n := 0
	for m != 0 {
		m &= m - 1
		n++
	}
	return n
}
