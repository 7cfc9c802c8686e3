package lgmp

import (
	"sync/atomic"

	"github.com/lgmp-go/lgmp/internal/wire"
)

// Post publishes udata/payload to every subscriber currently live and
// not bad on q. It does not take the queue lock; it snapshots Subs
// instead. Delivering to zero subscribers is a no-op. A full ring
// returns StatusQueueFull.
func (h *Host) Post(q *Queue, udata uint32, payload *Payload) (Status, error) {
	h.started = true

	qd := q.descriptor()
	subs := atomic.LoadUint64(&qd.Subs)
	pend := wire.Live(subs) &^ wire.Bad(subs)

	if pend == 0 {
		h.metrics.MessagesDroppedNoSubscribers.Add(1)
		return StatusOK, nil
	}

	if q.count == q.numMessages-1 {
		h.metrics.PostQueueFull.Add(1)
		return StatusQueueFull, nil
	}

	rec := wire.MessageRecordAt(h.mem, qd.MessagesOffset, q.position)
	rec.Udata = udata
	var size, offset uint32
	if payload != nil {
		size = payload.size
		offset = uint32(payload.offset)
	}
	rec.Size = size
	rec.Offset = offset
	atomic.StoreUint32(&rec.PendingSubs, pend)

	if q.count == 0 {
		q.msgTimeout = h.clock.NowMillis() + uint64(MaxMessageAge.Milliseconds())
	}

	q.position = (q.position + 1) % q.numMessages
	atomic.StoreUint32(&qd.Position, q.position)
	q.count++

	h.metrics.MessagesPosted.Add(1)
	return StatusOK, nil
}
