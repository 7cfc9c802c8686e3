package lgmp

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lgmp-go/lgmp/internal/wire"
)

// FakeClock is a manually-advanced Clock for deterministic tests. It
// starts at start, which must be non-zero; zero means "unusable clock"
// to Init.
type FakeClock struct {
	mu  sync.Mutex
	now uint64
}

// NewFakeClock creates a FakeClock starting at the given millisecond
// value.
func NewFakeClock(start uint64) *FakeClock {
	return &FakeClock{now: start}
}

// NowMillis implements Clock.
func (c *FakeClock) NowMillis() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set pins the clock to an absolute millisecond value.
func (c *FakeClock) Set(now uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += uint64(d.Milliseconds())
}

// FakeSessionSource returns a scripted sequence of session ids, useful
// for asserting that Init rerolls away from a previous value. If the
// scripted sequence is exhausted, it repeats the last id.
type FakeSessionSource struct {
	mu  sync.Mutex
	ids []uint32
	idx int
}

// NewFakeSessionSource creates a FakeSessionSource that yields ids in
// order on successive calls.
func NewFakeSessionSource(ids ...uint32) *FakeSessionSource {
	return &FakeSessionSource{ids: ids}
}

// NextSessionID implements SessionSource.
func (f *FakeSessionSource) NextSessionID() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.ids) == 0 {
		return 0
	}
	id := f.ids[f.idx]
	if f.idx < len(f.ids)-1 {
		f.idx++
	}
	return id
}

// AckSimulated performs the client-side commit atomically clearing bit
// from the pending-subscribers mask of the message at slot.
func (h *Host) AckSimulated(q *Queue, slot uint32, bit uint32) {
	qd := q.descriptor()
	rec := wire.MessageRecordAt(h.mem, qd.MessagesOffset, slot)
	for {
		old := atomic.LoadUint32(&rec.PendingSubs)
		updated := old &^ (1 << bit)
		if atomic.CompareAndSwapUint32(&rec.PendingSubs, old, updated) {
			return
		}
	}
}

// HeadSlot returns the ring index of the current head-of-queue message.
func (h *Host) HeadSlot(q *Queue) uint32 {
	return q.start
}
