package lgmp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHost(t *testing.T, size int, clock *FakeClock, sessions *FakeSessionSource) *Host {
	t.Helper()
	mem := make([]byte, size)
	h, err := Init(mem, size, clock, sessions)
	require.NoError(t, err)
	return h
}

// Scenario 1: a restart (re-Init over the same bytes) must reroll the
// session id away from whatever was previously stored there.
func TestScenarioRestartRerollsSession(t *testing.T) {
	mem := make([]byte, 4096)
	clock := NewFakeClock(1000)

	h1, err := Init(mem, len(mem), clock, NewFakeSessionSource(42))
	require.NoError(t, err)
	first := h1.SessionID()
	assert.Equal(t, uint32(42), first)

	h2, err := Init(mem, len(mem), clock, NewFakeSessionSource(42, 42, 99))
	require.NoError(t, err)
	assert.NotEqual(t, first, h2.SessionID())
	assert.Equal(t, uint32(99), h2.SessionID())
}

// Scenario 2: posting to a queue with no live subscribers is a no-op
// that still returns StatusOK and is visible only via metrics.
func TestScenarioNoSubscribersDropsSilently(t *testing.T) {
	clock := NewFakeClock(1000)
	h := newTestHost(t, 4096, clock, NewFakeSessionSource(1))

	q, err := h.AddQueue(7, 4)
	require.NoError(t, err)

	payload, err := h.MemAlloc(16)
	require.NoError(t, err)

	status, err := h.Post(q, 0xAA, payload)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, status)
	assert.Equal(t, uint64(1), h.Metrics().Snapshot().MessagesDroppedNoSubscribers)
	assert.Equal(t, uint64(0), h.Metrics().Snapshot().MessagesPosted)
}

// Scenario 3: a single subscriber receives a posted message and, once
// it acks, Process retires the head and the queue returns to empty.
func TestScenarioOneSubscriberNormalPath(t *testing.T) {
	clock := NewFakeClock(1000)
	h := newTestHost(t, 4096, clock, NewFakeSessionSource(1))

	q, err := h.AddQueue(3, 4)
	require.NoError(t, err)
	require.NoError(t, h.Subscribe(q, 0))

	payload, err := h.MemAlloc(8)
	require.NoError(t, err)

	slot := q.position
	status, err := h.Post(q, 0x1234, payload)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, status)

	snap := h.Snapshot(q)
	assert.Equal(t, uint32(1), snap.Count)

	status, err = h.Process()
	require.NoError(t, err)
	assert.Equal(t, StatusOK, status)
	assert.Equal(t, uint32(1), h.Snapshot(q).Count, "message still outstanding before ack")

	h.AckSimulated(q, slot, 0)

	_, err = h.Process()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), h.Snapshot(q).Count, "head retires once the only subscriber acks")
	assert.Equal(t, uint64(1), h.Metrics().Snapshot().MessagesRetired)
}

// Scenario 4: a subscriber that never acks is flagged bad once
// MaxMessageAge elapses, and fully reaped once MaxQueueTimeout elapses
// without it reattaching.
func TestScenarioStuckSubscriberFlaggedThenReaped(t *testing.T) {
	clock := NewFakeClock(1000)
	h := newTestHost(t, 4096, clock, NewFakeSessionSource(1))

	q, err := h.AddQueue(5, 4)
	require.NoError(t, err)
	require.NoError(t, h.Subscribe(q, 1))

	payload, err := h.MemAlloc(8)
	require.NoError(t, err)
	_, err = h.Post(q, 0, payload)
	require.NoError(t, err)

	clock.Advance(MaxMessageAge + time.Millisecond)
	_, err = h.Process()
	require.NoError(t, err)

	snap := h.Snapshot(q)
	assert.Equal(t, uint32(0), snap.Live&^snap.Bad, "subscriber 1 should now be bad")
	assert.NotZero(t, snap.Bad&(1<<1))
	assert.Equal(t, uint32(0), h.Snapshot(q).Count, "head retires once all outstanding subs are excused")
	assert.Equal(t, uint64(1), h.Metrics().Snapshot().SubscribersMarkedBad)

	clock.Advance(MaxQueueTimeout + time.Millisecond)
	_, err = h.Process()
	require.NoError(t, err)

	snap = h.Snapshot(q)
	assert.Equal(t, uint32(0), snap.Bad&(1<<1), "bad subscriber reaped after its reattach grace period")
	assert.Equal(t, uint64(1), h.Metrics().Snapshot().SubscribersReaped)
}

// Scenario 5: a queue whose ring is saturated rejects further posts
// with StatusQueueFull until Process (driven by acks) frees a slot.
func TestScenarioQueueFull(t *testing.T) {
	clock := NewFakeClock(1000)
	h := newTestHost(t, 8192, clock, NewFakeSessionSource(1))

	q, err := h.AddQueue(9, 2) // capacity 2 live slots
	require.NoError(t, err)
	require.NoError(t, h.Subscribe(q, 0))

	payload, err := h.MemAlloc(8)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		status, err := h.Post(q, uint32(i), payload)
		require.NoError(t, err)
		require.Equal(t, StatusOK, status)
	}

	status, err := h.Post(q, 99, payload)
	require.NoError(t, err)
	assert.Equal(t, StatusQueueFull, status)
	assert.Equal(t, uint64(1), h.Metrics().Snapshot().PostQueueFull)

	h.AckSimulated(q, h.HeadSlot(q), 0)
	_, err = h.Process()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), h.Snapshot(q).Count)

	status, err = h.Post(q, 100, payload)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, status, "a slot freed up after the head retired")
}

// Scenario 6: the heartbeat counter advances monotonically across many
// Process calls and never wraps in any test-reachable run.
func TestScenarioHeartbeatMonotonic(t *testing.T) {
	clock := NewFakeClock(1000)
	h := newTestHost(t, 4096, clock, NewFakeSessionSource(1))

	var last uint32
	for i := 0; i < 1000; i++ {
		clock.Advance(time.Millisecond)
		_, err := h.Process()
		require.NoError(t, err)
		cur := h.Heartbeat()
		assert.Greater(t, cur, last)
		last = cur
	}
	assert.Equal(t, uint32(1000), last)
}
