package lgmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsSnapshotReflectsCounters(t *testing.T) {
	m := NewMetrics()
	m.MessagesPosted.Add(3)
	m.PostQueueFull.Add(1)
	m.SubscribersReaped.Add(2)

	snap := m.Snapshot()
	assert.Equal(t, uint64(3), snap.MessagesPosted)
	assert.Equal(t, uint64(1), snap.PostQueueFull)
	assert.Equal(t, uint64(2), snap.SubscribersReaped)
	assert.Equal(t, uint64(0), snap.MessagesRetired)
}
