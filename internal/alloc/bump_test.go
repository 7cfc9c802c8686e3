package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveAdvancesPointerAndTracksUsage(t *testing.T) {
	b := New(100, 1000)

	off, err := b.Reserve(64, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(104), off)       // 100 aligned up to 8
	assert.Equal(t, uint64(4+64), b.Used()) // 4 bytes padding + 64 reserved
	assert.Equal(t, uint64(1000-68), b.Avail())
}

func TestReserveFailsWhenOverCapacity(t *testing.T) {
	b := New(0, 32)
	_, err := b.Reserve(64, 1)
	assert.ErrorIs(t, err, ErrNoSharedMem)
}

func TestReserveAppliesAlignmentPadding(t *testing.T) {
	b := New(1, 64)
	off, err := b.Reserve(8, 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), off)
	assert.Equal(t, uint64(7+8), b.Used()) // 7 bytes padding + 8 reserved
}

func TestUsedPlusAvailInvariant(t *testing.T) {
	const total = 4096
	b := New(0, total)

	_, err := b.Reserve(100, 8)
	require.NoError(t, err)
	_, err = b.Reserve(500, 8)
	require.NoError(t, err)

	assert.Equal(t, uint64(total), b.Used()+b.Avail())
}
