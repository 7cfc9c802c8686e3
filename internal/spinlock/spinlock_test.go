package spinlock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockUnlockRoundTrip(t *testing.T) {
	var word uint32
	Lock(&word)
	assert.Equal(t, uint32(1), word)
	Unlock(&word)
	assert.Equal(t, uint32(0), word)
}

func TestTryLockFailsWhileHeld(t *testing.T) {
	var word uint32
	Lock(&word)
	assert.False(t, TryLock(&word))
	Unlock(&word)
	assert.True(t, TryLock(&word))
	Unlock(&word)
}

func TestConcurrentLockSerializes(t *testing.T) {
	var word uint32
	var counter int
	var wg sync.WaitGroup

	const goroutines = 16
	const iterations = 200

	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				Lock(&word)
				counter++
				Unlock(&word)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*iterations, counter)
}
