// Package spinlock provides a cross-process test-and-set lock backed by
// a single aligned word inside shared memory. It deliberately does not
// use a language-level mutex: a mutex can embed a kernel handle or
// pointer that is meaningless to another process mapping the same
// bytes, so the lock word itself must be the only state.
package spinlock

import (
	"runtime"
	"sync/atomic"
)

// spinBeforeYield is how many CompareAndSwap attempts run back-to-back
// before the spinner yields the OS thread. Queue critical sections are a
// handful of word reads and writes, so most acquisitions succeed within
// a couple of spins; yielding immediately would cost a scheduler
// round-trip on the common case.
const spinBeforeYield = 32

// Lock spins on the word at addr until it can transition it from 0 to 1,
// then returns. addr must point at a uint32 inside the mapped region
// that is otherwise untouched by anything but Lock/Unlock.
func Lock(addr *uint32) {
	attempts := 0
	for !atomic.CompareAndSwapUint32(addr, 0, 1) {
		attempts++
		if attempts >= spinBeforeYield {
			runtime.Gosched()
			attempts = 0
		}
	}
}

// Unlock clears the lock word, releasing it for the next acquirer.
func Unlock(addr *uint32) {
	atomic.StoreUint32(addr, 0)
}

// TryLock attempts a single non-blocking acquisition, returning whether
// it succeeded.
func TryLock(addr *uint32) bool {
	return atomic.CompareAndSwapUint32(addr, 0, 1)
}
