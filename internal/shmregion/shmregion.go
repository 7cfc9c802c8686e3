// Package shmregion stands in for the out-of-scope region-mapping
// capability: it anonymously mmaps a byte slice the demo host can hand
// to lgmp.Init as if it were the pre-mapped shared-memory buffer a real
// deployment would receive from its caller.
package shmregion

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Region is an mmap'd byte buffer and the means to unmap it.
type Region struct {
	Bytes []byte
}

// New mmaps an anonymous, zero-filled region of size bytes. The mapping
// is MAP_SHARED, so a forked child process (outside this binary's scope)
// would inherit the same mapping; there is no file descriptor to pass.
func New(size int) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("shmregion: size must be positive, got %d", size)
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("shmregion: mmap: %w", err)
	}
	return &Region{Bytes: b}, nil
}

// Close unmaps the region. Calling it again after a Close is a no-op
// that returns nil.
func (r *Region) Close() error {
	if r.Bytes == nil {
		return nil
	}
	err := unix.Munmap(r.Bytes)
	r.Bytes = nil
	return err
}
