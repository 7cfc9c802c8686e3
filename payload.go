package lgmp

import "unsafe"

// Payload is an owning reference into the bump-allocated region, handed
// back by MemAlloc and attached to a message at Post time. A payload
// may be reused across several Post calls.
type Payload struct {
	host   *Host
	offset uint64
	size   uint32
	freed  bool
}

// MemAlloc reserves size bytes out of the region's bump allocator and
// returns an owning handle to them. Like AddQueue, this must happen
// before the first Post/Process call.
func (h *Host) MemAlloc(size uint32) (*Payload, error) {
	if h.started {
		return nil, newError("MemAlloc", CodeHostStarted, "layout already frozen")
	}
	offset, err := h.alloc.Reserve(uint64(size), 1)
	if err != nil {
		return nil, newError("MemAlloc", CodeNoSharedMem, "insufficient shared memory for payload")
	}
	h.metrics.PayloadBytesAllocated.Add(uint64(size))
	return &Payload{host: h, offset: offset, size: size}, nil
}

// Free marks the handle as no longer in use by the caller. It does not
// return the bytes to the bump allocator.
func (p *Payload) Free() {
	p.freed = true
}

// Size returns the payload's reserved size in bytes.
func (p *Payload) Size() uint32 { return p.size }

// Offset returns the payload's absolute offset within the region, the
// value written into a message record's Offset field at Post time.
func (p *Payload) Offset() uint64 { return p.offset }

// Ptr returns a raw pointer into the region at the payload's offset.
// Callers (or the out-of-scope client receiver) are responsible for
// not reading or writing past Size() bytes from it.
func (p *Payload) Ptr() unsafe.Pointer {
	if p.freed || p.host == nil {
		return nil
	}
	return unsafe.Pointer(&p.host.mem[p.offset])
}

// Bytes returns the payload's backing bytes as a slice, a convenience
// over Ptr() for callers that are already in the host process and want
// to write the payload contents directly.
func (p *Payload) Bytes() []byte {
	if p.freed || p.host == nil {
		return nil
	}
	return p.host.mem[p.offset : p.offset+uint64(p.size)]
}
