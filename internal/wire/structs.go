// Package wire defines the on-wire layout shared between the host and
// client processes attached to the same mapped region. Field order and
// widths are frozen per Version; any change is a wire-format bump.
package wire

import (
	"unsafe"

	"github.com/lgmp-go/lgmp/internal/constants"
)

// QueueDescriptor is one registered queue's shared state. It is mutated
// in place inside the mapped region; Subs, Position and Lock are read
// and written with atomics because clients in other processes touch
// the same bytes concurrently.
type QueueDescriptor struct {
	QueueID        uint32
	NumMessages    uint32 // ring capacity including the sentinel slot
	_              uint32 // explicit padding: MessagesOffset sits at byte 16
	_              uint32
	MessagesOffset uint64
	Position       uint32 // next slot the producer will write
	Lock           uint32 // test-and-set flag, 0 = unlocked
	Subs           uint64 // packed (live, bad) masks, see bits.go
}

// Compile-time size check: layout must be identical for host and client.
var _ [40]byte = [unsafe.Sizeof(QueueDescriptor{})]byte{}

// Header sits at offset 0 of the mapped region.
type Header struct {
	MagicValue uint32
	VersionNo  uint32
	SessionID  uint32
	Heartbeat  uint32
	Caps       uint32
	NumQueues  uint32
	_          uint64 // explicit padding: Queues starts at byte 32
	Queues     [constants.MaxQueues]QueueDescriptor
}

// HeaderSize is the number of region bytes reserved for the Header,
// i.e. the offset at which the bump allocator may start handing out
// ring and payload space.
const HeaderSize = uint64(unsafe.Sizeof(Header{}))

// MessageRecord is one ring slot.
type MessageRecord struct {
	Udata       uint32
	PendingSubs uint32 // mask of subscribers that still must ack
	Size        uint32
	Offset      uint32
}

// MessageRecordSize is the per-slot size used by the bump allocator to
// reserve ring storage and by index arithmetic to locate slot N.
const MessageRecordSize = uint64(unsafe.Sizeof(MessageRecord{}))

// HeaderAt reinterprets the start of mem as a *Header. mem must be at
// least HeaderSize bytes and must outlive the returned pointer.
func HeaderAt(mem []byte) *Header {
	return (*Header)(unsafe.Pointer(&mem[0]))
}

// QueueDescriptorAt returns the queue descriptor embedded at index idx
// of the header's Queues array.
func (h *Header) QueueDescriptorAt(idx int) *QueueDescriptor {
	return &h.Queues[idx]
}

// MessageRecordAt reinterprets the region bytes at messagesOffset as the
// ring slot array and returns a pointer to slot index idx.
func MessageRecordAt(mem []byte, messagesOffset uint64, idx uint32) *MessageRecord {
	base := messagesOffset + uint64(idx)*MessageRecordSize
	return (*MessageRecord)(unsafe.Pointer(&mem[base]))
}
