package wire

import "encoding/binary"

// DumpHeader renders the fixed portion of a Header (everything except
// the Queues array) as a little-endian byte slice. It exists for the
// debug/inspect path (cmd/shmq-host dump) where a human or a remote
// tool wants a stable serialized snapshot rather than a raw struct
// pointer into someone else's address space.
func DumpHeader(h *Header) []byte {
	buf := make([]byte, 24)
	binary.LittleEndian.PutUint32(buf[0:4], h.MagicValue)
	binary.LittleEndian.PutUint32(buf[4:8], h.VersionNo)
	binary.LittleEndian.PutUint32(buf[8:12], h.SessionID)
	binary.LittleEndian.PutUint32(buf[12:16], h.Heartbeat)
	binary.LittleEndian.PutUint32(buf[16:20], h.Caps)
	binary.LittleEndian.PutUint32(buf[20:24], h.NumQueues)
	return buf
}

// DumpQueueDescriptor renders a queue descriptor's non-lock fields as a
// little-endian byte slice, for the same debug/inspect use as DumpHeader.
// Subs is rendered as its low 32 bits only (the live mask); the bad mask
// is not included.
func DumpQueueDescriptor(q *QueueDescriptor) []byte {
	buf := make([]byte, 24)
	binary.LittleEndian.PutUint32(buf[0:4], q.QueueID)
	binary.LittleEndian.PutUint32(buf[4:8], q.NumMessages)
	binary.LittleEndian.PutUint64(buf[8:16], q.MessagesOffset)
	binary.LittleEndian.PutUint32(buf[16:20], q.Position)
	binary.LittleEndian.PutUint32(buf[20:24], uint32(q.Subs))
	return buf
}
