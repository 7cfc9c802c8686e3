package wire

// Subs packs two 32-bit subscriber masks into one 64-bit word so a
// single atomic load yields a consistent (live, bad) pair without
// holding the queue lock. Low 32 bits are the live mask, high 32 bits
// the bad mask.

// Live extracts the live-subscriber mask from a packed subs word.
func Live(subs uint64) uint32 {
	return uint32(subs)
}

// Bad extracts the bad-subscriber mask from a packed subs word.
func Bad(subs uint64) uint32 {
	return uint32(subs >> 32)
}

// Pack combines a live and bad mask into one subs word.
func Pack(live, bad uint32) uint64 {
	return uint64(live) | uint64(bad)<<32
}

// OrBad ORs m into the bad half of subs, leaving live untouched.
func OrBad(subs uint64, m uint32) uint64 {
	return Pack(Live(subs), Bad(subs)|m)
}

// Clear removes m from both halves of subs, fully evicting those bits.
func Clear(subs uint64, m uint32) uint64 {
	return Pack(Live(subs)&^m, Bad(subs)&^m)
}

// SetLive ORs m into the live half of subs, leaving bad untouched.
func SetLive(subs uint64, m uint32) uint64 {
	return Pack(Live(subs)|m, Bad(subs))
}

// ClearLive removes m from the live half only.
func ClearLive(subs uint64, m uint32) uint64 {
	return Pack(Live(subs)&^m, Bad(subs))
}
