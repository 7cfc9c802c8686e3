package lgmp

import "crypto/rand"

// SessionSource produces the 32-bit session identifier rolled on every
// host Init. It is injected so tests can make session-id rerolls
// deterministic.
type SessionSource interface {
	NextSessionID() uint32
}

// CryptoRandSession is the production SessionSource, backed by
// crypto/rand.
type CryptoRandSession struct{}

// NextSessionID returns a fresh random 32-bit value.
func (CryptoRandSession) NextSessionID() uint32 {
	var buf [4]byte
	_, _ = rand.Read(buf[:])
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
}
