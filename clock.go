package lgmp

import "time"

// Clock is the monotonic millisecond clock the host consumes. Zero is
// reserved as "unusable clock" and causes Init to fail with
// CodeClockFailure.
type Clock interface {
	NowMillis() uint64
}

// SystemClock is the production Clock, backed by time.Now().
type SystemClock struct{}

// processEpoch anchors SystemClock to the Unix time at process start;
// time.Since measures from it with Go's monotonic clock reading.
var processEpoch = time.Now()

// NowMillis returns the Unix time in milliseconds at process start plus
// the monotonic time elapsed since, so it does not go backwards when the
// wall clock is adjusted; never returns 0 in practice.
func (SystemClock) NowMillis() uint64 {
	return uint64(processEpoch.UnixMilli() + time.Since(processEpoch).Milliseconds())
}
