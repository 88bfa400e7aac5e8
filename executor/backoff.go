package executor

import (
	"crypto/rand"
	"math"
	"math/big"
	"time"
)

// requeueDelayRange is the jitter window for RequeueDelayed, spec §4.2.2.
const (
	requeueDelayMinMs = 500
	requeueDelayMaxMs = 1000
)

// requeueDelay returns now + a uniform random delay in
// [requeueDelayMinMs, requeueDelayMaxMs).
func requeueDelay(nowMs int64) int64 {
	span := int64(requeueDelayMaxMs - requeueDelayMinMs)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	jitter := requeueDelayMinMs
	if err == nil {
		jitter += int(n.Int64())
	}
	return nowMs + int64(jitter)
}

// backoffDelayMs computes tries^2.5 seconds, truncated to whole
// milliseconds: consecutive attempts land at approximately 1000, 5656,
// 15588 ms for tries = 1, 2, 3 (spec §8 back-off schedule law).
func backoffDelayMs(tries int) int64 {
	if tries < 1 {
		tries = 1
	}
	return int64(math.Pow(float64(tries), 2.5) * 1000)
}

// nowMs is the executor's wall-clock source, in epoch
// milliseconds, isolated here so it can be swapped in tests.
var nowMs = func() int64 { return time.Now().UnixMilli() }
