package stats

import (
	"context"

	"github.com/Coder-ak/svitlo-e-stats/internal/logger"
)

// PrefetchAdjacent speculatively loads the windows immediately preceding and
// following the given one, each shifted by exactly one rangeSec, so that a
// subsequent pan renders from cache. Windows outside the server's declared
// available range are skipped. Failures are swallowed; a later explicit
// navigation retries through the normal fetch path, and in-flight coalescing
// keeps a prefetch from duplicating a fetch the user already triggered.
func (c *WindowCache) PrefetchAdjacent(ctx context.Context, endTimeMs, rangeSec, binSec int64, last *Window) {
	avail := c.Available()
	if last != nil {
		avail = avail.merge(last.Meta)
	}

	spanMs := rangeSec * 1000
	prevEnd := endTimeMs - spanMs
	nextEnd := endTimeMs + spanMs

	if avail.Min == 0 || prevEnd-spanMs >= avail.Min {
		if _, err := c.Fetch(ctx, prevEnd, rangeSec, binSec); err != nil {
			logger.Debug("prefetch of previous window failed", "error", err)
		}
	}

	if avail.Max == 0 || nextEnd-spanMs <= avail.Max {
		if _, err := c.Fetch(ctx, nextEnd, rangeSec, binSec); err != nil {
			logger.Debug("prefetch of next window failed", "error", err)
		}
	}
}
