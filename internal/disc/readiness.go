package disc

import (
	"context"
	"fmt"
	"time"

	"platter/internal/services"
)

// Probe is a non-destructive check for whether a medium can currently be
// opened for reading.
type Probe func(ctx context.Context) bool

// defaultPollInterval is the sleep between readiness probes.
const defaultPollInterval = 1 * time.Second

// AwaitReady runs probe until it succeeds or timeout elapses. The first
// probe always happens before any elapsed-time check, so a zero timeout
// still gets exactly one attempt. The returned timeout failure carries
// services.ErrTimeout so callers can distinguish it from device errors.
func AwaitReady(ctx context.Context, probe Probe, timeout, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	start := time.Now()
	for {
		if probe(ctx) {
			return nil
		}
		if time.Since(start) >= timeout {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return services.Wrap(services.ErrTimeout, "device", "wait for ready",
		fmt.Sprintf("medium not readable within %s", timeout), nil)
}
