package driver

import (
	"context"
	"time"

	"github.com/sealablab/BPD-001/pkg/model"
)

// DefaultPollInterval is the status poll cadence used by WaitForIdle
// when none is given.
const DefaultPollInterval = 500 * time.Microsecond

// StatusQuerier is the narrow surface WaitForIdle needs. Driver
// satisfies it; so does anything else that can produce status
// snapshots.
type StatusQuerier interface {
	Status() (model.ProbeStatus, error)
}

// WaitForIdle polls status until the hardware has returned to IDLE
// (not armed, not busy, no fault), the probe faults, or the context is
// cancelled.
//
// The autonomous PULSE_ACTIVE to COOLDOWN to IDLE transitions run on
// the hardware clock; this helper is how callers wait for them without
// assuming they are synchronous with Trigger returning. Cancellation
// only ever stops the caller's wait - the hardware's own timing
// continues and is never left mid-transition by a cancelled wait.
func WaitForIdle(ctx context.Context, d StatusQuerier, pollInterval time.Duration) error {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		status, err := d.Status()
		if err != nil {
			return err
		}
		if status.Fault {
			return ErrFaulted
		}
		if status.Ready && !status.Armed && !status.Busy {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
