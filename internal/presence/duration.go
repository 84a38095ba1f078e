package presence

import (
	"time"

	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/models"
	"github.com/apranav1711-byte/Staff-Monitoring-System/internal/utils"
)

// DurationAccumulator tracks how long the pad has spent with and without a
// phone on it, using the wall clock between polls. The first tick only sets
// the anchor.
type DurationAccumulator struct {
	on     time.Duration
	off    time.Duration
	anchor time.Time
	set    bool
}

// Tick credits the time since the previous tick to the current pad state
// and moves the anchor to now.
func (a *DurationAccumulator) Tick(now time.Time, phoneOnPad bool) {
	if !a.set {
		a.Anchor(now)
	}

	elapsed := now.Sub(a.anchor)
	if elapsed < 0 {
		// wall clock stepped backwards
		elapsed = 0
	}
	if phoneOnPad {
		a.on += elapsed
	} else {
		a.off += elapsed
	}
	a.anchor = now
}

func (a *DurationAccumulator) Anchor(now time.Time) {
	a.anchor = now
	a.set = true
}

// Reset zeroes both counters and drops the anchor.
func (a *DurationAccumulator) Reset() {
	*a = DurationAccumulator{}
}

func (a *DurationAccumulator) Counters() models.PadDurations {
	return models.PadDurations{
		OnSeconds:  utils.RoundSeconds(a.on),
		OffSeconds: utils.RoundSeconds(a.off),
	}
}
