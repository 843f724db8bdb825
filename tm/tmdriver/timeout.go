package tmdriver

import (
	"time"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
)

// TimeoutParams supplies the duration the driver stamps onto
// OutputScheduleTimeout and OutputGetValue for each step. Per spec §5,
// "timers are data": the driver never starts a clock itself, it only
// tells the host how long to wait before delivering InputTimeoutElapsed.
type TimeoutParams struct {
	Propose   time.Duration
	Prevote   time.Duration
	Precommit time.Duration
}

// For returns the configured duration for step.
func (p TimeoutParams) For(step tmconsensus.Step) time.Duration {
	switch step {
	case tmconsensus.StepPropose:
		return p.Propose
	case tmconsensus.StepPrevote:
		return p.Prevote
	case tmconsensus.StepPrecommit:
		return p.Precommit
	default:
		return 0
	}
}
