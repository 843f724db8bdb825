package tmdriver

import (
	"time"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
)

// Output is the sum type of every output Driver.Process can produce, per
// the driver output contract in spec §6.
type Output interface {
	isOutput()
}

// OutputNewRound is advisory: the driver has already updated its round
// by the time this is returned. Hosts that maintain a WAL persist it.
type OutputNewRound struct {
	Height tmconsensus.Height
	Round  tmconsensus.Round
}

// OutputPropose is this validator's own unsigned proposal. The host
// signs it, gossips it, and feeds it back locally as an InputProposal.
type OutputPropose struct {
	Proposal tmconsensus.Proposal
}

// OutputVote is this validator's own unsigned vote. The host signs it,
// gossips it, and feeds it back locally as an InputVote.
type OutputVote struct {
	Vote tmconsensus.Vote
}

// OutputScheduleTimeout asks the host to arm a timer for Step at Round.
// On elapse the host delivers InputTimeoutElapsed{Round, Step}.
// Cancelling a stale timer is unnecessary: the driver's round guards
// discard late fires on their own.
type OutputScheduleTimeout struct {
	Round    tmconsensus.Round
	Step     tmconsensus.Step
	Duration time.Duration
}

// OutputGetValue asks the host to begin building a value for (Height,
// Round). The host returns at most one InputProposeValue for this
// (Height, Round); if none arrives before Timeout elapses, the driver
// proceeds with a Nil prevote once TimeoutPropose fires.
type OutputGetValue struct {
	Height  tmconsensus.Height
	Round   tmconsensus.Round
	Timeout time.Duration
}

// OutputDecide reports that Value has been decided at Round. The host
// must durably record the decision before starting the next height.
type OutputDecide struct {
	Round tmconsensus.Round
	Value tmconsensus.Value
}

func (OutputNewRound) isOutput()        {}
func (OutputPropose) isOutput()         {}
func (OutputVote) isOutput()            {}
func (OutputScheduleTimeout) isOutput() {}
func (OutputGetValue) isOutput()        {}
func (OutputDecide) isOutput()          {}
