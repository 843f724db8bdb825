package tmround

import "github.com/gordian-engine/tmcore/tm/tmconsensus"

// Output is the sum type of every output the state machine can emit. At
// most one Output is produced per Apply call (a Transition with a nil
// Output means the input was accepted but produced no side effect, or
// was an invalid transition and the state is unchanged -- see
// Transition's doc comment for how to tell those apart).
type Output interface {
	isOutput()
}

// OutputNewRound reports that the state machine has moved to Round
// because of a round_skip (TimeoutPrecommit or SkipRound). Starting a
// round with InputNewRound does not emit it.
type OutputNewRound struct {
	Round tmconsensus.Round
}

// OutputProposal is this validator's own proposal, to be signed and
// gossiped by the host.
type OutputProposal struct {
	Height   tmconsensus.Height
	Round    tmconsensus.Round
	Value    tmconsensus.Value
	PolRound tmconsensus.Round
}

// OutputVote is this validator's own vote, to be signed and gossiped by
// the host.
type OutputVote struct {
	Type          tmconsensus.VoteType
	Height        tmconsensus.Height
	Round         tmconsensus.Round
	Value         tmconsensus.NilOrVal[tmconsensus.ValueID]
	ValidatorAddr tmconsensus.Address
}

// OutputScheduleTimeout asks the host to arm a timer for Step at Round;
// on elapse the host delivers the matching Timeout* input.
type OutputScheduleTimeout struct {
	Round tmconsensus.Round
	Step  tmconsensus.Step
}

// OutputGetValueAndScheduleTimeout asks the host to both begin building a
// value for Round and arm the Propose-step timer.
type OutputGetValueAndScheduleTimeout struct {
	Round tmconsensus.Round
	Step  tmconsensus.Step
}

// OutputDecision is emitted exactly once per height, when the state
// machine reaches Commit.
type OutputDecision struct {
	Round tmconsensus.Round
	Value tmconsensus.Value
}

func (OutputNewRound) isOutput()                      {}
func (OutputProposal) isOutput()                       {}
func (OutputVote) isOutput()                           {}
func (OutputScheduleTimeout) isOutput()                {}
func (OutputGetValueAndScheduleTimeout) isOutput()     {}
func (OutputDecision) isOutput()                       {}
