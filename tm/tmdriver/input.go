// Package tmdriver implements the driver (spec §4.6): it sequences
// external inputs into round state machine inputs, owns the vote and
// proposal keepers, and maintains the cross-round locked/valid/decision
// state that survives a round change.
package tmdriver

import "github.com/gordian-engine/tmcore/tm/tmconsensus"

// Input is the sum type of every input Driver.Process accepts.
type Input interface {
	isInput()
}

// InputNewRound starts the driver at (Height, Round). Per spec §4.6,
// callers only deliver this directly at height start; every later round
// change is driven internally by a round-skip.
type InputNewRound struct {
	Height tmconsensus.Height
	Round  tmconsensus.Round
}

// InputProposeValue delivers the value the host's GetValue request
// produced for (Height, Round). If Round no longer matches the driver's
// current round, it is dropped (the host may have abandoned a pending
// GetValue when the round advanced -- see spec §5 "Cancellation").
type InputProposeValue struct {
	Height tmconsensus.Height
	Round  tmconsensus.Round
	Value  tmconsensus.Value
}

// InputProposal delivers a proposal the host has verified (or rejected)
// for authenticity and validity.
type InputProposal struct {
	Proposal tmconsensus.Proposal
	Validity tmconsensus.Validity
}

// InputVote delivers a single validator's vote.
type InputVote struct {
	Vote tmconsensus.Vote
}

// InputTimeoutElapsed reports that a timer the driver asked the host to
// schedule via OutputScheduleTimeout has elapsed. Round and Step
// identify which scheduled timer this is, so the driver can discard a
// stale fire for a round it has since left (spec §5).
type InputTimeoutElapsed struct {
	Round tmconsensus.Round
	Step  tmconsensus.Step
}

// InputSkipRound is the synthesized "f+1 voting power observed at a
// future round" input named in spec §4.6. It is normally produced
// internally by the vote keeper's SkipRound threshold, but it is exported
// so tests can drive it directly.
type InputSkipRound struct {
	Round tmconsensus.Round
}

func (InputNewRound) isInput()        {}
func (InputProposeValue) isInput()    {}
func (InputProposal) isInput()        {}
func (InputVote) isInput()            {}
func (InputTimeoutElapsed) isInput()  {}
func (InputSkipRound) isInput()       {}
