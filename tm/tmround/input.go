// Package tmround implements the per-round consensus state machine: the
// pure function Apply(state, info, input) -> Transition described in
// spec §4.5. Nothing in this package performs I/O; it only computes the
// next RoundState and, optionally, one Output.
package tmround

import "github.com/gordian-engine/tmcore/tm/tmconsensus"

// Input is the sum type of every input the state machine accepts. The
// concrete types below are the fifteen inputs enumerated in spec §4.5;
// isInput is unexported so Input can only be implemented within this
// package.
type Input interface {
	isInput()
}

// InputNewRound starts round Round, consulting info.Proposer to decide
// whether this validator is the proposer.
type InputNewRound struct {
	Round tmconsensus.Round
}

// InputProposeValue is delivered to a proposer once the host's GetValue
// request resolves.
type InputProposeValue struct {
	Value tmconsensus.Value
}

// InputProposal is a first-time proposal (PolRound is Nil).
type InputProposal struct {
	Proposal tmconsensus.Proposal
}

// InputProposalAndPolkaPrevious is a proposal whose PolRound names an
// earlier round in which a polka for Proposal.Value was observed.
type InputProposalAndPolkaPrevious struct {
	Proposal tmconsensus.Proposal
}

// InputInvalidProposalAndPolkaPrevious is the Invalid-stamped counterpart
// of InputProposalAndPolkaPrevious.
type InputInvalidProposalAndPolkaPrevious struct {
	Proposal tmconsensus.Proposal
}

// InputInvalidProposal is a first-time proposal the host stamped Invalid.
type InputInvalidProposal struct{}

// InputTimeoutPropose is delivered when the Propose-step timer elapses.
type InputTimeoutPropose struct{}

// InputPolkaAny reports that PolkaAny(round) has newly fired.
type InputPolkaAny struct{}

// InputPolkaNil reports that PolkaNil(round) has newly fired.
type InputPolkaNil struct{}

// InputProposalAndPolkaCurrent is a proposal matching a PolkaValue that
// fired at the current round.
type InputProposalAndPolkaCurrent struct {
	Proposal tmconsensus.Proposal
}

// InputTimeoutPrevote is delivered when the Prevote-step timer elapses.
type InputTimeoutPrevote struct{}

// InputPrecommitAny reports that PrecommitAny(round) has newly fired.
type InputPrecommitAny struct{}

// InputProposalAndPrecommitValue is a proposal matching a PrecommitValue
// that fired at Proposal.Round; it triggers a decision from any step.
type InputProposalAndPrecommitValue struct {
	Proposal tmconsensus.Proposal
}

// InputTimeoutPrecommit is delivered when the Precommit-step timer
// elapses.
type InputTimeoutPrecommit struct{}

// InputSkipRound reports that SkipRound(Round) has newly fired.
type InputSkipRound struct {
	Round tmconsensus.Round
}

func (InputNewRound) isInput()                           {}
func (InputProposeValue) isInput()                        {}
func (InputProposal) isInput()                            {}
func (InputProposalAndPolkaPrevious) isInput()             {}
func (InputInvalidProposalAndPolkaPrevious) isInput()      {}
func (InputInvalidProposal) isInput()                      {}
func (InputTimeoutPropose) isInput()                       {}
func (InputPolkaAny) isInput()                             {}
func (InputPolkaNil) isInput()                             {}
func (InputProposalAndPolkaCurrent) isInput()               {}
func (InputTimeoutPrevote) isInput()                        {}
func (InputPrecommitAny) isInput()                          {}
func (InputProposalAndPrecommitValue) isInput()              {}
func (InputTimeoutPrecommit) isInput()                       {}
func (InputSkipRound) isInput()                              {}
