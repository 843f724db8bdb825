// Package tmstore defines the persisted-state interfaces named in spec
// §6: an action log of the signed votes and proposals this validator
// emitted, and a decision store. Both are adapted from the teacher's
// tmstore.ActionStore/FinalizationStore to this spec's Vote/Proposal
// model; see tmstore/tmmemstore for an in-memory implementation.
package tmstore

import (
	"context"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
)

// Action is one entry in the action log: either a proposal or a vote
// this validator signed and emitted. Replay (spec §6 "Persisted state")
// works by reading these back out in order and feeding them, as Inputs,
// to a fresh driver at the stored height.
type Action interface {
	isAction()
}

// ProposalAction records a proposal this validator signed.
type ProposalAction struct {
	Proposal  tmconsensus.Proposal
	Signature []byte
}

// VoteAction records a vote this validator signed.
type VoteAction struct {
	Vote      tmconsensus.Vote
	Signature []byte
}

func (ProposalAction) isAction() {}
func (VoteAction) isAction()     {}

// ActionStore persists the actions (signed proposals and votes) this
// validator has emitted, so a crashed host can replay them into a fresh
// driver rather than risk double-signing.
type ActionStore interface {
	// SaveProposalAction appends a as the next action at height.
	SaveProposalAction(ctx context.Context, height tmconsensus.Height, a ProposalAction) error

	// SaveVoteAction appends a as the next action at height.
	SaveVoteAction(ctx context.Context, height tmconsensus.Height, a VoteAction) error

	// LoadActions returns every action recorded for height, in the order
	// they were saved.
	LoadActions(ctx context.Context, height tmconsensus.Height) ([]Action, error)
}
