// Package tmhost is a reference host implementing the environment
// contract of tm/tmdriver: ed25519 signing and verification, an HTTP
// inspector, and persistence through tm/tmstore. Nothing here is part
// of the pure core; it exists to exercise tm/tmdriver and
// tm/tmconsensus end to end (see SPEC_FULL.md §E). Block-part gossip
// and an aggregate signature scheme are explicit spec Non-goals, so
// this host's crypto surface stays to what sign_vote/sign_proposal/
// verify_vote/verify_proposal actually need.
package tmhost

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gordian-engine/tmcore/gcrypto"
	"github.com/gordian-engine/tmcore/tm/tmconsensus"
	"github.com/gordian-engine/tmcore/tm/tmdriver"
	"github.com/gordian-engine/tmcore/tm/tmproposer"
	"github.com/gordian-engine/tmcore/tm/tmstore"
)

// Host is a reference implementation of tmdriver.Environment: it signs
// and verifies with ed25519 (gcrypto), selects proposers via a
// tmproposer.Selector, and persists actions and decisions through
// tm/tmstore. It has no transport of its own; cmd/tmcorectl drives it
// directly and gossip is simulated by handing Outputs from one Driver to
// another's Process as Inputs.
type Host struct {
	vs       tmconsensus.ValidatorSet
	address  tmconsensus.Address
	signer   gcrypto.Ed25519Signer
	pubKeys  map[tmconsensus.Address]gcrypto.PubKey
	selector tmproposer.Selector

	actions   tmstore.ActionStore
	decisions tmstore.DecisionStore

	log *slog.Logger
}

// New returns a Host signing as signer, verifying against pubKeys (every
// validator's public key, including its own), selecting proposers via
// selector, and persisting through actions/decisions.
func New(
	vs tmconsensus.ValidatorSet,
	signer gcrypto.Ed25519Signer,
	pubKeys map[tmconsensus.Address]gcrypto.PubKey,
	selector tmproposer.Selector,
	actions tmstore.ActionStore,
	decisions tmstore.DecisionStore,
	log *slog.Logger,
) *Host {
	if log == nil {
		log = slog.Default()
	}
	return &Host{
		vs:        vs,
		address:   tmconsensus.Address(signer.PubKey().Address()),
		signer:    signer,
		pubKeys:   pubKeys,
		selector:  selector,
		actions:   actions,
		decisions: decisions,
		log:       log,
	}
}

// Address returns the validator address this Host signs as.
func (h *Host) Address() tmconsensus.Address { return h.address }

// SelectProposer satisfies tmdriver.Environment.
func (h *Host) SelectProposer(
	height tmconsensus.Height, round tmconsensus.Round, vs tmconsensus.ValidatorSet,
) tmconsensus.Address {
	return h.selector.SelectProposer(height, round, vs)
}

// GetValue satisfies tmdriver.Environment. This reference host has no
// mempool of its own: building a value is the caller's job (see
// cmd/tmcorectl, which calls Driver.Process with an InputProposeValue
// directly once it has a value in hand). GetValue only logs the
// request.
func (h *Host) GetValue(height tmconsensus.Height, round tmconsensus.Round) error {
	h.log.Debug("tmhost: value requested", "height", height, "round", round)
	return nil
}

// SignVote satisfies tmdriver.Environment.
func (h *Host) SignVote(vote tmconsensus.Vote) (tmdriver.SignedVote, error) {
	sig, err := h.signer.Sign(context.Background(), voteSignBytes(vote))
	if err != nil {
		return tmdriver.SignedVote{}, fmt.Errorf("tmhost: signing vote: %w", err)
	}
	if err := h.actions.SaveVoteAction(context.Background(), vote.Height, tmstore.VoteAction{Vote: vote, Signature: sig}); err != nil {
		return tmdriver.SignedVote{}, fmt.Errorf("tmhost: persisting vote action: %w", err)
	}
	return tmdriver.SignedVote{Vote: vote, Signature: sig}, nil
}

// SignProposal satisfies tmdriver.Environment.
func (h *Host) SignProposal(p tmconsensus.Proposal) (tmdriver.SignedProposal, error) {
	sig, err := h.signer.Sign(context.Background(), proposalSignBytes(p))
	if err != nil {
		return tmdriver.SignedProposal{}, fmt.Errorf("tmhost: signing proposal: %w", err)
	}
	if err := h.actions.SaveProposalAction(context.Background(), p.Height, tmstore.ProposalAction{Proposal: p, Signature: sig}); err != nil {
		return tmdriver.SignedProposal{}, fmt.Errorf("tmhost: persisting proposal action: %w", err)
	}
	return tmdriver.SignedProposal{Proposal: p, Signature: sig}, nil
}

// VerifyVote satisfies tmdriver.Environment.
func (h *Host) VerifyVote(sv tmdriver.SignedVote) (tmconsensus.Vote, bool) {
	pk, ok := h.pubKeys[sv.Vote.ValidatorAddr]
	if !ok {
		return tmconsensus.Vote{}, false
	}
	if !pk.Verify(voteSignBytes(sv.Vote), sv.Signature) {
		return tmconsensus.Vote{}, false
	}
	return sv.Vote, true
}

// VerifyProposal satisfies tmdriver.Environment.
func (h *Host) VerifyProposal(sp tmdriver.SignedProposal) (tmconsensus.Proposal, bool) {
	pk, ok := h.pubKeys[sp.Proposal.ValidatorAddr]
	if !ok {
		return tmconsensus.Proposal{}, false
	}
	if !pk.Verify(proposalSignBytes(sp.Proposal), sp.Signature) {
		return tmconsensus.Proposal{}, false
	}
	return sp.Proposal, true
}

// SaveDecision persists d through the Host's DecisionStore.
func (h *Host) SaveDecision(height tmconsensus.Height, d tmstore.Decision) error {
	return h.decisions.SaveDecision(context.Background(), height, d)
}

// voteSignBytes and proposalSignBytes are the host's wire encoding for
// signing purposes only; spec §6 leaves wire formats entirely to the
// host codec.
func voteSignBytes(v tmconsensus.Vote) []byte {
	id, _ := v.Value.Value()
	return []byte(fmt.Sprintf("vote|%d|%d|%d|%s|%s", v.Height, v.Round, v.Type, id, v.ValidatorAddr))
}

func proposalSignBytes(p tmconsensus.Proposal) []byte {
	return []byte(fmt.Sprintf("proposal|%d|%d|%s|%d|%s", p.Height, p.Round, p.Value.ID, p.PolRound, p.ValidatorAddr))
}
