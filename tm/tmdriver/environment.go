package tmdriver

import "github.com/gordian-engine/tmcore/tm/tmconsensus"

// Environment documents the capability contract the host must provide
// per spec §4.7 and §6. Driver.Process never calls these methods
// directly -- the core stays pure and synchronous, round-tripping
// through Output/Input instead -- but any complete host (see
// tm/tmhost) implements this interface, and a demo event loop (see
// cmd/tmcorectl) is written against it to turn Driver outputs into the
// inputs that drive the next Process call.
type Environment interface {
	// GetValue begins building a value for (height, round). It returns
	// immediately; the result arrives later as an InputProposeValue fed
	// back into the driver, or never, if the timeout elapses first.
	GetValue(height tmconsensus.Height, round tmconsensus.Round) error

	// SelectProposer is pure and deterministic; see tm/tmproposer.
	SelectProposer(height tmconsensus.Height, round tmconsensus.Round, vs tmconsensus.ValidatorSet) tmconsensus.Address

	// SignVote and SignProposal attach a signature before gossip. The
	// driver emits unsigned OutputVote/OutputPropose; the host signs
	// before sending them over the wire.
	SignVote(vote tmconsensus.Vote) (SignedVote, error)
	SignProposal(proposal tmconsensus.Proposal) (SignedProposal, error)

	// VerifyVote and VerifyProposal authenticate an incoming message
	// before it is fed into the driver as an Input. The core trusts
	// vote and proposal authorship (spec §1 Non-goals); authentication
	// happens entirely on the host side of this boundary.
	VerifyVote(sv SignedVote) (tmconsensus.Vote, bool)
	VerifyProposal(sp SignedProposal) (tmconsensus.Proposal, bool)
}

// SignedVote pairs a Vote with an opaque signature. The core never
// inspects the signature; only the host's VerifyVote does.
type SignedVote struct {
	Vote      tmconsensus.Vote
	Signature []byte
}

// SignedProposal pairs a Proposal with an opaque signature.
type SignedProposal struct {
	Proposal  tmconsensus.Proposal
	Signature []byte
}
