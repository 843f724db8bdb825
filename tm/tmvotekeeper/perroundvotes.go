package tmvotekeeper

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/gordian-engine/tmcore/tm/tmconsensus"
)

// voteTally is the per-round, per-vote-type tally: per-value voting
// power, Nil power, and the distinct-validator "any" union used for
// PolkaAny/PrecommitAny.
type voteTally struct {
	byValidator map[tmconsensus.Address]tmconsensus.NilOrVal[tmconsensus.ValueID]

	powerByValue map[tmconsensus.ValueID]uint64
	nilPower     uint64

	anySeen  *bitset.BitSet
	anyPower uint64
}

func newVoteTally(nValidators int) voteTally {
	return voteTally{
		byValidator:  make(map[tmconsensus.Address]tmconsensus.NilOrVal[tmconsensus.ValueID]),
		powerByValue: make(map[tmconsensus.ValueID]uint64),
		anySeen:      bitset.New(uint(nValidators)),
	}
}

// PerRoundVotes is the vote tally for a single round, covering both
// Prevotes and Precommits plus the cross-type "round seen" union used for
// the skip-round threshold.
type PerRoundVotes struct {
	round tmconsensus.Round

	prevote   voteTally
	precommit voteTally

	// roundSeen is the union, across both vote types, of validators who
	// have cast any vote at this round -- used for SkipRound(r).
	roundSeen      *bitset.BitSet
	roundSeenPower uint64

	emitted map[ThresholdEvent]struct{}
}

func newPerRoundVotes(round tmconsensus.Round, nValidators int) *PerRoundVotes {
	return &PerRoundVotes{
		round:     round,
		prevote:   newVoteTally(nValidators),
		precommit: newVoteTally(nValidators),

		roundSeen: bitset.New(uint(nValidators)),

		emitted: make(map[ThresholdEvent]struct{}),
	}
}

func (pr *PerRoundVotes) tallyFor(t tmconsensus.VoteType) *voteTally {
	if t == tmconsensus.VoteTypePrevote {
		return &pr.prevote
	}
	return &pr.precommit
}

// PrevotePowerFor returns the voting power currently tallied for prevotes
// for id. Nil prevotes are not included; use PrevoteNilPower for those.
func (pr *PerRoundVotes) PrevotePowerFor(id tmconsensus.ValueID) uint64 {
	return pr.prevote.powerByValue[id]
}

// PrecommitPowerFor returns the voting power currently tallied for value.
func (pr *PerRoundVotes) PrecommitPowerFor(id tmconsensus.ValueID) uint64 {
	return pr.precommit.powerByValue[id]
}

// PrevoteNilPower returns the voting power tallied for Nil prevotes.
func (pr *PerRoundVotes) PrevoteNilPower() uint64 {
	return pr.prevote.nilPower
}

// PrecommitNilPower returns the voting power tallied for Nil precommits.
func (pr *PerRoundVotes) PrecommitNilPower() uint64 {
	return pr.precommit.nilPower
}

// PrevoteAnyPower returns the distinct-validator union power of every
// prevote cast at this round, regardless of value.
func (pr *PerRoundVotes) PrevoteAnyPower() uint64 {
	return pr.prevote.anyPower
}

// PrecommitAnyPower returns the distinct-validator union power of every
// precommit cast at this round, regardless of value.
func (pr *PerRoundVotes) PrecommitAnyPower() uint64 {
	return pr.precommit.anyPower
}

// HasEmitted reports whether ev has already been emitted at this round,
// letting the driver re-check a threshold against a proposal that
// arrives after the threshold already fired (see tm/tmdriver's
// liftProposal).
func (pr *PerRoundVotes) HasEmitted(ev ThresholdEvent) bool {
	_, ok := pr.emitted[ev]
	return ok
}
