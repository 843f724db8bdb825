// Package tmproposer implements the proposer-selection strategies named
// in spec §4.4: a pure, deterministic mapping from (height, round,
// validator set) to the address expected to propose.
package tmproposer

import "github.com/gordian-engine/tmcore/tm/tmconsensus"

// Selector selects the proposer for a given height and round. It must be
// a pure function of its inputs: the driver consults it every time a new
// round begins, and replaying the same inputs must select the same
// proposer.
type Selector interface {
	SelectProposer(
		h tmconsensus.Height, r tmconsensus.Round, vs tmconsensus.ValidatorSet,
	) tmconsensus.Address
}

// Fixed always selects the first validator in set iteration order,
// regardless of height or round.
type Fixed struct{}

// SelectProposer satisfies Selector.
func (Fixed) SelectProposer(
	_ tmconsensus.Height, _ tmconsensus.Round, vs tmconsensus.ValidatorSet,
) tmconsensus.Address {
	return vs.At(0).Address
}

// RoundRobin selects validator index (height + round) mod |validator set|,
// in set iteration order, per spec §4.4 and property P8.
type RoundRobin struct{}

// SelectProposer satisfies Selector.
func (RoundRobin) SelectProposer(
	h tmconsensus.Height, r tmconsensus.Round, vs tmconsensus.ValidatorSet,
) tmconsensus.Address {
	n := vs.Len()
	idx := (uint64(h) + uint64(r)) % uint64(n)
	return vs.At(int(idx)).Address
}
