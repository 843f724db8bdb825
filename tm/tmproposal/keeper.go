// Package tmproposal stores, per round, the proposal a height's proposer
// has submitted, and records evidence when a proposer equivocates.
package tmproposal

import (
	"sort"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
)

// Equivocation records a proposer submitting two distinct-value proposals
// at the same (height, round).
type Equivocation struct {
	Existing    tmconsensus.Proposal
	Conflicting tmconsensus.Proposal
}

// Keeper stores the first proposal recorded for each round of a single
// height, per §4.3. Like tmvotekeeper.Keeper, it is owned exclusively by
// the driver and is not safe for concurrent use.
type Keeper struct {
	height tmconsensus.Height

	byRound map[tmconsensus.Round]tmconsensus.Proposal

	evidence map[tmconsensus.Address][]Equivocation
}

// NewKeeper returns an empty Keeper for height.
func NewKeeper(height tmconsensus.Height) *Keeper {
	return &Keeper{
		height:   height,
		byRound:  make(map[tmconsensus.Round]tmconsensus.Proposal),
		evidence: make(map[tmconsensus.Address][]Equivocation),
	}
}

// Height returns the height this Keeper stores proposals for.
func (k *Keeper) Height() tmconsensus.Height {
	return k.height
}

// ApplyProposal stores p under p.Round. If a different proposal (distinct
// Value) is already recorded for that round from the same proposer, the
// existing one is kept and the pair is recorded as evidence; ApplyProposal
// never replaces a stored proposal.
func (k *Keeper) ApplyProposal(p tmconsensus.Proposal) {
	existing, ok := k.byRound[p.Round]
	if !ok {
		k.byRound[p.Round] = p
		return
	}

	if existing.ValidatorAddr != p.ValidatorAddr {
		// A proposal from a different validator is not an equivocation;
		// the first stored proposal is kept and no evidence is recorded.
		return
	}

	if existing.Value.Equal(p.Value) {
		// Duplicate delivery of the same proposal; idempotent no-op.
		return
	}

	k.evidence[p.ValidatorAddr] = append(k.evidence[p.ValidatorAddr], Equivocation{
		Existing:    existing,
		Conflicting: p,
	})
}

// Get returns the first proposal recorded for round r, if any.
func (k *Keeper) Get(r tmconsensus.Round) (tmconsensus.Proposal, bool) {
	p, ok := k.byRound[r]
	return p, ok
}

// Evidence returns every recorded proposal equivocation, sorted by
// proposer address and then by detection order (see SPEC_FULL.md §D).
func (k *Keeper) Evidence() []Equivocation {
	addrs := make([]tmconsensus.Address, 0, len(k.evidence))
	for a := range k.evidence {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })

	out := make([]Equivocation, 0, len(k.evidence))
	for _, a := range addrs {
		out = append(out, k.evidence[a]...)
	}
	return out
}
