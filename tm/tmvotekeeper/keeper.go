package tmvotekeeper

import (
	"sort"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
)

// Keeper tallies votes for a single height across every round, per §4.2.
// It is not safe for concurrent use; the driver owns it exclusively, same
// as every other core entry point (see spec §5).
type Keeper struct {
	height tmconsensus.Height
	vs     tmconsensus.ValidatorSet

	rounds map[tmconsensus.Round]*PerRoundVotes

	evidence map[tmconsensus.Address][]Equivocation
}

// NewKeeper returns a Keeper for height, tallying against vs.
func NewKeeper(height tmconsensus.Height, vs tmconsensus.ValidatorSet) *Keeper {
	return &Keeper{
		height:   height,
		vs:       vs,
		rounds:   make(map[tmconsensus.Round]*PerRoundVotes),
		evidence: make(map[tmconsensus.Address][]Equivocation),
	}
}

// Height returns the height this Keeper tallies votes for.
func (k *Keeper) Height() tmconsensus.Height {
	return k.height
}

// PerRound returns the tally for round r, or nil if no vote has been
// applied at that round yet.
func (k *Keeper) PerRound(r tmconsensus.Round) *PerRoundVotes {
	return k.rounds[r]
}

// Evidence returns every recorded equivocation, sorted by validator
// address and then by detection order, so callers get a deterministic
// slice regardless of Go's randomized map iteration (see SPEC_FULL.md §D).
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

// ApplyVote records vote, possibly emitting newly-satisfied threshold
// events. Equivocating votes never alter tallies (I5); they only add
// evidence and return no events. ApplyVote returns an error only if vote
// names a validator absent from the Keeper's ValidatorSet -- in the
// driver this can't happen because unknown validators are dropped during
// admissibility (see spec §4.6 step 1), but the Keeper still guards its
// own entry point.
func (k *Keeper) ApplyVote(vote tmconsensus.Vote, power uint64) ([]ThresholdEvent, error) {
	if _, ok := k.vs.ByAddress(vote.ValidatorAddr); !ok {
		return nil, tmconsensus.ErrUnknownValidator
	}

	pr, ok := k.rounds[vote.Round]
	if !ok {
		pr = newPerRoundVotes(vote.Round, k.vs.Len())
		k.rounds[vote.Round] = pr
	}

	tally := pr.tallyFor(vote.Type)

	if existing, voted := tally.byValidator[vote.ValidatorAddr]; voted {
		if existing.Equal(vote.Value) {
			// Duplicate delivery of the same vote; idempotent no-op.
			return nil, nil
		}

		existingVote := tmconsensus.Vote{
			Height:        vote.Height,
			Round:         vote.Round,
			Type:          vote.Type,
			Value:         existing,
			ValidatorAddr: vote.ValidatorAddr,
		}
		k.evidence[vote.ValidatorAddr] = append(k.evidence[vote.ValidatorAddr], Equivocation{
			Existing:    existingVote,
			Conflicting: vote,
		})
		return nil, nil
	}

	tally.byValidator[vote.ValidatorAddr] = vote.Value

	idx := k.vs.IndexOf(vote.ValidatorAddr)

	if id, hasVal := vote.Value.Value(); hasVal {
		tally.powerByValue[id] += power
	} else {
		tally.nilPower += power
	}

	if !tally.anySeen.Test(uint(idx)) {
		tally.anySeen.Set(uint(idx))
		tally.anyPower += power
	}

	if !pr.roundSeen.Test(uint(idx)) {
		pr.roundSeen.Set(uint(idx))
		pr.roundSeenPower += power
	}

	return k.evaluateThresholds(pr, tally, vote), nil
}

// evaluateThresholds checks, in the deterministic tie-break order from
// §4.2, every threshold the just-applied vote could have newly satisfied,
// and marks each as emitted so I4 (at-most-once) holds for the lifetime
// of the Keeper.
func (k *Keeper) evaluateThresholds(
	pr *PerRoundVotes, tally *voteTally, vote tmconsensus.Vote,
) []ThresholdEvent {
	f := k.vs.FaultThreshold()

	var events []ThresholdEvent

	tryEmit := func(ev ThresholdEvent) {
		if _, already := pr.emitted[ev]; already {
			return
		}
		pr.emitted[ev] = struct{}{}
		events = append(events, ev)
	}

	id, hasVal := vote.Value.Value()

	if vote.Type == tmconsensus.VoteTypePrevote {
		if hasVal && tally.powerByValue[id] > 2*f {
			tryEmit(ThresholdEvent{Kind: ThresholdPolkaValue, Round: vote.Round, Value: id})
		}
		if tally.nilPower > 2*f {
			tryEmit(ThresholdEvent{Kind: ThresholdPolkaNil, Round: vote.Round})
		}
		if tally.anyPower > 2*f {
			tryEmit(ThresholdEvent{Kind: ThresholdPolkaAny, Round: vote.Round})
		}
	} else {
		if hasVal && tally.powerByValue[id] > 2*f {
			tryEmit(ThresholdEvent{Kind: ThresholdPrecommitValue, Round: vote.Round, Value: id})
		}
		if tally.anyPower > 2*f {
			tryEmit(ThresholdEvent{Kind: ThresholdPrecommitAny, Round: vote.Round})
		}
	}

	if pr.roundSeenPower > f {
		tryEmit(ThresholdEvent{Kind: ThresholdSkipRound, Round: vote.Round})
	}

	return events
}
