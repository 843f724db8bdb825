// Package tmvotekeeper aggregates votes per round and emits threshold
// events (polka, precommit quorum, skip-round) once voting power crosses
// the relevant fraction of the validator set's total power.
package tmvotekeeper

import (
	"fmt"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
)

// ThresholdKind identifies which of the six thresholds a ThresholdEvent
// reports. The zero value is intentionally invalid.
type ThresholdKind uint8

const (
	ThresholdInvalid ThresholdKind = iota
	ThresholdPolkaValue
	ThresholdPolkaNil
	ThresholdPolkaAny
	ThresholdPrecommitValue
	ThresholdPrecommitAny
	ThresholdSkipRound
)

func (k ThresholdKind) String() string {
	switch k {
	case ThresholdPolkaValue:
		return "PolkaValue"
	case ThresholdPolkaNil:
		return "PolkaNil"
	case ThresholdPolkaAny:
		return "PolkaAny"
	case ThresholdPrecommitValue:
		return "PrecommitValue"
	case ThresholdPrecommitAny:
		return "PrecommitAny"
	case ThresholdSkipRound:
		return "SkipRound"
	default:
		return "Invalid"
	}
}

// ThresholdEvent reports that a threshold has crossed at Round. Value is
// only meaningful for the *Value kinds; it is the zero ValueID otherwise.
//
// ThresholdEvent is comparable so a Keeper can use it directly as a set
// key to enforce at-most-once emission (I4).
type ThresholdEvent struct {
	Kind  ThresholdKind
	Round tmconsensus.Round
	Value tmconsensus.ValueID
}

func (e ThresholdEvent) String() string {
	if e.Kind == ThresholdPolkaValue || e.Kind == ThresholdPrecommitValue {
		return fmt.Sprintf("%s(round=%s, value=%s)", e.Kind, e.Round, e.Value)
	}
	return fmt.Sprintf("%s(round=%s)", e.Kind, e.Round)
}

// Keeper.evaluateThresholds checks thresholds in this order, the
// deterministic tie-break from spec §4.2: PolkaValue, PolkaNil, PolkaAny,
// PrecommitValue, PrecommitAny, SkipRound. Callers (the driver) must also
// tolerate receiving these one at a time across separate ApplyVote calls,
// since the vote keeper does not promise bundling.
