package tmconsensus

import "fmt"

// Validator is a single member of a ValidatorSet. The core only needs an
// address and a voting power; key material and any richer identity live
// on the host side (see tm/tmconsensus/tmconsensustest and tm/tmhost).
type Validator struct {
	Address Address
	Power   uint64
}

// ValidatorSet is an ordered set of Validators with a fixed total voting
// power, fixed for the height it is instantiated with. Order matters: the
// round-robin proposer selector indexes into it by iteration order.
type ValidatorSet struct {
	validators []Validator
	byAddr     map[Address]int
	totalPower uint64
}

// NewValidatorSet builds a ValidatorSet from vs, preserving order.
// It panics if vs contains a duplicate address or a zero-power entry,
// since both would be programmer errors in fixture or host construction.
func NewValidatorSet(vs []Validator) ValidatorSet {
	byAddr := make(map[Address]int, len(vs))
	var total uint64
	out := make([]Validator, len(vs))
	for i, v := range vs {
		if v.Power == 0 {
			panic(fmt.Errorf("tmconsensus: validator %s has zero power", v.Address))
		}
		if _, ok := byAddr[v.Address]; ok {
			panic(fmt.Errorf("tmconsensus: duplicate validator address %s", v.Address))
		}
		byAddr[v.Address] = i
		out[i] = v
		total += v.Power
	}
	return ValidatorSet{validators: out, byAddr: byAddr, totalPower: total}
}

// Validators returns the validators in set order. The returned slice must
// not be mutated by the caller.
func (vs ValidatorSet) Validators() []Validator {
	return vs.validators
}

// Len returns the number of validators in the set.
func (vs ValidatorSet) Len() int {
	return len(vs.validators)
}

// TotalPower returns the sum of every validator's voting power.
func (vs ValidatorSet) TotalPower() uint64 {
	return vs.totalPower
}

// ByAddress looks up a validator by address.
func (vs ValidatorSet) ByAddress(addr Address) (Validator, bool) {
	idx, ok := vs.byAddr[addr]
	if !ok {
		return Validator{}, false
	}
	return vs.validators[idx], true
}

// IndexOf returns the position of addr within set iteration order, or -1
// if addr is not a member.
func (vs ValidatorSet) IndexOf(addr Address) int {
	idx, ok := vs.byAddr[addr]
	if !ok {
		return -1
	}
	return idx
}

// At returns the validator at position i within set iteration order.
// It panics if i is out of range.
func (vs ValidatorSet) At(i int) Validator {
	return vs.validators[i]
}

// FaultThreshold returns f, the maximum tolerated Byzantine voting power,
// under the n = 3f+1 assumption. Thresholds throughout the spec (polka,
// precommit quorum, skip-round) are expressed in terms of f.
func (vs ValidatorSet) FaultThreshold() uint64 {
	return (vs.totalPower - 1) / 3
}
