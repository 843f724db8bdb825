package tmconsensus

// RoundValue pairs a Value with the round in which it was locked or found
// valid. It is the payload of RoundState.Locked and RoundState.Valid.
type RoundValue struct {
	Round Round
	Value Value
}

// RoundState is the current round's state as held by the driver. Locked
// and Valid survive a round change (round_skip preserves them); Decision
// is set exactly once, at Commit, and never cleared.
//
// Locked, Valid, and Decision are nil until set; a nil pointer is the
// "None" member of the spec's Option<...>.
type RoundState struct {
	Round   Round
	Step    Step
	Locked  *RoundValue
	Valid   *RoundValue
	Decision *Value
}

// NewRoundState returns the initial RoundState for round r: step
// Unstarted, with locked/valid/decision carried over from the prior round
// state (round_skip never clears them).
func NewRoundState(r Round, locked, valid *RoundValue, decision *Value) RoundState {
	return RoundState{
		Round:    r,
		Step:     StepUnstarted,
		Locked:   locked,
		Valid:    valid,
		Decision: decision,
	}
}
