package tmround

import "github.com/gordian-engine/tmcore/tm/tmconsensus"

// Transition is the result of a single Apply call: the round's next
// state, and at most one Output.
//
// An invalid transition (an input that matches no rule in §4.5) is
// represented by Next being identical to the state Apply was given and
// Output being nil. A *valid* transition that simply produces no side
// effect (e.g. Precommit + ProposalAndPolkaCurrent, which only updates
// Valid) is represented by Next differing from the input state with
// Output still nil. Callers that need to distinguish "nothing happened"
// from "the state changed silently" should compare Next against the
// state they passed in.
type Transition struct {
	Next   tmconsensus.RoundState
	Output Output
}
