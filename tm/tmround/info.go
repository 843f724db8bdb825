package tmround

import "github.com/gordian-engine/tmcore/tm/tmconsensus"

// Info carries the context Apply needs beyond the state and the input
// itself: which round the input addresses, this validator's own
// address, and the proposer for the round the state is currently in.
// The driver recomputes Proposer every time it starts a round (see
// tm/tmproposer.Selector).
type Info struct {
	Height     tmconsensus.Height
	InputRound tmconsensus.Round
	Address    tmconsensus.Address
	Proposer   tmconsensus.Address
}

// IsProposer reports whether this validator is the proposer for the
// round named by Info.
func (i Info) IsProposer() bool {
	return i.Address == i.Proposer
}
