package tmvotekeeper

import "github.com/gordian-engine/tmcore/tm/tmconsensus"

// Equivocation records a pair of conflicting votes: the same validator
// casting two distinct-value votes of the same type at the same
// (height, round). Per I5, the second vote never alters tallies; it is
// only ever recorded here.
type Equivocation struct {
	Existing    tmconsensus.Vote
	Conflicting tmconsensus.Vote
}
