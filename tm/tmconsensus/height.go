// Package tmconsensus defines the types shared by every other package in
// the tm/ tree: Height, Round, Value, Vote, Proposal, ValidatorSet, and the
// enumerations (VoteType, Step) that the round state machine and driver
// operate on. Nothing in this package performs I/O, signs anything, or
// depends on a particular transport or storage layer.
package tmconsensus

// Height identifies the block height the core is deciding.
// The core runs exactly one height at a time.
type Height uint64
