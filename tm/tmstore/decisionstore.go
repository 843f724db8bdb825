package tmstore

import (
	"context"
	"errors"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
)

// ErrNoDecision is returned by DecisionStore.LoadDecision when height has
// not yet been decided.
var ErrNoDecision = errors.New("tmstore: no decision recorded for height")

// Decision is the durable record of a height's outcome: the round it was
// decided at and the decided value.
type Decision struct {
	Round tmconsensus.Round
	Value tmconsensus.Value
}

// DecisionStore durably records each height's decision, adapted from the
// teacher's FinalizationStore. It enforces decision immutability (I1, P2)
// at the storage boundary, in addition to RoundState already doing so in
// memory.
type DecisionStore interface {
	// SaveDecision records d for height. Saving a second, different
	// decision for a height already recorded is a programmer error: the
	// core's own invariants guarantee a driver never produces two
	// distinct decisions for one height.
	SaveDecision(ctx context.Context, height tmconsensus.Height, d Decision) error

	// LoadDecision returns the recorded decision for height, or
	// ErrNoDecision if none has been saved yet.
	LoadDecision(ctx context.Context, height tmconsensus.Height) (Decision, error)
}
