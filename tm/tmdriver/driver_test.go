package tmdriver_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
	"github.com/gordian-engine/tmcore/tm/tmdriver"
	"github.com/gordian-engine/tmcore/tm/tmproposer"
)

func fourValidators() tmconsensus.ValidatorSet {
	return tmconsensus.NewValidatorSet([]tmconsensus.Validator{
		{Address: "v1", Power: 1},
		{Address: "v2", Power: 1},
		{Address: "v3", Power: 1},
		{Address: "v4", Power: 1},
	})
}

func newTestDriver(addr tmconsensus.Address) *tmdriver.Driver {
	return tmdriver.New(
		1,
		fourValidators(),
		addr,
		tmproposer.RoundRobin{},
		tmdriver.TimeoutParams{
			Propose:   time.Second,
			Prevote:   time.Second,
			Precommit: time.Second,
		},
		nil,
	)
}

func findOutput[T tmdriver.Output](t *testing.T, outs []tmdriver.Output) (T, bool) {
	t.Helper()
	for _, o := range outs {
		if v, ok := o.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func prevoteFor(addr tmconsensus.Address, round tmconsensus.Round, id tmconsensus.ValueID) tmdriver.Input {
	return tmdriver.InputVote{Vote: tmconsensus.Vote{
		Height: 1, Round: round, Type: tmconsensus.VoteTypePrevote,
		Value: tmconsensus.VoteForValue[tmconsensus.ValueID](id), ValidatorAddr: addr,
	}}
}

func precommitFor(addr tmconsensus.Address, round tmconsensus.Round, id tmconsensus.ValueID) tmdriver.Input {
	return tmdriver.InputVote{Vote: tmconsensus.Vote{
		Height: 1, Round: round, Type: tmconsensus.VoteTypePrecommit,
		Value: tmconsensus.VoteForValue[tmconsensus.ValueID](id), ValidatorAddr: addr,
	}}
}

// TestDriver_HappyPath_Proposer is scenario 1 from spec §8, driven at
// whichever validator tmproposer.RoundRobin selects for (height 1,
// round 0) (P8).
func TestDriver_HappyPath_Proposer(t *testing.T) {
	t.Parallel()

	vs := fourValidators()
	proposer := (tmproposer.RoundRobin{}).SelectProposer(1, 0, vs)
	var others []tmconsensus.Address
	for _, v := range vs.Validators() {
		if v.Address != proposer {
			others = append(others, v.Address)
		}
	}
	require.Len(t, others, 3)

	d := newTestDriver(proposer)

	outs := d.Process(tmdriver.InputNewRound{Height: 1, Round: 0})
	_, hasGetValue := findOutput[tmdriver.OutputGetValue](t, outs)
	require.True(t, hasGetValue)
	_, hasSchedule := findOutput[tmdriver.OutputScheduleTimeout](t, outs)
	require.True(t, hasSchedule)

	outs = d.Process(tmdriver.InputProposeValue{Height: 1, Round: 0, Value: tmconsensus.Value{ID: "X"}})
	prop, hasPropose := findOutput[tmdriver.OutputPropose](t, outs)
	require.True(t, hasPropose)
	require.Equal(t, tmconsensus.ValueID("X"), prop.Proposal.Value.ID)

	outs = d.Process(tmdriver.InputProposal{Proposal: prop.Proposal, Validity: tmconsensus.ValidityValid})
	// Receiving its own proposal immediately prevotes it.
	selfPrevote, hasSelfPrevote := findOutput[tmdriver.OutputVote](t, outs)
	require.True(t, hasSelfPrevote)
	require.Equal(t, tmconsensus.VoteTypePrevote, selfPrevote.Vote.Type)
	require.Equal(t, proposer, selfPrevote.Vote.ValidatorAddr)

	outs = d.Process(prevoteFor(others[0], 0, "X"))
	require.Empty(t, outs)
	outs = d.Process(prevoteFor(others[1], 0, "X"))
	require.Empty(t, outs)
	outs = d.Process(prevoteFor(others[2], 0, "X"))
	// The third prevote from the other validators crosses the polka
	// threshold (3 of 4 power; this validator's own prevote is never fed
	// back here) and advances straight to a precommit.
	vote, hasVote := findOutput[tmdriver.OutputVote](t, outs)
	require.True(t, hasVote)
	require.Equal(t, tmconsensus.VoteTypePrecommit, vote.Vote.Type)
	require.Equal(t, proposer, vote.Vote.ValidatorAddr)

	outs = d.Process(precommitFor(others[0], 0, "X"))
	require.Empty(t, outs)
	outs = d.Process(precommitFor(others[1], 0, "X"))
	require.Empty(t, outs)
	outs = d.Process(precommitFor(others[2], 0, "X"))

	dec, hasDecide := findOutput[tmdriver.OutputDecide](t, outs)
	require.True(t, hasDecide)
	require.Equal(t, tmconsensus.ValueID("X"), dec.Value.ID)
	require.True(t, d.Decided())
}

// TestDriver_ProposeTimeout is scenario 3: a non-proposer times out on
// Propose and prevotes Nil. v2 is the proposer for (height 1, round 0)
// per RoundRobin's formula, so this is driven at v1 instead.
func TestDriver_ProposeTimeout(t *testing.T) {
	t.Parallel()

	d := newTestDriver("v1")

	d.Process(tmdriver.InputNewRound{Height: 1, Round: 0})
	outs := d.Process(tmdriver.InputTimeoutElapsed{Round: 0, Step: tmconsensus.StepPropose})

	vote, ok := findOutput[tmdriver.OutputVote](t, outs)
	require.True(t, ok)
	require.Equal(t, tmconsensus.VoteTypePrevote, vote.Vote.Type)
	require.True(t, vote.Vote.Value.IsNil())
}

// TestDriver_RoundSkip is scenario 5: f+1 voting power observed at a
// future round advances the driver there.
func TestDriver_RoundSkip(t *testing.T) {
	t.Parallel()

	d := newTestDriver("v2")
	d.Process(tmdriver.InputNewRound{Height: 1, Round: 0})

	d.Process(prevoteFor("v3", 1, "X"))
	outs := d.Process(precommitFor("v4", 1, "Y"))

	newRound, ok := findOutput[tmdriver.OutputNewRound](t, outs)
	require.True(t, ok)
	require.Equal(t, tmconsensus.Round(1), newRound.Round)
	require.Equal(t, tmconsensus.Round(1), d.Round())
}

// TestDriver_EquivocatingProposal is scenario 6: the driver records
// evidence but its own state stays exactly as if only the first
// proposal had arrived.
func TestDriver_EquivocatingProposal(t *testing.T) {
	t.Parallel()

	d := newTestDriver("v2")
	d.Process(tmdriver.InputNewRound{Height: 1, Round: 0})

	p := tmconsensus.Proposal{Height: 1, Round: 0, Value: tmconsensus.Value{ID: "X"}, PolRound: tmconsensus.RoundNil, ValidatorAddr: "v1"}
	pPrime := tmconsensus.Proposal{Height: 1, Round: 0, Value: tmconsensus.Value{ID: "Y"}, PolRound: tmconsensus.RoundNil, ValidatorAddr: "v1"}

	outs := d.Process(tmdriver.InputProposal{Proposal: p, Validity: tmconsensus.ValidityValid})
	vote, ok := findOutput[tmdriver.OutputVote](t, outs)
	require.True(t, ok)
	require.Equal(t, tmconsensus.ValueID("X"), mustID(t, vote.Vote.Value))

	outs = d.Process(tmdriver.InputProposal{Proposal: pPrime, Validity: tmconsensus.ValidityValid})
	require.Empty(t, outs)

	require.Len(t, d.ProposalEvidence(), 1)
	require.Equal(t, tmconsensus.Address("v1"), d.ProposalEvidence()[0].Existing.ValidatorAddr)
}

// TestDriver_HeightMismatch_DroppedSilently covers P6.
func TestDriver_HeightMismatch_DroppedSilently(t *testing.T) {
	t.Parallel()

	d := newTestDriver("v2")
	before := d.State()

	outs := d.Process(tmdriver.InputNewRound{Height: 2, Round: 0})
	require.Nil(t, outs)
	require.Equal(t, before, d.State())
}

func mustID(t *testing.T, v tmconsensus.NilOrVal[tmconsensus.ValueID]) tmconsensus.ValueID {
	t.Helper()
	id, ok := v.Value()
	require.True(t, ok)
	return id
}
