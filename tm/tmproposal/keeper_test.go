package tmproposal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
	"github.com/gordian-engine/tmcore/tm/tmproposal"
)

func proposal(round tmconsensus.Round, value tmconsensus.ValueID, addr tmconsensus.Address) tmconsensus.Proposal {
	return tmconsensus.Proposal{
		Height:        1,
		Round:         round,
		Value:         tmconsensus.Value{ID: value},
		PolRound:      tmconsensus.RoundNil,
		ValidatorAddr: addr,
	}
}

func TestKeeper_ApplyProposal_KeepsFirst(t *testing.T) {
	t.Parallel()

	k := tmproposal.NewKeeper(1)

	p := proposal(0, "X", "v1")
	k.ApplyProposal(p)

	got, ok := k.Get(0)
	require.True(t, ok)
	require.Equal(t, p, got)

	// Duplicate delivery is a no-op.
	k.ApplyProposal(p)
	got, ok = k.Get(0)
	require.True(t, ok)
	require.Equal(t, p, got)
	require.Empty(t, k.Evidence())
}

func TestKeeper_ApplyProposal_Equivocation(t *testing.T) {
	t.Parallel()

	k := tmproposal.NewKeeper(1)

	p := proposal(0, "X", "v1")
	pPrime := proposal(0, "Y", "v1")

	k.ApplyProposal(p)
	k.ApplyProposal(pPrime)

	// The first proposal is kept; the driver's tallies/state for the
	// decision never change just because a conflicting proposal arrived.
	got, ok := k.Get(0)
	require.True(t, ok)
	require.Equal(t, p, got)

	evidence := k.Evidence()
	require.Len(t, evidence, 1)
	require.Equal(t, p, evidence[0].Existing)
	require.Equal(t, pPrime, evidence[0].Conflicting)
}
