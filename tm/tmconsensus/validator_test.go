package tmconsensus_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
)

func TestNewValidatorSet(t *testing.T) {
	t.Parallel()

	vs := tmconsensus.NewValidatorSet([]tmconsensus.Validator{
		{Address: "a", Power: 1},
		{Address: "b", Power: 2},
		{Address: "c", Power: 1},
	})

	require.Equal(t, 3, vs.Len())
	require.Equal(t, uint64(4), vs.TotalPower())
	require.Equal(t, uint64(1), vs.FaultThreshold())

	v, ok := vs.ByAddress("b")
	require.True(t, ok)
	require.Equal(t, uint64(2), v.Power)

	require.Equal(t, 1, vs.IndexOf("b"))
	require.Equal(t, -1, vs.IndexOf("z"))
}

func TestNewValidatorSet_PanicsOnZeroPower(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		tmconsensus.NewValidatorSet([]tmconsensus.Validator{{Address: "a", Power: 0}})
	})
}

func TestNewValidatorSet_PanicsOnDuplicateAddress(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		tmconsensus.NewValidatorSet([]tmconsensus.Validator{
			{Address: "a", Power: 1},
			{Address: "a", Power: 1},
		})
	})
}
