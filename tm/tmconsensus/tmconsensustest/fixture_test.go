package tmconsensustest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gordian-engine/tmcore/tm/tmconsensus/tmconsensustest"
)

func TestNewFixture_Deterministic(t *testing.T) {
	t.Parallel()

	a := tmconsensustest.NewFixture(4)
	b := tmconsensustest.NewFixture(4)

	require.Equal(t, a.ValidatorSet, b.ValidatorSet)
	require.Equal(t, a.Names, b.Names)
}

func TestNewFixture_EqualPower(t *testing.T) {
	t.Parallel()

	f := tmconsensustest.NewFixture(4)
	require.Equal(t, 4, f.ValidatorSet.Len())
	require.Equal(t, uint64(4), f.ValidatorSet.TotalPower())
}

func TestFixture_AddrAndNameOf(t *testing.T) {
	t.Parallel()

	f := tmconsensustest.NewFixture(3)
	for i := 0; i < 3; i++ {
		addr := f.Addr(i)
		name := f.NameOf(addr)
		require.NotEmpty(t, name)
	}

	require.NotEqual(t, "", f.NameOf("unknown-address"))
}

func TestValue_BuildsByID(t *testing.T) {
	t.Parallel()

	v := tmconsensustest.Value("X")
	require.Equal(t, "X", string(v.ID))
	require.Empty(t, v.Data)
}
