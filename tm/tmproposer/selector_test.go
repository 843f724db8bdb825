package tmproposer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gordian-engine/tmcore/tm/tmconsensus"
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

func TestFixed(t *testing.T) {
	t.Parallel()

	vs := fourValidators()
	var sel tmproposer.Fixed

	require.Equal(t, tmconsensus.Address("v1"), sel.SelectProposer(1, 0, vs))
	require.Equal(t, tmconsensus.Address("v1"), sel.SelectProposer(5, 3, vs))
}

func TestRoundRobin(t *testing.T) {
	t.Parallel()

	vs := fourValidators()
	var sel tmproposer.RoundRobin

	// P8: select_proposer(h, r, vs) = vs[(h+r) mod |vs|].
	cases := []struct {
		h    tmconsensus.Height
		r    tmconsensus.Round
		want tmconsensus.Address
	}{
		{0, 0, "v1"},
		{1, 0, "v2"},
		{0, 1, "v2"},
		{1, 1, "v3"},
		{6, 0, "v3"},
	}
	for _, c := range cases {
		require.Equal(t, c.want, sel.SelectProposer(c.h, c.r, vs))
	}
}
