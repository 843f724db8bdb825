package tmhost_test

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gordian-engine/tmcore/gcrypto"
	"github.com/gordian-engine/tmcore/tm/tmconsensus"
	"github.com/gordian-engine/tmcore/tm/tmdriver"
	"github.com/gordian-engine/tmcore/tm/tmhost"
	"github.com/gordian-engine/tmcore/tm/tmproposer"
	"github.com/gordian-engine/tmcore/tm/tmstore"
	"github.com/gordian-engine/tmcore/tm/tmstore/tmmemstore"
)

var _ tmdriver.Environment = (*tmhost.Host)(nil)

func newHost(t *testing.T, vs tmconsensus.ValidatorSet, pubKeys map[tmconsensus.Address]gcrypto.PubKey) (*tmhost.Host, gcrypto.Ed25519Signer) {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	signer := gcrypto.NewEd25519Signer(priv)
	h := tmhost.New(vs, signer, pubKeys, tmproposer.RoundRobin{}, tmmemstore.NewActionStore(), tmmemstore.NewDecisionStore(), nil)
	return h, signer
}

func TestHost_SignAndVerifyVote_RoundTrip(t *testing.T) {
	t.Parallel()

	vs := tmconsensus.NewValidatorSet([]tmconsensus.Validator{{Address: "placeholder", Power: 1}})
	h, signer := newHost(t, vs, nil)

	pubKeys := map[tmconsensus.Address]gcrypto.PubKey{h.Address(): signer.PubKey()}
	h2 := tmhost.New(vs, signer, pubKeys, tmproposer.RoundRobin{}, tmmemstore.NewActionStore(), tmmemstore.NewDecisionStore(), nil)

	vote := tmconsensus.Vote{
		Height: 1, Round: 0, Type: tmconsensus.VoteTypePrevote,
		Value: tmconsensus.VoteForValue[tmconsensus.ValueID]("X"), ValidatorAddr: h2.Address(),
	}

	sv, err := h2.SignVote(vote)
	require.NoError(t, err)
	require.Equal(t, vote, sv.Vote)

	got, ok := h2.VerifyVote(sv)
	require.True(t, ok)
	require.Equal(t, vote, got)
}

func TestHost_VerifyVote_UnknownValidatorFails(t *testing.T) {
	t.Parallel()

	vs := tmconsensus.NewValidatorSet([]tmconsensus.Validator{{Address: "placeholder", Power: 1}})
	h, _ := newHost(t, vs, nil)

	vote := tmconsensus.Vote{
		Height: 1, Round: 0, Type: tmconsensus.VoteTypePrevote,
		Value: tmconsensus.VoteForValue[tmconsensus.ValueID]("X"), ValidatorAddr: "ghost",
	}
	sv, err := h.SignVote(vote)
	require.NoError(t, err)

	_, ok := h.VerifyVote(sv)
	require.False(t, ok)
}

func TestHost_VerifyVote_TamperedSignatureFails(t *testing.T) {
	t.Parallel()

	vs := tmconsensus.NewValidatorSet([]tmconsensus.Validator{{Address: "placeholder", Power: 1}})
	h, signer := newHost(t, vs, nil)
	pubKeys := map[tmconsensus.Address]gcrypto.PubKey{h.Address(): signer.PubKey()}
	h = tmhost.New(vs, signer, pubKeys, tmproposer.RoundRobin{}, tmmemstore.NewActionStore(), tmmemstore.NewDecisionStore(), nil)

	vote := tmconsensus.Vote{
		Height: 1, Round: 0, Type: tmconsensus.VoteTypePrevote,
		Value: tmconsensus.VoteForValue[tmconsensus.ValueID]("X"), ValidatorAddr: h.Address(),
	}
	sv, err := h.SignVote(vote)
	require.NoError(t, err)

	sv.Vote.Round = 1 // mutate the signed payload post-signature
	_, ok := h.VerifyVote(sv)
	require.False(t, ok)
}

func TestHost_SignAndVerifyProposal_RoundTrip(t *testing.T) {
	t.Parallel()

	vs := tmconsensus.NewValidatorSet([]tmconsensus.Validator{{Address: "placeholder", Power: 1}})
	h, signer := newHost(t, vs, nil)
	pubKeys := map[tmconsensus.Address]gcrypto.PubKey{h.Address(): signer.PubKey()}
	h = tmhost.New(vs, signer, pubKeys, tmproposer.RoundRobin{}, tmmemstore.NewActionStore(), tmmemstore.NewDecisionStore(), nil)

	p := tmconsensus.Proposal{
		Height: 1, Round: 0, Value: tmconsensus.Value{ID: "X"},
		PolRound: tmconsensus.RoundNil, ValidatorAddr: h.Address(),
	}

	sp, err := h.SignProposal(p)
	require.NoError(t, err)

	got, ok := h.VerifyProposal(sp)
	require.True(t, ok)
	require.Equal(t, p, got)
}

func TestHost_SignVote_PersistsAction(t *testing.T) {
	t.Parallel()

	vs := tmconsensus.NewValidatorSet([]tmconsensus.Validator{{Address: "placeholder", Power: 1}})
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	signer := gcrypto.NewEd25519Signer(priv)
	actions := tmmemstore.NewActionStore()
	h := tmhost.New(vs, signer, nil, tmproposer.RoundRobin{}, actions, tmmemstore.NewDecisionStore(), nil)

	vote := tmconsensus.Vote{Height: 5, Round: 0, Type: tmconsensus.VoteTypePrecommit, Value: tmconsensus.VoteForNil[tmconsensus.ValueID](), ValidatorAddr: h.Address()}
	_, err = h.SignVote(vote)
	require.NoError(t, err)

	got, err := actions.LoadActions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	va, ok := got[0].(tmstore.VoteAction)
	require.True(t, ok)
	require.Equal(t, vote, va.Vote)
}

func TestHost_SaveDecision(t *testing.T) {
	t.Parallel()

	vs := tmconsensus.NewValidatorSet([]tmconsensus.Validator{{Address: "placeholder", Power: 1}})
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	signer := gcrypto.NewEd25519Signer(priv)
	decisions := tmmemstore.NewDecisionStore()
	h := tmhost.New(vs, signer, nil, tmproposer.RoundRobin{}, tmmemstore.NewActionStore(), decisions, nil)

	d := tmstore.Decision{Round: 0, Value: tmconsensus.Value{ID: "X"}}
	require.NoError(t, h.SaveDecision(1, d))

	got, err := decisions.LoadDecision(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, d, got)
}

func TestHost_SelectProposer_DelegatesToSelector(t *testing.T) {
	t.Parallel()

	vs := tmconsensus.NewValidatorSet([]tmconsensus.Validator{
		{Address: "v1", Power: 1},
		{Address: "v2", Power: 1},
	})
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	signer := gcrypto.NewEd25519Signer(priv)
	h := tmhost.New(vs, signer, nil, tmproposer.RoundRobin{}, tmmemstore.NewActionStore(), tmmemstore.NewDecisionStore(), nil)

	require.Equal(t, tmconsensus.Address("v2"), h.SelectProposer(1, 0, vs))
}
