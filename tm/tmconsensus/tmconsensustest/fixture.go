// Package tmconsensustest provides deterministic validator-set fixtures
// for tests and for the cmd/tmcorectl demo, mirroring the teacher's
// tmconsensustest package: fixed keys, fixed addresses, fixed equal
// voting power, so that repeated test runs produce identical output.
package tmconsensustest

import (
	"fmt"
	mrand "math/rand"

	"github.com/dustinkirkland/golang-petname"

	"github.com/gordian-engine/tmcore/gcrypto"
	"github.com/gordian-engine/tmcore/gcrypto/gcryptotest"
	"github.com/gordian-engine/tmcore/tm/tmconsensus"
)

// Fixture is a deterministic validator set plus the signers behind it,
// in the same order as ValidatorSet.Validators().
type Fixture struct {
	ValidatorSet tmconsensus.ValidatorSet
	Signers      []gcrypto.Ed25519Signer

	// Names gives each validator address a short, human-friendly label
	// for test failure output and CLI demo logs; it is purely cosmetic.
	Names map[tmconsensus.Address]string
}

// NewFixture returns a Fixture with n validators of equal voting power
// 1, keyed with deterministic ed25519 signers (see
// gcryptotest.DeterministicEd25519Signers).
func NewFixture(n int) Fixture {
	signers := gcryptotest.DeterministicEd25519Signers(n)

	names := make(map[tmconsensus.Address]string, n)
	vs := make([]tmconsensus.Validator, n)
	for i, s := range signers {
		addr := tmconsensus.Address(s.PubKey().Address())

		// Seed the generator deterministically per index so repeated
		// runs produce the same name for the same validator.
		mrand.Seed(int64(i) + 1)
		names[addr] = petname.Generate(2, "-")

		vs[i] = tmconsensus.Validator{Address: addr, Power: 1}
	}

	return Fixture{
		ValidatorSet: tmconsensus.NewValidatorSet(vs),
		Signers:      signers,
		Names:        names,
	}
}

// Addr returns the address of the i'th validator in fixture order.
func (f Fixture) Addr(i int) tmconsensus.Address {
	return f.ValidatorSet.At(i).Address
}

// NameOf returns the friendly name for addr, or its raw form if unknown.
func (f Fixture) NameOf(addr tmconsensus.Address) string {
	if n, ok := f.Names[addr]; ok {
		return n
	}
	return fmt.Sprintf("%x", string(addr))
}

// Value returns a deterministic Value with the given ID and no payload,
// convenient for tests that only care about value identity.
func Value(id string) tmconsensus.Value {
	return tmconsensus.Value{ID: tmconsensus.ValueID(id)}
}
