package gcryptotest

import (
	"crypto/ed25519"
	"crypto/sha256"

	"github.com/gordian-engine/tmcore/gcrypto"
)

// DeterministicEd25519Signers returns n signers derived from fixed seeds.
//
// Using deterministic keys means repeated test runs produce identical
// addresses and signatures, which keeps logs and golden fixtures stable
// across runs.
func DeterministicEd25519Signers(n int) []gcrypto.Ed25519Signer {
	out := make([]gcrypto.Ed25519Signer, n)
	for i := range out {
		seed := sha256.Sum256([]byte{byte(i >> 8), byte(i)})
		priv := ed25519.NewKeyFromSeed(seed[:])
		out[i] = gcrypto.NewEd25519Signer(priv)
	}
	return out
}
