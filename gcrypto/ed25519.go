package gcrypto

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"fmt"
)

const Ed25519KeyTypeName = "ed25519"

// Ed25519PubKey is the everyday signing scheme used by [tm/tmhost]
// to sign votes and proposals before gossip.
type Ed25519PubKey ed25519.PublicKey

// NewEd25519PubKey validates that b is a correctly sized ed25519 public key
// and returns it as a PubKey.
func NewEd25519PubKey(b []byte) (PubKey, error) {
	if len(b) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("gcrypto: invalid ed25519 public key length %d", len(b))
	}
	return Ed25519PubKey(bytes.Clone(b)), nil
}

func (k Ed25519PubKey) Address() []byte {
	return ed25519.PublicKey(k)[:20]
}

func (k Ed25519PubKey) PubKeyBytes() []byte {
	return ed25519.PublicKey(k)
}

func (k Ed25519PubKey) Verify(msg, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(k), msg, sig)
}

func (k Ed25519PubKey) Equal(other PubKey) bool {
	o, ok := other.(Ed25519PubKey)
	if !ok {
		return false
	}
	return bytes.Equal(k, o)
}

// Ed25519Signer signs messages with a single ed25519 private key.
type Ed25519Signer struct {
	priv ed25519.PrivateKey
	pub  Ed25519PubKey
}

// NewEd25519Signer returns a Signer wrapping priv.
func NewEd25519Signer(priv ed25519.PrivateKey) Ed25519Signer {
	return Ed25519Signer{
		priv: priv,
		pub:  Ed25519PubKey(priv.Public().(ed25519.PublicKey)),
	}
}

func (s Ed25519Signer) PubKey() PubKey {
	return s.pub
}

func (s Ed25519Signer) Sign(_ context.Context, msg []byte) ([]byte, error) {
	return ed25519.Sign(s.priv, msg), nil
}
