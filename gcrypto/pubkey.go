package gcrypto

import "context"

type PubKey interface {
	Address() []byte

	PubKeyBytes() []byte

	Equal(other PubKey) bool

	Verify(msg, sig []byte) bool
}

// Signer produces signatures for a single private key.
// Signing is assumed to be cheap enough to call synchronously,
// but it accepts a context so that external signers (HSMs, remote
// signing services) can still respect cancellation.
type Signer interface {
	PubKey() PubKey

	Sign(ctx context.Context, msg []byte) ([]byte, error)
}
