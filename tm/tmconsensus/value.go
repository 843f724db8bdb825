package tmconsensus

// Address identifies a validator. The core treats it as an opaque,
// comparable key; the host is responsible for deriving it from a public
// key (see gcrypto.PubKey.Address).
type Address string

// ValueID is the stable hash of a Value. The core only ever compares and
// tallies ValueIDs; it never inspects the value's content.
type ValueID string

// Value is the opaque payload a proposer proposes. Equality and a stable
// ID are the only operations the core performs on it; Data is carried
// along so the proposer can be re-proposed without the host re-fetching
// it (see RoundState.Valid).
type Value struct {
	ID   ValueID
	Data []byte
}

// Equal reports whether v and o have the same ID. The core never compares
// Data directly; two values with the same ID are the same value.
func (v Value) Equal(o Value) bool {
	return v.ID == o.ID
}

// IsZero reports whether v is the zero Value, i.e. no value at all.
func (v Value) IsZero() bool {
	return v.ID == ""
}
