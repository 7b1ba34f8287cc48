package weavetest

import (
	"crypto/rand"
	"encoding/binary"
	"sync/atomic"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
)

func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

func NewCondition() custody.Condition {
	return NewKey().PublicKey().Condition()
}

// RandomAddr returns a valid random address generated on the fly.
func RandomAddr(t testing.TB) custody.Address {
	t.Helper()
	raw := make([]byte, custody.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	return custody.Address(raw)
}

var sequence uint64

// SequenceID returns an 8 byte big endian encoded value of an internal
// counter, the same way orm.Sequence does. Each call returns a new value.
func SequenceID() []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, atomic.AddUint64(&sequence, 1))
	return raw
}
