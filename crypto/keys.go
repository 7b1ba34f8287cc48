/*
Package crypto provides the ed25519 keys used to sign transactions and the
conditions they fulfil.
*/
package crypto

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte
}

// Signature is an ed25519 signature.
type Signature struct {
	Ed25519 []byte
}

var (
	_ custody.Persistent = (*PublicKey)(nil)
	_ custody.Persistent = (*PrivateKey)(nil)
	_ custody.Persistent = (*Signature)(nil)
)

func (p *PublicKey) Marshal() ([]byte, error) {
	return codec.NewEncoder().Bytes(1, p.Ed25519).Result()
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	return unmarshalKey(raw, &p.Ed25519)
}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return codec.NewEncoder().Bytes(1, p.Ed25519).Result()
}

func (p *PrivateKey) Unmarshal(raw []byte) error {
	return unmarshalKey(raw, &p.Ed25519)
}

func (s *Signature) Marshal() ([]byte, error) {
	return codec.NewEncoder().Bytes(1, s.Ed25519).Result()
}

func (s *Signature) Unmarshal(raw []byte) error {
	return unmarshalKey(raw, &s.Ed25519)
}

// all key types share the same layout, a single bytes field
func unmarshalKey(raw []byte, dest *[]byte) error {
	d := codec.NewDecoder(raw)
	for {
		ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if d.Field() == 1 {
			*dest, err = d.Bytes()
		} else {
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "key")
		}
	}
}
