package sigs

import (
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
)

// ErrInvalidSequence is returned when a signature sequence does not match
// the one expected for its signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")

// SignedTx represents a transaction that contains signatures,
// which can be verified by the sigs.Decorator
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the Msg.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature is a signature of one signer together with its public key
// and the replay protection sequence.
type StdSignature struct {
	Sequence  int64
	Pubkey    *crypto.PublicKey
	Signature *crypto.Signature
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if s.Signature == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

func (s *StdSignature) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Int64(1, s.Sequence).
		Message(2, s.Pubkey).
		Message(4, s.Signature).
		Result()
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	d := codec.NewDecoder(raw)
	for {
		ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		switch d.Field() {
		case 1:
			s.Sequence, err = d.Int64()
		case 2:
			s.Pubkey = &crypto.PublicKey{}
			err = d.Message(s.Pubkey)
		case 4:
			s.Signature = &crypto.Signature{}
			err = d.Message(s.Signature)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "signature")
		}
	}
}
