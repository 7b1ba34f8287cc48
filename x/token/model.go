package token

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const maxDecimals = 18

// Mint declares a token.
type Mint struct {
	Metadata *custody.Metadata
	// Authority may create new units of this token.
	Authority custody.Address
	Decimals  uint32
	Supply    uint64
}

var _ orm.Model = (*Mint)(nil)

func (m *Mint) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if m.Decimals > maxDecimals {
		return errors.Wrapf(errors.ErrInput, "decimals must not exceed %d", maxDecimals)
	}
	return nil
}

func (m *Mint) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, m.Metadata).
		Bytes(2, m.Authority).
		Uint64(3, uint64(m.Decimals)).
		Uint64(4, m.Supply).
		Result()
}

func (m *Mint) Unmarshal(raw []byte) error {
	d := codec.NewDecoder(raw)
	for {
		ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		switch d.Field() {
		case 1:
			m.Metadata = &custody.Metadata{}
			err = d.Message(m.Metadata)
		case 2:
			var b []byte
			b, err = d.Bytes()
			m.Authority = b
		case 3:
			m.Decimals, err = d.Uint32()
		case 4:
			m.Supply, err = d.Uint64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "mint")
		}
	}
}

// TokenAccount holds units of a single mint.
type TokenAccount struct {
	Metadata *custody.Metadata
	// Mint is the key of the mint this account holds units of.
	Mint  []byte
	Owner custody.Address
	// Authority may move funds out of this account.
	Authority custody.Address
	Amount    uint64
}

var _ orm.Model = (*TokenAccount)(nil)

func (a *TokenAccount) Validate() error {
	if err := a.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(a.Mint) == 0 {
		return errors.Wrap(errors.ErrEmpty, "mint")
	}
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := a.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	return nil
}

func (a *TokenAccount) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, a.Metadata).
		Bytes(2, a.Mint).
		Bytes(3, a.Owner).
		Bytes(4, a.Authority).
		Uint64(5, a.Amount).
		Result()
}

func (a *TokenAccount) Unmarshal(raw []byte) error {
	d := codec.NewDecoder(raw)
	for {
		ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		switch d.Field() {
		case 1:
			a.Metadata = &custody.Metadata{}
			err = d.Message(a.Metadata)
		case 2:
			a.Mint, err = d.Bytes()
		case 3:
			var b []byte
			b, err = d.Bytes()
			a.Owner = b
		case 4:
			var b []byte
			b, err = d.Bytes()
			a.Authority = b
		case 5:
			a.Amount, err = d.Uint64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "token account")
		}
	}
}

// NewMintBucket returns a bucket of mints keyed by the "token/mint"
// sequence.
func NewMintBucket() orm.ModelBucket {
	return orm.NewModelBucket("tkmint", &Mint{},
		orm.WithIDSequence(orm.NewSequence("token", "mint")))
}

// NewAccountBucket returns a bucket of token accounts keyed by the
// "token/account" sequence.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("tkacct", &TokenAccount{},
		orm.WithIDSequence(orm.NewSequence("token", "account")))
}
