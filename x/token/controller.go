package token

import (
	"bytes"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
)

// Controller manages mints and token accounts. Every operation that moves
// funds verifies the given authority against the stored one.
type Controller struct {
	mints    orm.ModelBucket
	accounts orm.ModelBucket
}

// NewController returns a controller using the default buckets.
func NewController() Controller {
	return Controller{
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
	}
}

// Mint returns the mint stored under given key.
func (c Controller) Mint(db custody.ReadOnlyKVStore, key []byte) (*Mint, error) {
	var m Mint
	if err := c.mints.One(db, key, &m); err != nil {
		return nil, errors.Wrapf(err, "mint %X", key)
	}
	return &m, nil
}

// Account returns the token account stored under given key.
func (c Controller) Account(db custody.ReadOnlyKVStore, key []byte) (*TokenAccount, error) {
	var a TokenAccount
	if err := c.accounts.One(db, key, &a); err != nil {
		return nil, errors.Wrapf(err, "token account %X", key)
	}
	return &a, nil
}

// CreateMint declares a new token and returns its key.
func (c Controller) CreateMint(db custody.KVStore, authority custody.Address, decimals uint32) ([]byte, error) {
	m := Mint{
		Metadata:  &custody.Metadata{Schema: 1},
		Authority: authority,
		Decimals:  decimals,
	}
	return c.mints.Put(db, nil, &m)
}

// CreateAccount creates an empty account of an existing mint, owned by
// owner. The owner is the initial authority.
func (c Controller) CreateAccount(db custody.KVStore, mint []byte, owner custody.Address) ([]byte, error) {
	if err := c.mints.Has(db, mint); err != nil {
		return nil, errors.Wrapf(err, "mint %X", mint)
	}
	a := TokenAccount{
		Metadata:  &custody.Metadata{Schema: 1},
		Mint:      mint,
		Owner:     owner,
		Authority: owner,
	}
	return c.accounts.Put(db, nil, &a)
}

// MintTo creates new units and credits them to the given account. The
// authority must be the mint authority.
func (c Controller) MintTo(db custody.KVStore, mint, account []byte, authority custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	m, err := c.Mint(db, mint)
	if err != nil {
		return err
	}
	if !m.Authority.Equals(authority) {
		return errors.Wrap(errors.ErrUnauthorized, "not the mint authority")
	}
	acc, err := c.Account(db, account)
	if err != nil {
		return err
	}
	if !bytes.Equal(acc.Mint, mint) {
		return errors.Wrap(errors.ErrInput, "account mint mismatch")
	}

	supply, err := x.AddUint64(m.Supply, amount)
	if err != nil {
		return errors.Wrap(err, "supply")
	}
	balance, err := x.AddUint64(acc.Amount, amount)
	if err != nil {
		return errors.Wrap(err, "account balance")
	}
	m.Supply = supply
	acc.Amount = balance
	if _, err := c.mints.Put(db, mint, m); err != nil {
		return errors.Wrap(err, "save mint")
	}
	if _, err := c.accounts.Put(db, account, acc); err != nil {
		return errors.Wrap(err, "save account")
	}
	return nil
}

// Transfer moves amount units between two accounts of the same mint. The
// authority must be the authority of the source account.
func (c Controller) Transfer(db custody.KVStore, from, to []byte, authority custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	if bytes.Equal(from, to) {
		return errors.Wrap(errors.ErrInput, "source and destination must differ")
	}
	src, err := c.Account(db, from)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if !src.Authority.Equals(authority) {
		return errors.Wrap(errors.ErrUnauthorized, "not the source account authority")
	}
	dest, err := c.Account(db, to)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !bytes.Equal(src.Mint, dest.Mint) {
		return errors.Wrap(errors.ErrInput, "account mint mismatch")
	}

	srcAmount, err := x.SubUint64(src.Amount, amount)
	if err != nil {
		return errors.Wrapf(err, "source balance %d", src.Amount)
	}
	destAmount, err := x.AddUint64(dest.Amount, amount)
	if err != nil {
		return errors.Wrapf(err, "destination balance %d", dest.Amount)
	}
	src.Amount = srcAmount
	dest.Amount = destAmount
	if _, err := c.accounts.Put(db, from, src); err != nil {
		return errors.Wrap(err, "save source")
	}
	if _, err := c.accounts.Put(db, to, dest); err != nil {
		return errors.Wrap(err, "save destination")
	}
	return nil
}

// SetAuthority hands the right to move funds out of the account over to
// next. The current authority must match the stored one.
func (c Controller) SetAuthority(db custody.KVStore, account []byte, current, next custody.Address) error {
	acc, err := c.Account(db, account)
	if err != nil {
		return err
	}
	if !acc.Authority.Equals(current) {
		return errors.Wrap(errors.ErrUnauthorized, "not the account authority")
	}
	if err := next.Validate(); err != nil {
		return errors.Wrap(err, "new authority")
	}
	acc.Authority = next
	if _, err := c.accounts.Put(db, account, acc); err != nil {
		return errors.Wrap(err, "save account")
	}
	return nil
}
