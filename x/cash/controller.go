package cash

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
)

// Controller gives access to native balances. All arithmetic is checked, a
// failed operation never writes a partial result.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller operating on the native account bucket.
func NewController() Controller {
	return Controller{bucket: NewBucket()}
}

// account returns the stored account or an empty one if none exists.
func (c Controller) account(db custody.ReadOnlyKVStore, addr custody.Address) (*NativeAccount, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "address")
	}
	var acc NativeAccount
	switch err := c.bucket.One(db, addr, &acc); {
	case err == nil:
		return &acc, nil
	case errors.ErrNotFound.Is(err):
		return &NativeAccount{Metadata: &custody.Metadata{Schema: 1}}, nil
	default:
		return nil, err
	}
}

// Balance returns the native balance of given address. Missing accounts
// have a zero balance.
func (c Controller) Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error) {
	acc, err := c.account(db, addr)
	if err != nil {
		return 0, err
	}
	return acc.Balance, nil
}

// SetBalance overwrites the balance of given address, creating the account
// if needed.
func (c Controller) SetBalance(db custody.KVStore, addr custody.Address, amount uint64) error {
	acc, err := c.account(db, addr)
	if err != nil {
		return err
	}
	acc.Balance = amount
	_, err = c.bucket.Put(db, addr, acc)
	return err
}

// AccountSize returns the data size of given account.
func (c Controller) AccountSize(db custody.ReadOnlyKVStore, addr custody.Address) (uint32, error) {
	acc, err := c.account(db, addr)
	if err != nil {
		return 0, err
	}
	return acc.DataSize, nil
}

// SetAccountSize declares how many bytes of data are attached to the
// account.
func (c Controller) SetAccountSize(db custody.KVStore, addr custody.Address, size uint32) error {
	acc, err := c.account(db, addr)
	if err != nil {
		return err
	}
	acc.DataSize = size
	_, err = c.bucket.Put(db, addr, acc)
	return err
}

// MinimumBalance returns the minimum viable balance of an account of given
// size, as declared by the current configuration.
func (c Controller) MinimumBalance(db custody.ReadOnlyKVStore, size uint32) (uint64, error) {
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	return conf.MinimumBalance(size)
}

// MoveCoins moves the given amount from src to dest.
// Both balances are computed before any of them is written.
func (c Controller) MoveCoins(db custody.KVStore, src, dest custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination must differ")
	}
	sender, err := c.account(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	recipient, err := c.account(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}

	senderBalance, err := x.SubUint64(sender.Balance, amount)
	if err != nil {
		return errors.Wrapf(err, "source balance %d", sender.Balance)
	}
	recipientBalance, err := x.AddUint64(recipient.Balance, amount)
	if err != nil {
		return errors.Wrapf(err, "destination balance %d", recipient.Balance)
	}

	sender.Balance = senderBalance
	recipient.Balance = recipientBalance
	if _, err := c.bucket.Put(db, src, sender); err != nil {
		return errors.Wrap(err, "save source")
	}
	if _, err := c.bucket.Put(db, dest, recipient); err != nil {
		return errors.Wrap(err, "save destination")
	}
	return nil
}
