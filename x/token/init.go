package token

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const optKey = "token"

// GenesisMint declares a mint in the genesis file. Mints receive keys from
// the mint sequence in the order they are declared, starting with 1.
type GenesisMint struct {
	Authority custody.Address `json:"authority"`
	Decimals  uint32          `json:"decimals"`
}

// GenesisAccount declares a funded token account. Mint is the sequence
// number of a mint declared in the same genesis.
type GenesisAccount struct {
	Mint   int64           `json:"mint"`
	Owner  custody.Address `json:"owner"`
	Amount uint64          `json:"amount"`
}

// Genesis is the content of the "token" genesis section.
type Genesis struct {
	Mints    []GenesisMint    `json:"mints"`
	Accounts []GenesisAccount `json:"accounts"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis creates all declared mints and accounts. Account balances
// are added to the mint supply.
func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}
	c := NewController()
	for i, m := range gen.Mints {
		if _, err := c.CreateMint(db, m.Authority, m.Decimals); err != nil {
			return errors.Wrapf(err, "mint #%d", i)
		}
	}
	for i, a := range gen.Accounts {
		mint := orm.EncodeSequence(a.Mint)
		key, err := c.CreateAccount(db, mint, a.Owner)
		if err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		if a.Amount == 0 {
			continue
		}
		m, err := c.Mint(db, mint)
		if err != nil {
			return err
		}
		if err := c.MintTo(db, mint, key, m.Authority, a.Amount); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
