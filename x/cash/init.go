package cash

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use custody.Address, so address in hex, not base64
type GenesisAccount struct {
	Address  custody.Address `json:"address"`
	Balance  uint64          `json:"balance"`
	DataSize uint32          `json:"data_size"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis will parse initial account info and the configuration from
// genesis and save it to the database
func (Initializer) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(kv, opts, gconfPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrap(err, "genesis account")
		}
		acc := NativeAccount{
			Metadata: &custody.Metadata{Schema: 1},
			Balance:  acct.Balance,
			DataSize: acct.DataSize,
		}
		if _, err := bucket.Put(kv, acct.Address, &acc); err != nil {
			return errors.Wrapf(err, "save account %s", acct.Address)
		}
	}
	return nil
}
