package escrow

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const optKey = "escrow"

// GenesisRecord declares an escrow record in the genesis file. Records
// receive keys from the escrow sequence in the order they are declared.
type GenesisRecord struct {
	Operator custody.Address `json:"operator"`
	// Scope is optional, a record without one is not bound to a program.
	Scope custody.Address `json:"scope"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ custody.Initializer = Initializer{}

// FromGenesis will parse initial escrow records from genesis and save them
// to the database. No deposit is charged.
func (Initializer) FromGenesis(opts custody.Options, db custody.KVStore) error {
	var records []GenesisRecord
	if err := opts.ReadOptions(optKey, &records); err != nil {
		return err
	}
	bucket := NewBucket()
	seq := orm.NewSequence("escrow", "id")
	for i, r := range records {
		key, err := seq.NextVal(db)
		if err != nil {
			return errors.Wrap(err, "escrow id")
		}
		rec := EscrowRecord{
			Metadata: &custody.Metadata{Schema: 1},
			Operator: r.Operator,
			Scope:    r.Scope,
			Address:  RecordAddress(key),
		}
		if _, err := bucket.Put(db, key, &rec); err != nil {
			return errors.Wrapf(err, "record %d", i)
		}
	}
	return nil
}
