package cash

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/x"
)

const gconfPkg = "cash"

// Configuration holds the parameters of the minimum viable balance
// computation.
type Configuration struct {
	Metadata *custody.Metadata `json:"metadata"`
	// Owner may update this configuration.
	Owner custody.Address `json:"owner"`
	// AccountOverhead is the number of bytes every account occupies
	// regardless of its data.
	AccountOverhead uint32 `json:"account_overhead"`
	// BalancePerByte is the native amount required per account byte.
	BalancePerByte uint64 `json:"balance_per_byte"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

func (c *Configuration) GetOwner() custody.Address {
	return c.Owner
}

func (c *Configuration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	// owner field is optional, without one the configuration is immutable
	if len(c.Owner) != 0 {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner address")
		}
	}
	return nil
}

// MinimumBalance returns (account_overhead + size) * balance_per_byte.
func (c *Configuration) MinimumBalance(size uint32) (uint64, error) {
	bytes := uint64(c.AccountOverhead) + uint64(size)
	min, err := x.MulUint64(bytes, c.BalancePerByte)
	if err != nil {
		return 0, errors.Wrapf(err, "minimum balance for %d bytes", size)
	}
	return min, nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, c.Metadata).
		Bytes(2, c.Owner).
		Uint64(3, uint64(c.AccountOverhead)).
		Uint64(4, c.BalancePerByte).
		Result()
}

func (c *Configuration) Unmarshal(raw []byte) error {
	d := codec.NewDecoder(raw)
	for {
		ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		switch d.Field() {
		case 1:
			c.Metadata = &custody.Metadata{}
			err = d.Message(c.Metadata)
		case 2:
			var b []byte
			b, err = d.Bytes()
			c.Owner = b
		case 3:
			c.AccountOverhead, err = d.Uint32()
		case 4:
			c.BalancePerByte, err = d.Uint64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "configuration")
		}
	}
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, gconfPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
