package cash

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

// BucketName is where we store the native accounts
const BucketName = "cash"

// NativeAccount is the native currency balance of a single address.
type NativeAccount struct {
	Metadata *custody.Metadata
	Balance  uint64
	// DataSize is the number of bytes of data attached to this account. It
	// is used to compute the minimum viable balance.
	DataSize uint32
}

var _ orm.Model = (*NativeAccount)(nil)

func (a *NativeAccount) Validate() error {
	return errors.Wrap(a.Metadata.Validate(), "metadata")
}

func (a *NativeAccount) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, a.Metadata).
		Uint64(2, a.Balance).
		Uint64(3, uint64(a.DataSize)).
		Result()
}

func (a *NativeAccount) Unmarshal(raw []byte) error {
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
			a.Balance, err = d.Uint64()
		case 3:
			a.DataSize, err = d.Uint32()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "native account")
		}
	}
}

// NewBucket returns a bucket for native accounts, keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &NativeAccount{})
}
