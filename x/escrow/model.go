package escrow

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
)

const maxEscrowIDSize = 32

// EscrowRecord binds an operator and an optional program scope to the
// native account of the escrow.
type EscrowRecord struct {
	Metadata *custody.Metadata
	// Operator is the only identity allowed to distribute funds.
	Operator custody.Address
	// Scope is the program allowed to act on this record. Empty scope
	// allows any program.
	Scope custody.Address
	// Address is the native account owned by this record.
	Address custody.Address
}

var _ orm.Model = (*EscrowRecord)(nil)

// Validate ensures the record is valid
func (r *EscrowRecord) Validate() error {
	if err := r.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := validateOperator(r.Operator); err != nil {
		return err
	}
	if len(r.Scope) != 0 {
		if err := r.Scope.Validate(); err != nil {
			return errors.Wrap(err, "scope")
		}
	}
	if err := r.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	return nil
}

func validateOperator(op custody.Address) error {
	if err := op.Validate(); err != nil {
		return errors.Wrap(err, "operator")
	}
	if op.IsZero() {
		return errors.Wrap(errors.ErrInput, "zero operator")
	}
	return nil
}

// Copy returns a deep copy of the record.
func (r *EscrowRecord) Copy() *EscrowRecord {
	return &EscrowRecord{
		Metadata: r.Metadata.Copy(),
		Operator: r.Operator.Clone(),
		Scope:    r.Scope.Clone(),
		Address:  r.Address.Clone(),
	}
}

func (r *EscrowRecord) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, r.Metadata).
		Bytes(2, r.Operator).
		Bytes(3, r.Scope).
		Bytes(4, r.Address).
		Result()
}

func (r *EscrowRecord) Unmarshal(raw []byte) error {
	d := codec.NewDecoder(raw)
	for {
		ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		var b []byte
		switch d.Field() {
		case 1:
			r.Metadata = &custody.Metadata{}
			err = d.Message(r.Metadata)
		case 2:
			b, err = d.Bytes()
			r.Operator = b
		case 3:
			b, err = d.Bytes()
			r.Scope = b
		case 4:
			b, err = d.Bytes()
			r.Address = b
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "escrow record")
		}
	}
}

// RecordAddress returns the address of the native account owned by the
// record stored under given key.
func RecordAddress(key []byte) custody.Address {
	return custody.NewCondition("escrow", "rec", key).Address()
}

// NewBucket returns a bucket of escrow records. Records put without a key
// receive one from the "escrow/id" sequence.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("esc", &EscrowRecord{},
		orm.WithIDSequence(orm.NewSequence("escrow", "id")))
}

// LoadRecord returns the record stored under given key.
func LoadRecord(db custody.ReadOnlyKVStore, bucket orm.ModelBucket, key []byte) (*EscrowRecord, error) {
	var rec EscrowRecord
	if err := bucket.One(db, key, &rec); err != nil {
		return nil, errors.Wrapf(err, "escrow %X", key)
	}
	return &rec, nil
}
