package custody

import (
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

// Metadata is embedded in every persisted model and message. Schema is the
// version of the serialization format and must be at least 1.
type Metadata struct {
	Schema uint32
}

// Validate returns an error if the schema version is not set.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version less than 1")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when implementing
// orm.CloneableData interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}

func (m *Metadata) Marshal() ([]byte, error) {
	return codec.NewEncoder().Uint64(1, uint64(m.Schema)).Result()
}

func (m *Metadata) Unmarshal(raw []byte) error {
	d := codec.NewDecoder(raw)
	for {
		ok, err := d.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		switch d.Field() {
		case 1:
			m.Schema, err = d.Uint32()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "metadata")
		}
	}
}
