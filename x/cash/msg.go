package cash

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

const maxMemoSize int = 128

// SendMsg moves native funds between two accounts.
type SendMsg struct {
	Metadata    *custody.Metadata
	Source      custody.Address
	Destination custody.Address
	Amount      uint64
	Memo        string
}

var _ custody.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}

// DefaultSource makes sure there is a payer.
// If it was already set, returns m.
// If none was set, returns a new SendMsg with the source set
func (m *SendMsg) DefaultSource(addr custody.Address) *SendMsg {
	if len(m.Source) != 0 {
		return m
	}
	cpy := *m
	cpy.Source = addr
	return &cpy
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, m.Metadata).
		Bytes(2, m.Source).
		Bytes(3, m.Destination).
		Uint64(4, m.Amount).
		String(5, m.Memo).
		Result()
}

func (m *SendMsg) Unmarshal(raw []byte) error {
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
			m.Source = b
		case 3:
			var b []byte
			b, err = d.Bytes()
			m.Destination = b
		case 4:
			m.Amount, err = d.Uint64()
		case 5:
			m.Memo, err = d.String()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "send msg")
		}
	}
}

// UpdateConfigurationMsg patches the cash configuration. Zero fields of the
// patch are ignored.
type UpdateConfigurationMsg struct {
	Metadata *custody.Metadata
	Patch    *Configuration
}

var _ custody.Msg = (*UpdateConfigurationMsg)(nil)

func (*UpdateConfigurationMsg) Path() string {
	return "cash/update_configuration"
}

func (m *UpdateConfigurationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if len(m.Patch.Owner) != 0 {
		if err := m.Patch.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	return nil
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, m.Metadata).
		Message(2, m.Patch).
		Result()
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
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
			m.Patch = &Configuration{}
			err = d.Message(m.Patch)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "update configuration msg")
		}
	}
}
