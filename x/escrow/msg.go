package escrow

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

var (
	_ custody.Msg = (*InitializeMsg)(nil)
	_ custody.Msg = (*AuthorizeOperatorMsg)(nil)
	_ custody.Msg = (*DistributeNativeMsg)(nil)
	_ custody.Msg = (*DistributeTokenMsg)(nil)
)

func validateEscrowID(id []byte, required bool) error {
	if len(id) == 0 && required {
		return errors.Wrap(errors.ErrEmpty, "escrow id")
	}
	if len(id) > maxEscrowIDSize {
		return errors.Wrapf(errors.ErrInput, "escrow id longer than %d bytes", maxEscrowIDSize)
	}
	return nil
}

// InitializeMsg creates a new escrow record.
type InitializeMsg struct {
	Metadata *custody.Metadata
	// EscrowID is the key of the new record. When empty, a sequence value
	// is used.
	EscrowID []byte
	Operator custody.Address
	// Payer covers the record account deposit. Defaults to the main signer.
	Payer custody.Address
}

func (InitializeMsg) Path() string {
	return "escrow/initialize"
}

func (m *InitializeMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := validateEscrowID(m.EscrowID, false); err != nil {
		return err
	}
	if err := validateOperator(m.Operator); err != nil {
		return err
	}
	if len(m.Payer) != 0 {
		if err := m.Payer.Validate(); err != nil {
			return errors.Wrap(err, "payer")
		}
	}
	return nil
}

func (m *InitializeMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, m.Metadata).
		Bytes(2, m.EscrowID).
		Bytes(3, m.Operator).
		Bytes(4, m.Payer).
		Result()
}

func (m *InitializeMsg) Unmarshal(raw []byte) error {
	d := codec.NewDecoder(raw)
	for {
		ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		var b []byte
		switch d.Field() {
		case 1:
			m.Metadata = &custody.Metadata{}
			err = d.Message(m.Metadata)
		case 2:
			m.EscrowID, err = d.Bytes()
		case 3:
			b, err = d.Bytes()
			m.Operator = b
		case 4:
			b, err = d.Bytes()
			m.Payer = b
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "initialize msg")
		}
	}
}

// AuthorizeOperatorMsg delegates the authority of a token account to the
// escrow operator.
type AuthorizeOperatorMsg struct {
	Metadata         *custody.Metadata
	EscrowID         []byte
	TokenAccount     []byte
	CurrentAuthority custody.Address
	Operator         custody.Address
}

func (AuthorizeOperatorMsg) Path() string {
	return "escrow/authorize_operator"
}

func (m *AuthorizeOperatorMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := validateEscrowID(m.EscrowID, true); err != nil {
		return err
	}
	if len(m.TokenAccount) == 0 {
		return errors.Wrap(errors.ErrEmpty, "token account")
	}
	if err := m.CurrentAuthority.Validate(); err != nil {
		return errors.Wrap(err, "current authority")
	}
	if err := m.Operator.Validate(); err != nil {
		return errors.Wrap(err, "operator")
	}
	return nil
}

func (m *AuthorizeOperatorMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, m.Metadata).
		Bytes(2, m.EscrowID).
		Bytes(3, m.TokenAccount).
		Bytes(4, m.CurrentAuthority).
		Bytes(5, m.Operator).
		Result()
}

func (m *AuthorizeOperatorMsg) Unmarshal(raw []byte) error {
	d := codec.NewDecoder(raw)
	for {
		ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		var b []byte
		switch d.Field() {
		case 1:
			m.Metadata = &custody.Metadata{}
			err = d.Message(m.Metadata)
		case 2:
			m.EscrowID, err = d.Bytes()
		case 3:
			m.TokenAccount, err = d.Bytes()
		case 4:
			b, err = d.Bytes()
			m.CurrentAuthority = b
		case 5:
			b, err = d.Bytes()
			m.Operator = b
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "authorize operator msg")
		}
	}
}

// DistributeNativeMsg releases native funds from the escrow account.
type DistributeNativeMsg struct {
	Metadata    *custody.Metadata
	EscrowID    []byte
	Destination custody.Address
	Amount      uint64
}

func (DistributeNativeMsg) Path() string {
	return "escrow/distribute_native"
}

func (m *DistributeNativeMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := validateEscrowID(m.EscrowID, true); err != nil {
		return err
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	return nil
}

func (m *DistributeNativeMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, m.Metadata).
		Bytes(2, m.EscrowID).
		Bytes(3, m.Destination).
		Uint64(4, m.Amount).
		Result()
}

func (m *DistributeNativeMsg) Unmarshal(raw []byte) error {
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
			m.EscrowID, err = d.Bytes()
		case 3:
			var b []byte
			b, err = d.Bytes()
			m.Destination = b
		case 4:
			m.Amount, err = d.Uint64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "distribute native msg")
		}
	}
}

// DistributeTokenMsg moves tokens from a token account whose authority was
// delegated to the escrow operator.
type DistributeTokenMsg struct {
	Metadata         *custody.Metadata
	EscrowID         []byte
	SenderAccount    []byte
	RecipientAccount []byte
	Amount           uint64
}

func (DistributeTokenMsg) Path() string {
	return "escrow/distribute_token"
}

func (m *DistributeTokenMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := validateEscrowID(m.EscrowID, true); err != nil {
		return err
	}
	if len(m.SenderAccount) == 0 {
		return errors.Wrap(errors.ErrEmpty, "sender account")
	}
	if len(m.RecipientAccount) == 0 {
		return errors.Wrap(errors.ErrEmpty, "recipient account")
	}
	return nil
}

func (m *DistributeTokenMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, m.Metadata).
		Bytes(2, m.EscrowID).
		Bytes(3, m.SenderAccount).
		Bytes(4, m.RecipientAccount).
		Uint64(5, m.Amount).
		Result()
}

func (m *DistributeTokenMsg) Unmarshal(raw []byte) error {
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
			m.EscrowID, err = d.Bytes()
		case 3:
			m.SenderAccount, err = d.Bytes()
		case 4:
			m.RecipientAccount, err = d.Bytes()
		case 5:
			m.Amount, err = d.Uint64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "distribute token msg")
		}
	}
}
