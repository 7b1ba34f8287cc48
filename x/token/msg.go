package token

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
)

var (
	_ custody.Msg = (*CreateMintMsg)(nil)
	_ custody.Msg = (*CreateAccountMsg)(nil)
	_ custody.Msg = (*MintToMsg)(nil)
	_ custody.Msg = (*TransferMsg)(nil)
)

// CreateMintMsg declares a new token. Authority defaults to the main signer.
type CreateMintMsg struct {
	Metadata  *custody.Metadata
	Authority custody.Address
	Decimals  uint32
}

func (CreateMintMsg) Path() string {
	return "token/create_mint"
}

func (m *CreateMintMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.Authority) != 0 {
		if err := m.Authority.Validate(); err != nil {
			return errors.Wrap(err, "authority")
		}
	}
	if m.Decimals > maxDecimals {
		return errors.Wrapf(errors.ErrInput, "decimals must not exceed %d", maxDecimals)
	}
	return nil
}

func (m *CreateMintMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, m.Metadata).
		Bytes(2, m.Authority).
		Uint64(3, uint64(m.Decimals)).
		Result()
}

func (m *CreateMintMsg) Unmarshal(raw []byte) error {
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
			m.Authority = b
		case 3:
			m.Decimals, err = d.Uint32()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "create mint msg")
		}
	}
}

// CreateAccountMsg creates an empty token account. Owner defaults to the
// main signer.
type CreateAccountMsg struct {
	Metadata *custody.Metadata
	Mint     []byte
	Owner    custody.Address
}

func (CreateAccountMsg) Path() string {
	return "token/create_account"
}

func (m *CreateAccountMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.Mint) == 0 {
		return errors.Wrap(errors.ErrEmpty, "mint")
	}
	if len(m.Owner) != 0 {
		if err := m.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	return nil
}

func (m *CreateAccountMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, m.Metadata).
		Bytes(2, m.Mint).
		Bytes(3, m.Owner).
		Result()
}

func (m *CreateAccountMsg) Unmarshal(raw []byte) error {
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
			m.Mint, err = d.Bytes()
		case 3:
			var b []byte
			b, err = d.Bytes()
			m.Owner = b
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "create account msg")
		}
	}
}

// MintToMsg creates new units of a token. It must be signed by the mint
// authority.
type MintToMsg struct {
	Metadata  *custody.Metadata
	Mint      []byte
	Account   []byte
	Authority custody.Address
	Amount    uint64
}

func (MintToMsg) Path() string {
	return "token/mint_to"
}

func (m *MintToMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.Mint) == 0 {
		return errors.Wrap(errors.ErrEmpty, "mint")
	}
	if len(m.Account) == 0 {
		return errors.Wrap(errors.ErrEmpty, "account")
	}
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

func (m *MintToMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, m.Metadata).
		Bytes(2, m.Mint).
		Bytes(3, m.Account).
		Bytes(4, m.Authority).
		Uint64(5, m.Amount).
		Result()
}

func (m *MintToMsg) Unmarshal(raw []byte) error {
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
			m.Mint, err = d.Bytes()
		case 3:
			m.Account, err = d.Bytes()
		case 4:
			var b []byte
			b, err = d.Bytes()
			m.Authority = b
		case 5:
			m.Amount, err = d.Uint64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "mint to msg")
		}
	}
}

// TransferMsg moves units between two accounts of the same mint. It must be
// signed by the source account authority.
type TransferMsg struct {
	Metadata    *custody.Metadata
	Source      []byte
	Destination []byte
	Authority   custody.Address
	Amount      uint64
}

func (TransferMsg) Path() string {
	return "token/transfer"
}

func (m *TransferMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.Source) == 0 {
		return errors.Wrap(errors.ErrEmpty, "source")
	}
	if len(m.Destination) == 0 {
		return errors.Wrap(errors.ErrEmpty, "destination")
	}
	if err := m.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero amount")
	}
	return nil
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return codec.NewEncoder().
		Message(1, m.Metadata).
		Bytes(2, m.Source).
		Bytes(3, m.Destination).
		Bytes(4, m.Authority).
		Uint64(5, m.Amount).
		Result()
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
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
			m.Source, err = d.Bytes()
		case 3:
			m.Destination, err = d.Bytes()
		case 4:
			var b []byte
			b, err = d.Bytes()
			m.Authority = b
		case 5:
			m.Amount, err = d.Uint64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "transfer msg")
		}
	}
}
