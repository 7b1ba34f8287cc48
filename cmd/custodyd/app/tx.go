package app

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/codec"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x/cash"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/token"
)

// Tx carries exactly one message together with the signatures of its
// signers. Only one of the message fields can be set.
type Tx struct {
	Signatures []*sigs.StdSignature

	CashSendMsg                *cash.SendMsg
	CashUpdateConfigurationMsg *cash.UpdateConfigurationMsg

	TokenCreateMintMsg    *token.CreateMintMsg
	TokenCreateAccountMsg *token.CreateAccountMsg
	TokenMintToMsg        *token.MintToMsg
	TokenTransferMsg      *token.TransferMsg

	EscrowInitializeMsg        *escrow.InitializeMsg
	EscrowAuthorizeOperatorMsg *escrow.AuthorizeOperatorMsg
	EscrowDistributeNativeMsg  *escrow.DistributeNativeMsg
	EscrowDistributeTokenMsg   *escrow.DistributeTokenMsg
}

// make sure tx fulfills all interfaces
var _ custody.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (custody.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// msgs returns all messages that are set.
func (tx *Tx) msgs() []custody.Msg {
	var all []custody.Msg
	add := func(set bool, m custody.Msg) {
		if set {
			all = append(all, m)
		}
	}
	add(tx.CashSendMsg != nil, tx.CashSendMsg)
	add(tx.CashUpdateConfigurationMsg != nil, tx.CashUpdateConfigurationMsg)
	add(tx.TokenCreateMintMsg != nil, tx.TokenCreateMintMsg)
	add(tx.TokenCreateAccountMsg != nil, tx.TokenCreateAccountMsg)
	add(tx.TokenMintToMsg != nil, tx.TokenMintToMsg)
	add(tx.TokenTransferMsg != nil, tx.TokenTransferMsg)
	add(tx.EscrowInitializeMsg != nil, tx.EscrowInitializeMsg)
	add(tx.EscrowAuthorizeOperatorMsg != nil, tx.EscrowAuthorizeOperatorMsg)
	add(tx.EscrowDistributeNativeMsg != nil, tx.EscrowDistributeNativeMsg)
	add(tx.EscrowDistributeTokenMsg != nil, tx.EscrowDistributeTokenMsg)
	return all
}

// GetMsg returns the single message carried by this transaction.
func (tx *Tx) GetMsg() (custody.Msg, error) {
	switch msgs := tx.msgs(); len(msgs) {
	case 0:
		return nil, errors.Wrap(errors.ErrState, "transaction without a message")
	case 1:
		return msgs[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrState, "transaction with %d messages", len(msgs))
	}
}

// SetMsg assigns the message to the matching field.
func (tx *Tx) SetMsg(msg custody.Msg) error {
	if len(tx.msgs()) != 0 {
		return errors.Wrap(errors.ErrState, "message already set")
	}
	switch m := msg.(type) {
	case *cash.SendMsg:
		tx.CashSendMsg = m
	case *cash.UpdateConfigurationMsg:
		tx.CashUpdateConfigurationMsg = m
	case *token.CreateMintMsg:
		tx.TokenCreateMintMsg = m
	case *token.CreateAccountMsg:
		tx.TokenCreateAccountMsg = m
	case *token.MintToMsg:
		tx.TokenMintToMsg = m
	case *token.TransferMsg:
		tx.TokenTransferMsg = m
	case *escrow.InitializeMsg:
		tx.EscrowInitializeMsg = m
	case *escrow.AuthorizeOperatorMsg:
		tx.EscrowAuthorizeOperatorMsg = m
	case *escrow.DistributeNativeMsg:
		tx.EscrowDistributeNativeMsg = m
	case *escrow.DistributeTokenMsg:
		tx.EscrowDistributeTokenMsg = m
	default:
		return errors.Wrapf(errors.ErrType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignatures returns the signatures of this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// the sign bytes must only come from the data itself,
	// not previous signatures
	cpy := *tx
	cpy.Signatures = nil
	return cpy.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	e := codec.NewEncoder()
	for _, s := range tx.Signatures {
		e.Message(1, s)
	}
	return e.
		Message(20, tx.CashSendMsg).
		Message(21, tx.CashUpdateConfigurationMsg).
		Message(30, tx.TokenCreateMintMsg).
		Message(31, tx.TokenCreateAccountMsg).
		Message(32, tx.TokenMintToMsg).
		Message(33, tx.TokenTransferMsg).
		Message(40, tx.EscrowInitializeMsg).
		Message(41, tx.EscrowAuthorizeOperatorMsg).
		Message(42, tx.EscrowDistributeNativeMsg).
		Message(43, tx.EscrowDistributeTokenMsg).
		Result()
}

func (tx *Tx) Unmarshal(raw []byte) error {
	d := codec.NewDecoder(raw)
	for {
		ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		switch d.Field() {
		case 1:
			var s sigs.StdSignature
			err = d.Message(&s)
			tx.Signatures = append(tx.Signatures, &s)
		case 20:
			tx.CashSendMsg = &cash.SendMsg{}
			err = d.Message(tx.CashSendMsg)
		case 21:
			tx.CashUpdateConfigurationMsg = &cash.UpdateConfigurationMsg{}
			err = d.Message(tx.CashUpdateConfigurationMsg)
		case 30:
			tx.TokenCreateMintMsg = &token.CreateMintMsg{}
			err = d.Message(tx.TokenCreateMintMsg)
		case 31:
			tx.TokenCreateAccountMsg = &token.CreateAccountMsg{}
			err = d.Message(tx.TokenCreateAccountMsg)
		case 32:
			tx.TokenMintToMsg = &token.MintToMsg{}
			err = d.Message(tx.TokenMintToMsg)
		case 33:
			tx.TokenTransferMsg = &token.TransferMsg{}
			err = d.Message(tx.TokenTransferMsg)
		case 40:
			tx.EscrowInitializeMsg = &escrow.InitializeMsg{}
			err = d.Message(tx.EscrowInitializeMsg)
		case 41:
			tx.EscrowAuthorizeOperatorMsg = &escrow.AuthorizeOperatorMsg{}
			err = d.Message(tx.EscrowAuthorizeOperatorMsg)
		case 42:
			tx.EscrowDistributeNativeMsg = &escrow.DistributeNativeMsg{}
			err = d.Message(tx.EscrowDistributeNativeMsg)
		case 43:
			tx.EscrowDistributeTokenMsg = &escrow.DistributeTokenMsg{}
			err = d.Message(tx.EscrowDistributeTokenMsg)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrap(err, "tx")
		}
	}
}
