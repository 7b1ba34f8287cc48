package token

import (
	"encoding/hex"
	"strings"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, control Controller) {
	r.Handle("token/create_mint", CreateMintHandler{auth: auth, control: control})
	r.Handle("token/create_account", CreateAccountHandler{auth: auth, control: control})
	r.Handle("token/mint_to", MintToHandler{auth: auth, control: control})
	r.Handle("token/transfer", TransferHandler{auth: auth, control: control})
}

// RegisterQuery will register the mints as "/tkmints" and the accounts as
// "/tkaccounts"
func RegisterQuery(qr custody.QueryRouter) {
	NewMintBucket().Register("tkmints", qr)
	NewAccountBucket().Register("tkaccounts", qr)
}

// CreateMintHandler declares new tokens.
type CreateMintHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ custody.Handler = CreateMintHandler{}

func (h CreateMintHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h CreateMintHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	key, err := h.control.CreateMint(db, msg.Authority, msg.Decimals)
	if err != nil {
		return nil, errors.Wrap(err, "create mint")
	}
	return &custody.DeliverResult{Data: key}, nil
}

func (h CreateMintHandler) validate(ctx custody.Context, tx custody.Tx) (*CreateMintMsg, error) {
	var msg CreateMintMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if len(msg.Authority) == 0 {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "authority required")
		}
		msg.Authority = signer.Address()
	}
	return &msg, nil
}

// CreateAccountHandler creates empty token accounts.
type CreateAccountHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ custody.Handler = CreateAccountHandler{}

func (h CreateAccountHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h CreateAccountHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key, err := h.control.CreateAccount(db, msg.Mint, msg.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "create account")
	}
	return &custody.DeliverResult{Data: key}, nil
}

func (h CreateAccountHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*CreateAccountMsg, error) {
	var msg CreateAccountMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if len(msg.Owner) == 0 {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "owner required")
		}
		msg.Owner = signer.Address()
	}
	if _, err := h.control.Mint(db, msg.Mint); err != nil {
		return nil, err
	}
	return &msg, nil
}

// MintToHandler creates new token units.
type MintToHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ custody.Handler = MintToHandler{}

func (h MintToHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h MintToHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MintTo(db, msg.Mint, msg.Account, msg.Authority, msg.Amount); err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Debug("tokens minted",
		"mint", hexKey(msg.Mint), "account", hexKey(msg.Account), "amount", msg.Amount)
	return &custody.DeliverResult{}, nil
}

func (h MintToHandler) validate(ctx custody.Context, tx custody.Tx) (*MintToMsg, error) {
	var msg MintToMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "mint authority signature missing")
	}
	return &msg, nil
}

// TransferHandler moves token units between accounts.
type TransferHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ custody.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{}, nil
}

func (h TransferHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(db, msg.Source, msg.Destination, msg.Authority, msg.Amount); err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Debug("tokens transferred",
		"source", hexKey(msg.Source), "destination", hexKey(msg.Destination), "amount", msg.Amount)
	return &custody.DeliverResult{}, nil
}

func (h TransferHandler) validate(ctx custody.Context, tx custody.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account authority signature missing")
	}
	return &msg, nil
}

func hexKey(key []byte) string {
	return strings.ToUpper(hex.EncodeToString(key))
}
