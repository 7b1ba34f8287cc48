package escrow

import (
	"encoding/hex"
	"strings"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
	"github.com/tendermint/tendermint/libs/common"
)

// ProgramName is the name of the program instance that escrow handlers are
// executed as. Records initialized through the router are scoped to it.
const ProgramName = "escrow"

const (
	// pay initialization cost up-front
	initializeCost int64 = 300
	distributeCost int64 = 50
	authorizeCost  int64 = 50
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r custody.Registry, auth x.Authenticator, native NativeLedger, token TokenLedger) {
	c := NewController(auth, native, token)
	handle := func(path string, h custody.Handler) {
		r.Handle(path, custody.WithProgramIdentity(ProgramName, h))
	}
	handle("escrow/initialize", InitializeHandler{auth: auth, control: c})
	handle("escrow/authorize_operator", AuthorizeOperatorHandler{control: c})
	handle("escrow/distribute_native", DistributeNativeHandler{control: c})
	handle("escrow/distribute_token", DistributeTokenHandler{control: c})
}

// RegisterQuery will register this bucket as "/escrows"
func RegisterQuery(qr custody.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

func escrowTag(key []byte) []common.KVPair {
	return []common.KVPair{{
		Key:   []byte("escrow"),
		Value: []byte(strings.ToUpper(hex.EncodeToString(key))),
	}}
}

// InitializeHandler creates escrow records.
type InitializeHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ custody.Handler = InitializeHandler{}

func (h InitializeHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(msg.EscrowID) != 0 {
		if _, err := h.control.Record(db, msg.EscrowID); err == nil {
			return nil, errors.Wrapf(ErrAccountAlreadyInitialized, "escrow %X", msg.EscrowID)
		}
	}
	return &custody.CheckResult{GasAllocated: initializeCost}, nil
}

func (h InitializeHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	key, rec, err := h.control.Initialize(ctx, db, msg.EscrowID, msg.Operator, msg.Payer)
	if err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Info("initialized escrow",
		"escrow", rec.Address, "operator", rec.Operator)
	return &custody.DeliverResult{Data: key, Tags: escrowTag(key)}, nil
}

func (h InitializeHandler) validate(ctx custody.Context, tx custody.Tx) (*InitializeMsg, error) {
	var msg InitializeMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if len(msg.Payer) == 0 {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "payer required")
		}
		msg.Payer = signer.Address()
	}
	if !h.auth.HasAddress(ctx, msg.Payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	return &msg, nil
}

// AuthorizeOperatorHandler delegates token account authority to the escrow
// operator.
type AuthorizeOperatorHandler struct {
	control Controller
}

var _ custody.Handler = AuthorizeOperatorHandler{}

func (h AuthorizeOperatorHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: authorizeCost}, nil
}

func (h AuthorizeOperatorHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, rec, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Info("authorize operator",
		"account", hexKey(msg.TokenAccount), "authority", msg.CurrentAuthority)
	if err := h.control.AuthorizeOperatorOnce(ctx, db, rec, msg.CurrentAuthority, msg.TokenAccount, msg.Operator); err != nil {
		return nil, err
	}
	return &custody.DeliverResult{Tags: escrowTag(msg.EscrowID)}, nil
}

func (h AuthorizeOperatorHandler) validate(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*AuthorizeOperatorMsg, *EscrowRecord, error) {
	var msg AuthorizeOperatorMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	rec, err := h.control.Record(db, msg.EscrowID)
	if err != nil {
		return nil, nil, err
	}
	if err := h.control.authorizeDelegation(ctx, rec, msg.CurrentAuthority, msg.Operator); err != nil {
		return nil, nil, err
	}
	return &msg, rec, nil
}

// DistributeNativeHandler releases native funds held by the escrow account.
type DistributeNativeHandler struct {
	control Controller
}

var _ custody.Handler = DistributeNativeHandler{}

func (h DistributeNativeHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	msg, rec, err := h.validate(db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.authorizeNative(ctx, rec, rec.Address, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: distributeCost}, nil
}

func (h DistributeNativeHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, rec, err := h.validate(db, tx)
	if err != nil {
		return nil, err
	}

	// both balance writes land in the store or none of them does
	store := db
	cache, staged := db.(custody.CacheableKVStore)
	var wrap custody.KVCacheWrap
	if staged {
		wrap = cache.CacheWrap()
		store = wrap
	}
	if err := h.control.DistributeNative(ctx, store, rec, rec.Address, msg.Destination, msg.Amount); err != nil {
		if staged {
			wrap.Discard()
		}
		return nil, err
	}
	if staged {
		if err := wrap.Write(); err != nil {
			return nil, errors.Wrap(err, "write distribution")
		}
	}
	custody.GetLogger(ctx).Info("native distribution",
		"escrow", rec.Address, "destination", msg.Destination, "amount", msg.Amount)
	return &custody.DeliverResult{Tags: escrowTag(msg.EscrowID)}, nil
}

func (h DistributeNativeHandler) validate(db custody.KVStore, tx custody.Tx) (*DistributeNativeMsg, *EscrowRecord, error) {
	var msg DistributeNativeMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	rec, err := h.control.Record(db, msg.EscrowID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, rec, nil
}

// DistributeTokenHandler moves tokens using the operator authority.
type DistributeTokenHandler struct {
	control Controller
}

var _ custody.Handler = DistributeTokenHandler{}

func (h DistributeTokenHandler) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.CheckResult, error) {
	msg, rec, err := h.validate(db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.authorizeToken(ctx, rec, msg.Amount); err != nil {
		return nil, err
	}
	return &custody.CheckResult{GasAllocated: distributeCost}, nil
}

func (h DistributeTokenHandler) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx) (*custody.DeliverResult, error) {
	msg, rec, err := h.validate(db, tx)
	if err != nil {
		return nil, err
	}
	custody.GetLogger(ctx).Info("transferring tokens",
		"from", hexKey(msg.SenderAccount), "to", hexKey(msg.RecipientAccount), "amount", msg.Amount)
	if err := h.control.DistributeToken(ctx, db, rec, msg.SenderAccount, msg.RecipientAccount, msg.Amount); err != nil {
		custody.GetLogger(ctx).Error("token transfer failed", "err", err)
		return nil, err
	}
	return &custody.DeliverResult{Tags: escrowTag(msg.EscrowID)}, nil
}

func (h DistributeTokenHandler) validate(db custody.KVStore, tx custody.Tx) (*DistributeTokenMsg, *EscrowRecord, error) {
	var msg DistributeTokenMsg
	if err := custody.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	rec, err := h.control.Record(db, msg.EscrowID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, rec, nil
}

func hexKey(key []byte) string {
	return strings.ToUpper(hex.EncodeToString(key))
}
