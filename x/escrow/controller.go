package escrow

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/orm"
	"github.com/iov-one/custody/x"
)

// NativeLedger gives access to native currency balances.
type NativeLedger interface {
	Balance(db custody.ReadOnlyKVStore, addr custody.Address) (uint64, error)
	SetBalance(db custody.KVStore, addr custody.Address, amount uint64) error
	AccountSize(db custody.ReadOnlyKVStore, addr custody.Address) (uint32, error)
	MinimumBalance(db custody.ReadOnlyKVStore, size uint32) (uint64, error)
}

// TokenLedger moves tokens and delegates token account authority. Both
// operations verify the given authority themselves.
type TokenLedger interface {
	Transfer(db custody.KVStore, from, to []byte, authority custody.Address, amount uint64) error
	SetAuthority(db custody.KVStore, account []byte, current, next custody.Address) error
}

// Controller implements all escrow operations. Authorization is always
// checked before any balance is read for mutation.
type Controller struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	native NativeLedger
	token  TokenLedger
}

// NewController returns a controller using the default record bucket.
func NewController(auth x.Authenticator, native NativeLedger, token TokenLedger) Controller {
	return Controller{
		auth:   auth,
		bucket: NewBucket(),
		native: native,
		token:  token,
	}
}

// Record returns the escrow record stored under given key.
func (c Controller) Record(db custody.ReadOnlyKVStore, key []byte) (*EscrowRecord, error) {
	return LoadRecord(db, c.bucket, key)
}

// Initialize creates a new escrow record under given key, or under the next
// sequence value when key is empty. The payer covers the minimum viable
// balance of the record account.
func (c Controller) Initialize(ctx custody.Context, db custody.KVStore, key []byte, operator, payer custody.Address) ([]byte, *EscrowRecord, error) {
	if err := validateOperator(operator); err != nil {
		return nil, nil, err
	}
	if len(key) == 0 {
		seq := orm.NewSequence("escrow", "id")
		next, err := seq.NextVal(db)
		if err != nil {
			return nil, nil, errors.Wrap(err, "escrow id")
		}
		key = next
	}
	switch err := c.bucket.Has(db, key); {
	case err == nil:
		return nil, nil, errors.Wrapf(ErrAccountAlreadyInitialized, "escrow %X", key)
	case !errors.ErrNotFound.Is(err):
		return nil, nil, err
	}

	rec := &EscrowRecord{
		Metadata: &custody.Metadata{Schema: 1},
		Operator: operator,
		Scope:    custody.GetProgram(ctx),
		Address:  RecordAddress(key),
	}
	if err := rec.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "escrow record")
	}
	raw, err := rec.Marshal()
	if err != nil {
		return nil, nil, errors.Wrap(err, "serialize record")
	}
	if err := c.payDeposit(db, payer, rec.Address, uint32(len(raw))); err != nil {
		return nil, nil, err
	}
	if _, err := c.bucket.Put(db, key, rec); err != nil {
		return nil, nil, errors.Wrap(err, "save record")
	}
	return key, rec, nil
}

// payDeposit moves the minimum viable balance of an account of given size
// from payer to the record account.
func (c Controller) payDeposit(db custody.KVStore, payer, account custody.Address, size uint32) error {
	deposit, err := c.native.MinimumBalance(db, size)
	if err != nil {
		return errors.Wrap(err, "minimum balance")
	}
	if deposit == 0 {
		return nil
	}
	payerBalance, err := c.native.Balance(db, payer)
	if err != nil {
		return errors.Wrap(err, "payer")
	}
	accountBalance, err := c.native.Balance(db, account)
	if err != nil {
		return errors.Wrap(err, "record account")
	}
	newPayer, err := x.SubUint64(payerBalance, deposit)
	if err != nil {
		return errors.Wrapf(err, "payer cannot cover deposit of %d", deposit)
	}
	newAccount, err := x.AddUint64(accountBalance, deposit)
	if err != nil {
		return errors.Wrap(err, "record account")
	}
	if err := c.native.SetBalance(db, payer, newPayer); err != nil {
		return err
	}
	return c.native.SetBalance(db, account, newAccount)
}

// DistributeNative moves amount native units from src to dest. An empty
// destination additionally receives its minimum viable balance. Both new
// balances are computed before any of them is written.
func (c Controller) DistributeNative(ctx custody.Context, db custody.KVStore, rec *EscrowRecord, src, dest custody.Address, amount uint64) error {
	if err := c.authorizeNative(ctx, rec, src, dest, amount); err != nil {
		return err
	}

	destBalance, err := c.native.Balance(db, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	transfer := amount
	if destBalance == 0 {
		size, err := c.native.AccountSize(db, dest)
		if err != nil {
			return errors.Wrap(err, "destination size")
		}
		min, err := c.native.MinimumBalance(db, size)
		if err != nil {
			return errors.Wrap(err, "minimum balance")
		}
		if transfer, err = x.AddUint64(amount, min); err != nil {
			return errors.Wrap(err, "amount with minimum balance")
		}
	}

	srcBalance, err := c.native.Balance(db, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	newSrc, err := x.SubUint64(srcBalance, transfer)
	if err != nil {
		return errors.Wrapf(err, "source balance %d, transfer %d", srcBalance, transfer)
	}
	newDest, err := x.AddUint64(destBalance, transfer)
	if err != nil {
		return errors.Wrapf(err, "destination balance %d, transfer %d", destBalance, transfer)
	}

	if err := c.native.SetBalance(db, src, newSrc); err != nil {
		return errors.Wrap(err, "write source")
	}
	if err := c.native.SetBalance(db, dest, newDest); err != nil {
		return errors.Wrap(err, "write destination")
	}
	return nil
}

// DistributeToken moves amount tokens between two token accounts, using the
// record operator as the authority. The token ledger is called exactly once.
func (c Controller) DistributeToken(ctx custody.Context, db custody.KVStore, rec *EscrowRecord, from, to []byte, amount uint64) error {
	if err := c.authorizeToken(ctx, rec, amount); err != nil {
		return err
	}
	if err := c.token.Transfer(db, from, to, rec.Operator, amount); err != nil {
		return errors.Wrapf(errors.WithReason(ErrTokenTransferFailed, err), "escrow %s", rec.Address)
	}
	return nil
}

// AuthorizeOperatorOnce hands the authority of a token account over to the
// record operator. The current authority must sign the transaction.
func (c Controller) AuthorizeOperatorOnce(ctx custody.Context, db custody.KVStore, rec *EscrowRecord, currentAuthority custody.Address, tokenAccount []byte, newOperator custody.Address) error {
	if err := c.authorizeDelegation(ctx, rec, currentAuthority, newOperator); err != nil {
		return err
	}
	if err := c.token.SetAuthority(db, tokenAccount, currentAuthority, newOperator); err != nil {
		return errors.Wrapf(errors.WithReason(ErrAuthorityTransferFailed, err), "account %X", tokenAccount)
	}
	return nil
}

// authorizeNative runs all checks of a native distribution that do not
// depend on balances.
func (c Controller) authorizeNative(ctx custody.Context, rec *EscrowRecord, src, dest custody.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(ErrInvalidAmount, "zero distribution")
	}
	if err := requireAll(ctx, c.auth, rec); err != nil {
		return err
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "source and destination must differ")
	}
	return nil
}

func (c Controller) authorizeToken(ctx custody.Context, rec *EscrowRecord, amount uint64) error {
	if err := requireAll(ctx, c.auth, rec); err != nil {
		return err
	}
	if amount == 0 {
		return errors.Wrap(ErrInvalidAmount, "zero distribution")
	}
	return nil
}

func (c Controller) authorizeDelegation(ctx custody.Context, rec *EscrowRecord, currentAuthority, newOperator custody.Address) error {
	if err := RequireScope(ctx, rec); err != nil {
		return err
	}
	if !rec.Operator.Equals(newOperator) {
		return errors.Wrapf(ErrUnauthorizedOperator, "%s is not the escrow operator", newOperator)
	}
	if !c.auth.HasAddress(ctx, currentAuthority) {
		return errors.Wrap(errors.ErrUnauthorized, "current authority signature missing")
	}
	return nil
}
