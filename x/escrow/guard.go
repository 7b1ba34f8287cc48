package escrow

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/x"
)

// RequireOperator returns an error unless the record operator signed the
// current transaction.
func RequireOperator(ctx custody.Context, auth x.Authenticator, rec *EscrowRecord) error {
	if !auth.HasAddress(ctx, rec.Operator) {
		return errors.Wrapf(ErrUnauthorizedOperator, "operator %s", rec.Operator)
	}
	return nil
}

// RequireScope returns an error unless the program executing the current
// transaction is the record scope. Records without a scope accept any
// program.
func RequireScope(ctx custody.Context, rec *EscrowRecord) error {
	if len(rec.Scope) == 0 {
		return nil
	}
	if program := custody.GetProgram(ctx); !rec.Scope.Equals(program) {
		return errors.Wrapf(ErrUnauthorizedProgram, "program %s", program)
	}
	return nil
}

func requireAll(ctx custody.Context, auth x.Authenticator, rec *EscrowRecord) error {
	if err := RequireOperator(ctx, auth, rec); err != nil {
		return err
	}
	return RequireScope(ctx, rec)
}
