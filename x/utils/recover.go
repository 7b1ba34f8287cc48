package utils

import (
	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

// Recovery turns a panic raised anywhere below it in the stack into an
// ErrPanic result. The panic value is logged together with the path of the
// message that caused it. A savepoint placed below Recovery discards all
// writes of the failed transaction.
type Recovery struct{}

var _ custody.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Checker) (_ *custody.CheckResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicked(ctx, tx, "check", p)
		}
	}()
	return next.Check(ctx, store, tx)
}

func (Recovery) Deliver(ctx custody.Context, store custody.KVStore, tx custody.Tx, next custody.Deliverer) (_ *custody.DeliverResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicked(ctx, tx, "deliver", p)
		}
	}()
	return next.Deliver(ctx, store, tx)
}

func panicked(ctx custody.Context, tx custody.Tx, phase string, p interface{}) error {
	path := "unknown"
	if tx != nil {
		if msg, err := tx.GetMsg(); err == nil && msg != nil {
			path = msg.Path()
		}
	}
	custody.GetLogger(ctx).Error("transaction panic",
		"phase", phase, "path", path, "panic", p)
	return errors.Wrapf(errors.ErrPanic, "%s %s: %v", phase, path, p)
}
