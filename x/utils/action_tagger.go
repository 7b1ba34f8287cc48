package utils

import (
	"strings"

	custody "github.com/iov-one/custody"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// ActionKey tags a successful transaction with its message path, for
	// example action=escrow/distribute_native.
	ActionKey = "action"
	// ModuleKey tags a successful transaction with the extension that
	// handled it, for example module=escrow. Clients subscribe to it to
	// follow every operation of an escrow program.
	ModuleKey = "module"
)

// ActionTagger appends the action and module tags to the result of every
// delivered transaction. Failed transactions are not tagged.
type ActionTagger struct{}

var _ custody.Decorator = ActionTagger{}

// NewActionTagger creates a ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Checker) (*custody.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx custody.Context, db custody.KVStore, tx custody.Tx, next custody.Deliverer) (*custody.DeliverResult, error) {
	// a broken transaction is never dispatched
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	path := msg.Path()
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(ActionKey), Value: []byte(path)})
	if i := strings.IndexByte(path, '/'); i > 0 {
		res.Tags = append(res.Tags, common.KVPair{Key: []byte(ModuleKey), Value: []byte(path[:i])})
	}
	return res, nil
}
