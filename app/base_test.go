package app

import (
	"context"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/iov-one/custody/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

func TestBaseApp(t *testing.T) {
	handler := &weavetest.Handler{
		CheckResult:   custody.CheckResult{GasAllocated: 11},
		DeliverResult: custody.DeliverResult{Data: []byte("ok"), Tags: []common.KVPair{{Key: []byte("k"), Value: []byte("v")}}},
		OnDeliver: func(ctx custody.Context, db custody.KVStore) error {
			return db.Set([]byte("delivered"), []byte("yes"))
		},
	}
	decoder := func(raw []byte) (custody.Tx, error) {
		switch string(raw) {
		case "panic":
			panic("cannot decode")
		case "bad":
			return nil, errors.Wrap(errors.ErrInput, "bad tx")
		}
		return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/base"}}, nil
	}

	store := NewStoreApp("base", iavl.MockCommitStore(), custody.NewQueryRouter(), context.Background())
	require.NoError(t, store.LoadGenesis("testdata/genesis.json", dummyInit{}))
	b := NewBaseApp(store, decoder, handler, false)
	b.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})

	check := b.CheckTx([]byte("tx"))
	require.Equal(t, uint32(0), check.Code, check.Log)
	assert.Equal(t, int64(11), check.GasWanted)

	deliver := b.DeliverTx([]byte("tx"))
	require.Equal(t, uint32(0), deliver.Code, deliver.Log)
	assert.Equal(t, []byte("ok"), deliver.Data)
	assert.Len(t, deliver.Tags, 1)

	val, err := b.DeliverStore().Get([]byte("delivered"))
	require.NoError(t, err)
	assert.Equal(t, []byte("yes"), val)

	res := b.DeliverTx([]byte("bad"))
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)
	res = b.DeliverTx([]byte("panic"))
	assert.Equal(t, errors.ErrPanic.ABCICode(), res.Code)

	handler.DeliverErr = errors.ErrUnauthorized
	res = b.DeliverTx([]byte("tx"))
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), res.Code)
}
