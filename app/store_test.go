package app

import (
	"context"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

const dummyKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	var value string
	if err := opts.ReadOptions(dummyKey, &value); err != nil {
		return err
	}
	return kv.Set([]byte(dummyKey), []byte(value))
}

type countInit struct {
	called int
}

func (c *countInit) FromGenesis(opts custody.Options, kv custody.KVStore) error {
	c.called++
	return nil
}

// keyQuery returns the value stored under the queried key.
type keyQuery struct{}

func (keyQuery) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	val, err := db.Get(data)
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	return []custody.Model{custody.Pair(data, val)}, nil
}

func TestLoadGenesis(t *testing.T) {
	cases := map[string]struct {
		file       string
		wantErr    *errors.Error
		wantChain  string
		wantCalled int
		wantValue  []byte
	}{
		"no such file": {
			file:    "testdata/missing.json",
			wantErr: errors.ErrInput,
		},
		"proper genesis": {
			file:       "testdata/genesis.json",
			wantChain:  "test-chain-67",
			wantCalled: 1,
			wantValue:  []byte("secret"),
		},
		"invalid app state": {
			file:      "testdata/bad_genesis.json",
			wantErr:   errors.ErrInput,
			wantChain: "super-chain-22",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c := new(countInit)
			init := ChainInitializers(dummyInit{}, c)
			s := NewStoreApp("foo", iavl.MockCommitStore(), custody.NewQueryRouter(), context.Background())
			assert.Equal(t, "", s.GetChainID())

			if err := s.LoadGenesis(tc.file, init); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.wantChain, s.GetChainID())
			assert.Equal(t, tc.wantCalled, c.called)
			val, err := s.DeliverStore().Get([]byte(dummyKey))
			require.NoError(t, err)
			assert.Equal(t, tc.wantValue, val)
		})
	}
}

func TestGenesisLoadedOnce(t *testing.T) {
	s := NewStoreApp("foo", iavl.MockCommitStore(), custody.NewQueryRouter(), context.Background())
	require.NoError(t, s.LoadGenesis("testdata/genesis.json", dummyInit{}))
	if err := s.LoadGenesis("testdata/genesis.json", dummyInit{}); !errors.ErrState.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestStoreAppCommitAndQuery(t *testing.T) {
	qr := custody.NewQueryRouter()
	qr.Register("/", keyQuery{})
	s := NewStoreApp("foo", iavl.MockCommitStore(), qr, context.Background())
	require.NoError(t, s.LoadGenesis("testdata/genesis.json", dummyInit{}))

	query := abci.RequestQuery{Path: "/", Data: []byte(dummyKey)}
	res := s.Query(query)
	require.Equal(t, uint32(0), res.Code, res.Log)
	var values ResultSet
	require.NoError(t, values.Unmarshal(res.Value))
	assert.Empty(t, values.Results, "uncommitted state is not visible")

	s.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	s.EndBlock(abci.RequestEndBlock{})
	commit := s.Commit()
	assert.NotEmpty(t, commit.Data)

	res = s.Query(query)
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, int64(1), res.Height)
	require.NoError(t, values.Unmarshal(res.Value))
	assert.Equal(t, [][]byte{[]byte("secret")}, values.Results)

	info := s.Info(abci.RequestInfo{})
	assert.Equal(t, "foo", info.Data)
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)

	res = s.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)
}
