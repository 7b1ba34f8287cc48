package cash

import (
	"encoding/json"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	addr := weavetest.NewCondition().Address()
	genesis := `{
		"conf": {"cash": {"metadata": {"Schema": 1}, "account_overhead": 128, "balance_per_byte": 2}},
		"cash": [{"address": "` + addr.String() + `", "balance": 1000, "data_size": 10}]
	}`
	var opts custody.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	c := NewController()
	balance, err := c.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), balance)
	size, err := c.AccountSize(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), size)
	min, err := c.MinimumBalance(db, size)
	require.NoError(t, err)
	assert.Equal(t, uint64(276), min)
}

func TestGenesisRequiresConfiguration(t *testing.T) {
	var opts custody.Options
	require.NoError(t, json.Unmarshal([]byte(`{"cash": []}`), &opts))
	if err := (Initializer{}).FromGenesis(opts, store.MemStore()); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func TestGenesisInvalidAddress(t *testing.T) {
	genesis := `{
		"conf": {"cash": {"metadata": {"Schema": 1}}},
		"cash": [{"address": "", "balance": 1}]
	}`
	var opts custody.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))
	if err := (Initializer{}).FromGenesis(opts, store.MemStore()); !errors.ErrInput.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}
