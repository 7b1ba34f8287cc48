package cash

import (
	"math"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerBalances(t *testing.T) {
	db := store.MemStore()
	c := NewController()
	addr := weavetest.NewCondition().Address()

	balance, err := c.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance, "missing account has zero balance")

	require.NoError(t, c.SetAccountSize(db, addr, 165))
	require.NoError(t, c.SetBalance(db, addr, 1234))

	balance, err = c.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), balance)
	size, err := c.AccountSize(db, addr)
	require.NoError(t, err)
	assert.Equal(t, uint32(165), size, "setting balance keeps account size")

	if _, err := c.Balance(db, custody.Address("short")); !errors.ErrInput.Is(err) {
		t.Fatalf("invalid address: %+v", err)
	}
}

func TestControllerMoveCoins(t *testing.T) {
	src := weavetest.NewCondition().Address()
	dest := weavetest.NewCondition().Address()

	cases := map[string]struct {
		srcBalance  uint64
		destBalance uint64
		amount      uint64
		wantErr     *errors.Error
		wantSrc     uint64
		wantDest    uint64
	}{
		"success": {
			srcBalance: 100, destBalance: 7, amount: 30,
			wantSrc: 70, wantDest: 37,
		},
		"whole balance": {
			srcBalance: 100, amount: 100,
			wantSrc: 0, wantDest: 100,
		},
		"insufficient funds": {
			srcBalance: 10, destBalance: 1, amount: 11,
			wantErr: errors.ErrInsufficientFunds,
			wantSrc: 10, wantDest: 1,
		},
		"destination overflow": {
			srcBalance: 10, destBalance: math.MaxUint64, amount: 1,
			wantErr: errors.ErrOverflow,
			wantSrc: 10, wantDest: math.MaxUint64,
		},
		"zero amount": {
			srcBalance: 10, amount: 0,
			wantErr: errors.ErrAmount,
			wantSrc: 10,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			c := NewController()
			require.NoError(t, c.SetBalance(db, src, tc.srcBalance))
			require.NoError(t, c.SetBalance(db, dest, tc.destBalance))

			if err := c.MoveCoins(db, src, dest, tc.amount); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}

			got, err := c.Balance(db, src)
			require.NoError(t, err)
			assert.Equal(t, tc.wantSrc, got)
			got, err = c.Balance(db, dest)
			require.NoError(t, err)
			assert.Equal(t, tc.wantDest, got)
		})
	}

	if err := NewController().MoveCoins(store.MemStore(), src, src, 1); !errors.ErrInput.Is(err) {
		t.Fatalf("self transfer: %+v", err)
	}
}

func TestControllerMinimumBalance(t *testing.T) {
	db := store.MemStore()
	c := NewController()

	if _, err := c.MinimumBalance(db, 10); !errors.ErrNotFound.Is(err) {
		t.Fatalf("missing configuration: %+v", err)
	}

	conf := Configuration{
		Metadata:        &custody.Metadata{Schema: 1},
		AccountOverhead: 128,
		BalancePerByte:  2,
	}
	require.NoError(t, gconf.Save(db, gconfPkg, &conf))
	min, err := c.MinimumBalance(db, 22)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), min)

	conf.BalancePerByte = math.MaxUint64
	require.NoError(t, gconf.Save(db, gconfPkg, &conf))
	if _, err := c.MinimumBalance(db, 22); !errors.ErrOverflow.Is(err) {
		t.Fatalf("overflow: %+v", err)
	}
}
