package token

import (
	"math"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db        custody.CacheableKVStore
	c         Controller
	authority custody.Address
	alice     custody.Address
	bob       custody.Address
	mint      []byte
	aliceAcc  []byte
	bobAcc    []byte
}

func newFixture(t *testing.T, aliceAmount uint64) fixture {
	t.Helper()
	f := fixture{
		db:        store.MemStore(),
		c:         NewController(),
		authority: weavetest.NewCondition().Address(),
		alice:     weavetest.NewCondition().Address(),
		bob:       weavetest.NewCondition().Address(),
	}
	var err error
	f.mint, err = f.c.CreateMint(f.db, f.authority, 6)
	require.NoError(t, err)
	f.aliceAcc, err = f.c.CreateAccount(f.db, f.mint, f.alice)
	require.NoError(t, err)
	f.bobAcc, err = f.c.CreateAccount(f.db, f.mint, f.bob)
	require.NoError(t, err)
	if aliceAmount > 0 {
		require.NoError(t, f.c.MintTo(f.db, f.mint, f.aliceAcc, f.authority, aliceAmount))
	}
	return f
}

func (f fixture) amount(t *testing.T, key []byte) uint64 {
	t.Helper()
	acc, err := f.c.Account(f.db, key)
	require.NoError(t, err)
	return acc.Amount
}

func TestCreateAndMint(t *testing.T) {
	f := newFixture(t, 1000)

	m, err := f.c.Mint(f.db, f.mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), m.Supply)
	assert.Equal(t, uint32(6), m.Decimals)

	acc, err := f.c.Account(f.db, f.aliceAcc)
	require.NoError(t, err)
	assert.Equal(t, f.alice, acc.Owner)
	assert.Equal(t, f.alice, acc.Authority, "owner is the initial authority")
	assert.Equal(t, uint64(1000), acc.Amount)

	if err := f.c.MintTo(f.db, f.mint, f.aliceAcc, f.alice, 1); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("only mint authority can mint: %+v", err)
	}
	if _, err := f.c.CreateAccount(f.db, []byte("missing"), f.alice); !errors.ErrNotFound.Is(err) {
		t.Fatalf("mint must exist: %+v", err)
	}

	other, err := f.c.CreateMint(f.db, f.authority, 0)
	require.NoError(t, err)
	if err := f.c.MintTo(f.db, other, f.aliceAcc, f.authority, 1); !errors.ErrInput.Is(err) {
		t.Fatalf("account of a different mint: %+v", err)
	}
}

func TestTransfer(t *testing.T) {
	cases := map[string]struct {
		authority func(f fixture) custody.Address
		amount    uint64
		bobFunds  uint64
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"success": {
			authority: func(f fixture) custody.Address { return f.alice },
			amount:    100,
			wantAlice: 900,
			wantBob:   100,
		},
		"wrong authority": {
			authority: func(f fixture) custody.Address { return f.bob },
			amount:    100,
			wantErr:   errors.ErrUnauthorized,
			wantAlice: 1000,
		},
		"insufficient funds": {
			authority: func(f fixture) custody.Address { return f.alice },
			amount:    1001,
			wantErr:   errors.ErrInsufficientFunds,
			wantAlice: 1000,
		},
		"zero amount": {
			authority: func(f fixture) custody.Address { return f.alice },
			wantErr:   errors.ErrAmount,
			wantAlice: 1000,
		},
		"destination overflow": {
			authority: func(f fixture) custody.Address { return f.alice },
			amount:    1,
			bobFunds:  math.MaxUint64,
			wantErr:   errors.ErrOverflow,
			wantAlice: 1000,
			wantBob:   math.MaxUint64,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, 1000)
			if tc.bobFunds > 0 {
				acc, err := f.c.Account(f.db, f.bobAcc)
				require.NoError(t, err)
				acc.Amount = tc.bobFunds
				_, err = f.c.accounts.Put(f.db, f.bobAcc, acc)
				require.NoError(t, err)
			}
			err := f.c.Transfer(f.db, f.aliceAcc, f.bobAcc, tc.authority(f), tc.amount)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			assert.Equal(t, tc.wantAlice, f.amount(t, f.aliceAcc))
			assert.Equal(t, tc.wantBob, f.amount(t, f.bobAcc))
		})
	}
}

func TestSetAuthority(t *testing.T) {
	f := newFixture(t, 1000)
	operator := weavetest.NewCondition().Address()

	if err := f.c.SetAuthority(f.db, f.aliceAcc, f.bob, operator); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("only current authority can delegate: %+v", err)
	}
	require.NoError(t, f.c.SetAuthority(f.db, f.aliceAcc, f.alice, operator))

	if err := f.c.Transfer(f.db, f.aliceAcc, f.bobAcc, f.alice, 10); !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("owner lost the authority: %+v", err)
	}
	require.NoError(t, f.c.Transfer(f.db, f.aliceAcc, f.bobAcc, operator, 10))
	assert.Equal(t, uint64(990), f.amount(t, f.aliceAcc))

	if err := f.c.SetAuthority(f.db, f.aliceAcc, operator, nil); !errors.ErrInput.Is(err) {
		t.Fatalf("new authority must be valid: %+v", err)
	}
}
