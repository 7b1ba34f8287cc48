package cash

import (
	"context"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/gconf"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendHandler(t *testing.T) {
	alice := weavetest.NewCondition()
	bob := weavetest.NewCondition()

	cases := map[string]struct {
		signers   []custody.Condition
		msg       *SendMsg
		wantCheck *errors.Error
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"success": {
			signers:   []custody.Condition{alice},
			msg:       &SendMsg{Metadata: &custody.Metadata{Schema: 1}, Source: alice.Address(), Destination: bob.Address(), Amount: 40},
			wantAlice: 60,
			wantBob:   40,
		},
		"source must sign": {
			signers:   []custody.Condition{bob},
			msg:       &SendMsg{Metadata: &custody.Metadata{Schema: 1}, Source: alice.Address(), Destination: bob.Address(), Amount: 40},
			wantCheck: errors.ErrUnauthorized,
			wantErr:   errors.ErrUnauthorized,
			wantAlice: 100,
		},
		"insufficient funds": {
			signers:   []custody.Condition{alice},
			msg:       &SendMsg{Metadata: &custody.Metadata{Schema: 1}, Source: alice.Address(), Destination: bob.Address(), Amount: 101},
			wantErr:   errors.ErrInsufficientFunds,
			wantAlice: 100,
		},
		"zero amount is invalid": {
			signers:   []custody.Condition{alice},
			msg:       &SendMsg{Metadata: &custody.Metadata{Schema: 1}, Source: alice.Address(), Destination: bob.Address()},
			wantCheck: errors.ErrAmount,
			wantErr:   errors.ErrAmount,
			wantAlice: 100,
		},
		"metadata is required": {
			signers:   []custody.Condition{alice},
			msg:       &SendMsg{Source: alice.Address(), Destination: bob.Address(), Amount: 1},
			wantCheck: errors.ErrMetadata,
			wantErr:   errors.ErrMetadata,
			wantAlice: 100,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			c := NewController()
			require.NoError(t, c.SetBalance(db, alice.Address(), 100))

			h := NewSendHandler(&weavetest.Auth{Signers: tc.signers}, c)
			tx := &weavetest.Tx{Msg: tc.msg}
			ctx := context.Background()

			if _, err := h.Check(ctx, db.CacheWrap(), tx); !tc.wantCheck.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			if _, err := h.Deliver(ctx, db, tx); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			got, err := c.Balance(db, alice.Address())
			require.NoError(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = c.Balance(db, bob.Address())
			require.NoError(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestConfigHandler(t *testing.T) {
	owner := weavetest.NewCondition()
	db := store.MemStore()
	require.NoError(t, gconf.Save(db, gconfPkg, &Configuration{
		Metadata:        &custody.Metadata{Schema: 1},
		Owner:           owner.Address(),
		AccountOverhead: 128,
		BalancePerByte:  1,
	}))

	h := NewConfigHandler(&weavetest.Auth{Signer: owner})
	msg := &UpdateConfigurationMsg{
		Metadata: &custody.Metadata{Schema: 1},
		Patch:    &Configuration{BalancePerByte: 3},
	}
	_, err := h.Deliver(context.Background(), db, &weavetest.Tx{Msg: msg})
	require.NoError(t, err)

	min, err := NewController().MinimumBalance(db, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(390), min)

	stranger := NewConfigHandler(&weavetest.Auth{Signer: weavetest.NewCondition()})
	_, err = stranger.Deliver(context.Background(), db, &weavetest.Tx{Msg: msg})
	if !errors.ErrUnauthorized.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}
