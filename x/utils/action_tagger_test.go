package utils_test

import (
	"context"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/x/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/common"
)

func stringTag(key, value string) common.KVPair {
	return common.KVPair{
		Key:   []byte(key),
		Value: []byte(value),
	}
}

func TestActionTagger(t *testing.T) {
	cases := map[string]struct {
		handler custody.Handler
		tx      custody.Tx
		err     *errors.Error
		tags    []common.KVPair
	}{
		"simple call": {
			handler: &weavetest.Handler{},
			tx:      &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/initialize"}},
			tags: []common.KVPair{
				stringTag(utils.ActionKey, "escrow/initialize"),
				stringTag(utils.ModuleKey, "escrow"),
			},
		},
		"path without a module": {
			handler: &weavetest.Handler{},
			tx:      &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "ping"}},
			tags:    []common.KVPair{stringTag(utils.ActionKey, "ping")},
		},
		"passes through error": {
			handler: &weavetest.Handler{DeliverErr: errors.ErrHuman},
			tx:      &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/initialize"}},
			err:     errors.ErrHuman,
		},
		"tags are additive": {
			handler: &weavetest.Handler{
				DeliverResult: custody.DeliverResult{Tags: []common.KVPair{stringTag("escrow", "0001")}},
			},
			tx:   &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "escrow/distribute_native"}},
			tags: []common.KVPair{
				stringTag("escrow", "0001"),
				stringTag(utils.ActionKey, "escrow/distribute_native"),
				stringTag(utils.ModuleKey, "escrow"),
			},
		},
		"broken transaction is not dispatched": {
			handler: &weavetest.Handler{},
			tx:      &weavetest.Tx{Err: errors.ErrInput},
			err:     errors.ErrInput,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			stack := weavetest.Decorate(tc.handler, utils.NewActionTagger())
			res, err := stack.Deliver(context.Background(), store.MemStore(), tc.tx)
			if tc.err != nil {
				if !tc.err.Is(err) {
					t.Fatalf("unexpected error type returned: %v", err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.tags, res.Tags)
		})
	}
}
