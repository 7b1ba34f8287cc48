package app

import (
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/x/escrow"
	"github.com/iov-one/custody/x/sigs"
	"github.com/iov-one/custody/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxMessage(t *testing.T) {
	var tx Tx
	_, err := tx.GetMsg()
	assert.True(t, errors.ErrState.Is(err))

	msg := &escrow.DistributeNativeMsg{
		Metadata:    &custody.Metadata{Schema: 1},
		EscrowID:    []byte("escrow"),
		Destination: weavetest.NewCondition().Address(),
		Amount:      42,
	}
	require.NoError(t, tx.SetMsg(msg))
	got, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	err = tx.SetMsg(&token.MintToMsg{})
	assert.True(t, errors.ErrState.Is(err))

	err = (&Tx{}).SetMsg(&weavetest.Msg{RoutePath: "foo/bar"})
	assert.True(t, errors.ErrType.Is(err))

	tx.TokenMintToMsg = &token.MintToMsg{}
	_, err = tx.GetMsg()
	assert.True(t, errors.ErrState.Is(err))
}

func TestTxSerialization(t *testing.T) {
	key := crypto.GenPrivKeyEd25519()
	tx := &Tx{}
	require.NoError(t, tx.SetMsg(&escrow.InitializeMsg{
		Metadata: &custody.Metadata{Schema: 1},
		EscrowID: []byte("my-escrow"),
		Operator: key.PublicKey().Address(),
	}))

	unsigned, err := tx.GetSignBytes()
	require.NoError(t, err)

	sig, err := sigs.SignTx(key, tx, "custody-test", 3)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	signed, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, unsigned, signed, "signatures must not change sign bytes")

	raw, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := TxDecoder(raw)
	require.NoError(t, err)
	assert.Equal(t, tx, decoded)

	// a new signer is expected to start with sequence zero
	_, err = sigs.VerifyTxSignatures(store.MemStore(), decoded.(sigs.SignedTx), "custody-test")
	assert.True(t, sigs.ErrInvalidSequence.Is(err))
}
