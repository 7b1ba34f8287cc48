package main

import (
	"bytes"
	"testing"

	"github.com/iov-one/custody/store"
	"github.com/iov-one/custody/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmdSignTransactionHappyPath(t *testing.T) {
	path, cleanup := tempKeyPath(t)
	defer cleanup()
	require.NoError(t, cmdKeygen(nil, nil, []string{"-key", path}))
	key, err := decodePrivateKey(path)
	require.NoError(t, err)

	var unsigned bytes.Buffer
	require.NoError(t, cmdSend(nil, &unsigned, []string{
		"-src", key.PublicKey().Address().String(),
		"-dst", "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0",
		"-amount", "5",
	}))

	var output bytes.Buffer
	args := []string{"-key", path, "-chain-id", "custody-test", "-seq", "0"}
	require.NoError(t, cmdSignTransaction(&unsigned, &output, args))

	tx, err := readTx(&output)
	require.NoError(t, err)
	require.Len(t, tx.Signatures, 1)

	signers, err := sigs.VerifyTxSignatures(store.MemStore(), tx, "custody-test")
	require.NoError(t, err)
	require.Len(t, signers, 1)
	assert.Equal(t, key.PublicKey().Address(), signers[0].Address())
}

func TestCmdSignTransactionRequiresChainID(t *testing.T) {
	var input bytes.Buffer
	require.NoError(t, cmdCreateMint(nil, &input, nil))
	err := cmdSignTransaction(&input, &bytes.Buffer{}, []string{"-chain-id", ""})
	assert.Error(t, err)
}
