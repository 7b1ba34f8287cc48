package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmdTransactionView(t *testing.T) {
	var input bytes.Buffer
	require.NoError(t, cmdMintTo(nil, &input, []string{
		"-mint", "0000000000000001",
		"-account", "0000000000000002",
		"-authority", "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0",
		"-amount", "1000",
	}))

	var output bytes.Buffer
	require.NoError(t, cmdTransactionView(&input, &output, nil))
	assert.Contains(t, output.String(), `"Path": "token/mint_to"`)
	assert.Contains(t, output.String(), `"Authority": "E28AE9A6EB94FC88B73EB7CBD6B87BF93EB9BEF0"`)
	assert.Contains(t, output.String(), `"Amount": 1000`)

	assert.Error(t, cmdTransactionView(&bytes.Buffer{}, &output, nil), "empty input")
}
