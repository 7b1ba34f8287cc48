package main

import (
	"bytes"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeygenKeyaddr(t *testing.T) {
	path, cleanup := tempKeyPath(t)
	defer cleanup()

	require.NoError(t, cmdKeygen(nil, nil, []string{"-key", path}))
	assert.Error(t, cmdKeygen(nil, nil, []string{"-key", path}), "existing key must not be overwritten")

	key, err := decodePrivateKey(path)
	require.NoError(t, err)

	var output bytes.Buffer
	require.NoError(t, cmdKeyaddr(nil, &output, []string{"-key", path}))
	assert.Equal(t, key.PublicKey().Address().String(), strings.TrimSpace(output.String()))
}

func TestDecodeInvalidKey(t *testing.T) {
	path, cleanup := tempKeyPath(t)
	defer cleanup()

	_, err := decodePrivateKey(path)
	assert.Error(t, err, "missing file")

	require.NoError(t, ioutil.WriteFile(path, []byte("too short"), 0600))
	_, err = decodePrivateKey(path)
	assert.Error(t, err)
}
