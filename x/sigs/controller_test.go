package sigs

import (
	"bytes"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/crypto"
	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSignBytes(t *testing.T) {
	a, err := BuildSignBytes([]byte("foo"), "chain-one", 2)
	require.NoError(t, err)
	b, err := BuildSignBytes([]byte("foo"), "chain-one", 3)
	require.NoError(t, err)
	c, err := BuildSignBytes([]byte("foo"), "chain-two", 2)
	require.NoError(t, err)
	again, err := BuildSignBytes([]byte("foo"), "chain-one", 2)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.True(t, bytes.Equal(a, again))
	assert.False(t, bytes.Equal(a, b))
	assert.False(t, bytes.Equal(a, c))

	if _, err := BuildSignBytes([]byte("foo"), "chain-one", -1); !ErrInvalidSequence.Is(err) {
		t.Fatalf("negative sequence: %+v", err)
	}
	if _, err := BuildSignBytes([]byte("foo"), "x", 0); !errors.ErrInput.Is(err) {
		t.Fatalf("invalid chain id: %+v", err)
	}
}

func TestUserDataSequence(t *testing.T) {
	pub := crypto.GenPrivKeyEd25519().PublicKey()
	user := &UserData{Metadata: &custody.Metadata{Schema: 1}, Pubkey: pub}
	require.NoError(t, user.Validate())

	require.NoError(t, user.CheckAndIncrementSequence(0))
	assert.Equal(t, int64(1), user.Sequence)
	if err := user.CheckAndIncrementSequence(0); !ErrInvalidSequence.Is(err) {
		t.Fatalf("stale sequence: %+v", err)
	}

	user.Sequence = maxSequenceValue
	if err := user.CheckAndIncrementSequence(maxSequenceValue); !errors.ErrOverflow.Is(err) {
		t.Fatalf("sequence overflow: %+v", err)
	}

	raw, err := user.Marshal()
	require.NoError(t, err)
	var loaded UserData
	require.NoError(t, loaded.Unmarshal(raw))
	assert.Equal(t, *user, loaded)
}

func TestStdSignatureValidate(t *testing.T) {
	priv := crypto.GenPrivKeyEd25519()
	sig, err := priv.Sign([]byte("msg"))
	require.NoError(t, err)

	cases := map[string]struct {
		sig     StdSignature
		wantErr *errors.Error
	}{
		"valid":             {sig: StdSignature{Pubkey: priv.PublicKey(), Signature: sig}},
		"negative sequence": {sig: StdSignature{Sequence: -2, Pubkey: priv.PublicKey(), Signature: sig}, wantErr: ErrInvalidSequence},
		"missing pubkey":    {sig: StdSignature{Signature: sig}, wantErr: errors.ErrUnauthorized},
		"missing signature": {sig: StdSignature{Pubkey: priv.PublicKey()}, wantErr: errors.ErrUnauthorized},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if err := tc.sig.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
