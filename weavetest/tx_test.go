package weavetest

import (
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxMarshal(t *testing.T) {
	tx := &Tx{Msg: &Msg{RoutePath: "escrow/initialize", Serialized: []byte{1, 2}}}
	raw, err := tx.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, raw)

	raw, err = (&Tx{}).Marshal()
	require.NoError(t, err)
	assert.Nil(t, raw)

	broken := &Tx{Msg: &Msg{}, Err: errors.ErrType}
	if _, err := broken.Marshal(); !errors.ErrType.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	if _, err := broken.GetMsg(); !errors.ErrType.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
	assert.Panics(t, func() { tx.Unmarshal(nil) })
}
