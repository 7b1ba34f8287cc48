package codec

import (
	"testing"

	"github.com/iov-one/custody/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	Name  string
	Count uint64
}

func (p *pair) Marshal() ([]byte, error) {
	return NewEncoder().String(1, p.Name).Uint64(2, p.Count).Result()
}

func (p *pair) Unmarshal(raw []byte) error {
	d := NewDecoder(raw)
	for {
		ok, err := d.Next()
		if err != nil || !ok {
			return err
		}
		switch d.Field() {
		case 1:
			p.Name, err = d.String()
		case 2:
			p.Count, err = d.Uint64()
		default:
			err = d.Skip()
		}
		if err != nil {
			return err
		}
	}
}

type failing struct{}

func (failing) Marshal() ([]byte, error) {
	return nil, errors.Wrap(errors.ErrState, "boom")
}

func TestEncoderWireFormat(t *testing.T) {
	cases := map[string]struct {
		enc  *Encoder
		want []byte
	}{
		"varint": {
			enc:  NewEncoder().Uint64(1, 150),
			want: []byte{0x08, 0x96, 0x01},
		},
		"string": {
			enc:  NewEncoder().String(2, "testing"),
			want: append([]byte{0x12, 0x07}, "testing"...),
		},
		"zero values are skipped": {
			enc:  NewEncoder().Uint64(1, 0).Bytes(2, nil).String(3, "").Bool(4, false).Int64(5, 0),
			want: nil,
		},
		"bool": {
			enc:  NewEncoder().Bool(3, true),
			want: []byte{0x18, 0x01},
		},
		"nested message": {
			enc:  NewEncoder().Message(3, &pair{Count: 1}),
			want: []byte{0x1a, 0x02, 0x10, 0x01},
		},
		"empty message is written": {
			enc:  NewEncoder().Message(3, &pair{}),
			want: []byte{0x1a, 0x00},
		},
		"typed nil message is skipped": {
			enc:  NewEncoder().Message(3, (*pair)(nil)),
			want: nil,
		},
		"repeated bytes keep empty elements": {
			enc:  NewEncoder().RepeatedBytes(1, [][]byte{{0xab}, nil}),
			want: []byte{0x0a, 0x01, 0xab, 0x0a, 0x00},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := tc.enc.Result()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncoderError(t *testing.T) {
	_, err := NewEncoder().Uint64(1, 3).Message(2, failing{}).Uint64(3, 4).Result()
	assert.True(t, errors.ErrState.Is(err))
}

func TestDecodeMessage(t *testing.T) {
	raw, err := NewEncoder().
		String(1, "alice").
		Uint64(7, 99). // unknown varint
		Bytes(8, []byte("ignored")).
		Uint64(2, 1<<40).
		Result()
	require.NoError(t, err)

	var p pair
	require.NoError(t, p.Unmarshal(raw))
	assert.Equal(t, pair{Name: "alice", Count: 1 << 40}, p)
}

func TestDecoderErrors(t *testing.T) {
	t.Run("wire type mismatch", func(t *testing.T) {
		raw, _ := NewEncoder().Uint64(1, 5).Result()
		var p pair
		assert.True(t, errors.ErrInput.Is(p.Unmarshal(raw)))
	})
	t.Run("truncated bytes", func(t *testing.T) {
		var p pair
		err := p.Unmarshal([]byte{0x0a, 0x05, 'a', 'b'})
		assert.True(t, errors.ErrInput.Is(err))
	})
	t.Run("field zero", func(t *testing.T) {
		var p pair
		assert.True(t, errors.ErrInput.Is(p.Unmarshal([]byte{0x00, 0x01})))
	})
	t.Run("uint32 overflow", func(t *testing.T) {
		raw, _ := NewEncoder().Uint64(1, 1<<32).Result()
		d := NewDecoder(raw)
		ok, err := d.Next()
		require.NoError(t, err)
		require.True(t, ok)
		_, err = d.Uint32()
		assert.True(t, errors.ErrOverflow.Is(err))
	})
	t.Run("empty bytes decode to nil", func(t *testing.T) {
		d := NewDecoder([]byte{0x0a, 0x00})
		ok, err := d.Next()
		require.NoError(t, err)
		require.True(t, ok)
		b, err := d.Bytes()
		require.NoError(t, err)
		assert.Nil(t, b)
	})
}

func TestSignedVarint(t *testing.T) {
	raw, err := NewEncoder().Int64(1, -2).Result()
	require.NoError(t, err)
	d := NewDecoder(raw)
	_, err = d.Next()
	require.NoError(t, err)
	v, err := d.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(-2), v)
}
