package custody_test

import (
	"encoding/json"
	"testing"

	custody "github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionParsing(t *testing.T) {
	Convey("A condition keeps its three sections", t, func() {
		cond := custody.NewCondition("escrow", "rec", []byte{0, 1, 2})
		ext, typ, data, err := cond.Parse()
		So(err, ShouldBeNil)
		So(ext, ShouldEqual, "escrow")
		So(typ, ShouldEqual, "rec")
		So(data, ShouldResemble, []byte{0, 1, 2})
		So(cond.Validate(), ShouldBeNil)
		So(cond.String(), ShouldEqual, "escrow/rec/000102")
	})

	Convey("Malformed conditions are rejected", t, func() {
		for _, raw := range []string{"", "no-slashes", "a/b/c", "escrow/rec/"} {
			So(errors.ErrInput.Is(custody.Condition(raw).Validate()), ShouldBeTrue)
		}
	})

	Convey("Addresses are derived deterministically", t, func() {
		a := custody.NewCondition("sigs", "ed25519", []byte("key")).Address()
		b := custody.NewCondition("sigs", "ed25519", []byte("key")).Address()
		c := custody.NewCondition("sigs", "ed25519", []byte("other")).Address()
		So(a, ShouldHaveLength, custody.AddressLength)
		So(a.Equals(b), ShouldBeTrue)
		So(a.Equals(c), ShouldBeFalse)
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	addr := custody.NewCondition("foo", "bar", []byte("conditiondata")).Address()
	b32, err := addr.Bech32()
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr custody.Address
	}{
		"default decoding": {
			json:     `"` + addr.String() + `"`,
			wantAddr: addr,
		},
		"hex decoding": {
			json:     `"hex:` + addr.String() + `"`,
			wantAddr: addr,
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: addr,
		},
		"bech32 decoding": {
			json:     `"bech32:` + b32 + `"`,
			wantAddr: addr,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"invalid address length": {
			json:    `"0102"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a custody.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantAddr, a)
			}
		})
	}
}

func TestAddressJSONRoundtrip(t *testing.T) {
	addr := custody.NewCondition("foo", "bar", []byte("x")).Address()
	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	var got custody.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, custody.Address(nil).IsZero())
	assert.True(t, custody.Address(make([]byte, 20)).IsZero())
	assert.False(t, custody.NewAddress([]byte("a")).IsZero())
}
