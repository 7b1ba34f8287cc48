package custody

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type nopQuery struct{}

func (nopQuery) Query(ReadOnlyKVStore, string, []byte) ([]Model, error) {
	return nil, nil
}

func TestQueryRouter(t *testing.T) {
	r := NewQueryRouter()
	r.RegisterAll(
		func(qr QueryRouter) { qr.Register("/escrows", nopQuery{}) },
		func(qr QueryRouter) { qr.Register("/cash", nopQuery{}) },
	)
	r.Register("/", nopQuery{})

	assert.Equal(t, []string{"/", "/cash", "/escrows"}, r.Paths())
	assert.NotNil(t, r.Handler("/cash"))
	assert.Nil(t, r.Handler("/tokens"))

	assert.Panics(t, func() { r.Register("/cash", nopQuery{}) }, "duplicate")
	assert.Panics(t, func() { r.Register("cash", nopQuery{}) }, "no slash")
	assert.Panics(t, func() { r.Register("/Cash", nopQuery{}) }, "upper case")
	assert.Panics(t, func() { r.Register("/cash/", nopQuery{}) }, "trailing slash")
}
