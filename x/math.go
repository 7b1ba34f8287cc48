package x

import (
	"math/bits"

	"github.com/iov-one/custody/errors"
)

// AddUint64 returns a + b or ErrOverflow if the result does not fit.
func AddUint64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return sum, nil
}

// SubUint64 returns a - b or ErrInsufficientFunds if b is greater than a.
func SubUint64(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, errors.Wrapf(errors.ErrInsufficientFunds, "have %d, need %d", a, b)
	}
	return diff, nil
}

// MulUint64 returns a * b or ErrOverflow if the result does not fit.
func MulUint64(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d", a, b)
	}
	return lo, nil
}
