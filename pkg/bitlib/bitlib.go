// Package bitlib provides bit scans over machine words with the same
// sentinels the on-chain library uses.
package bitlib

import (
	"math/bits"

	"github.com/holiman/uint256"
)

// Ctz64 counts trailing zeros in the low 64 bits of x. It returns 64 when
// those bits are all zero, whatever the upper bits hold.
func Ctz64(x uint256.Int) uint {
	return uint(bits.TrailingZeros64(x[0]))
}

// Fls returns the index of the most significant set bit of x, or 256 if x is 0.
func Fls(x uint256.Int) uint {
	if x.IsZero() {
		return 256
	}
	return uint(x.BitLen() - 1)
}
