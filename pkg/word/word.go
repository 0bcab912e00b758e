// Package word implements the 256-bit machine word the tick and density math
// runs on. Shifts and bitwise operations wrap modulo 2^256. Add, sub, mul and
// div are checked and return errors instead of wrapping.
//
// Values are passed and returned as uint256.Int arrays so nothing escapes to
// the heap on the hot paths.
package word

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/yimingwow/ticklib/pkg"
)

// Bits is the width of a word.
const Bits = 256

var (
	Zero = uint256.Int{}
	One  = uint256.Int{1, 0, 0, 0}
	// Ones has every bit set.
	Ones = uint256.Int{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
)

func FromUint64(v uint64) uint256.Int {
	return uint256.Int{v, 0, 0, 0}
}

// MustFromDecimal parses a base-10 constant. It panics on malformed input and
// is meant for package-level tables only.
func MustFromDecimal(s string) uint256.Int {
	return *uint256.MustFromDecimal(s)
}

// MustFromHex parses a 0x-prefixed constant without leading zeros.
func MustFromHex(s string) uint256.Int {
	return *uint256.MustFromHex(s)
}

// Shl returns x << n truncated to 256 bits. n >= 256 yields 0.
func Shl(n uint, x uint256.Int) uint256.Int {
	var z uint256.Int
	if n >= Bits {
		return z
	}
	z.Lsh(&x, n)
	return z
}

// Shr returns x >> n. n >= 256 yields 0.
func Shr(n uint, x uint256.Int) uint256.Int {
	var z uint256.Int
	if n >= Bits {
		return z
	}
	z.Rsh(&x, n)
	return z
}

func Not(x uint256.Int) uint256.Int {
	var z uint256.Int
	z.Not(&x)
	return z
}

func And(x, y uint256.Int) uint256.Int {
	var z uint256.Int
	z.And(&x, &y)
	return z
}

func Or(x, y uint256.Int) uint256.Int {
	var z uint256.Int
	z.Or(&x, &y)
	return z
}

// Neg returns 0 - x modulo 2^256.
func Neg(x uint256.Int) uint256.Int {
	var z uint256.Int
	z.Neg(&x)
	return z
}

// Add returns x + y, or ErrOverflow if the sum does not fit in 256 bits.
func Add(x, y uint256.Int) (uint256.Int, error) {
	var z uint256.Int
	if _, overflow := z.AddOverflow(&x, &y); overflow {
		return uint256.Int{}, fmt.Errorf("add: %w", pkg.ErrOverflow)
	}
	return z, nil
}

// Sub returns x - y, or ErrUnderflow if y > x.
func Sub(x, y uint256.Int) (uint256.Int, error) {
	var z uint256.Int
	if _, underflow := z.SubOverflow(&x, &y); underflow {
		return uint256.Int{}, fmt.Errorf("sub: %w", pkg.ErrUnderflow)
	}
	return z, nil
}

// Mul returns x * y, or ErrOverflow if the product does not fit in 256 bits.
func Mul(x, y uint256.Int) (uint256.Int, error) {
	var z uint256.Int
	if _, overflow := z.MulOverflow(&x, &y); overflow {
		return uint256.Int{}, fmt.Errorf("mul: %w", pkg.ErrOverflow)
	}
	return z, nil
}

// Div returns floor(x / y).
func Div(x, y uint256.Int) (uint256.Int, error) {
	if y.IsZero() {
		return uint256.Int{}, fmt.Errorf("div: %w", pkg.ErrDivisionByZero)
	}
	var z uint256.Int
	z.Div(&x, &y)
	return z, nil
}

// Pow10 returns 10^n, or ErrOverflow for n > 77.
func Pow10(n uint) (uint256.Int, error) {
	z := One
	ten := FromUint64(10)
	for i := uint(0); i < n; i++ {
		var err error
		if z, err = Mul(z, ten); err != nil {
			return uint256.Int{}, fmt.Errorf("10^%d: %w", n, err)
		}
	}
	return z, nil
}
