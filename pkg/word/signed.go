package word

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
	"github.com/yimingwow/ticklib/pkg"
)

// Signed values are 256-bit two's complement, stored in the same uint256.Int.

var (
	// MaxSigned is 2^255 - 1.
	MaxSigned = uint256.Int{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0) >> 1}
	// MinSigned is -2^255.
	MinSigned = uint256.Int{0, 0, 0, 1 << 63}
)

func FromInt64(v int64) uint256.Int {
	if v >= 0 {
		return FromUint64(uint64(v))
	}
	// -v overflows for MinInt64; the uint64 conversion of v wraps to the right magnitude.
	return Neg(FromUint64(uint64(-(v + 1)) + 1))
}

// ToInt64 converts a signed word, reporting false if it does not fit.
func ToInt64(x uint256.Int) (int64, bool) {
	if !IsNegative(x) {
		if !x.IsUint64() || x.Uint64() > math.MaxInt64 {
			return 0, false
		}
		return int64(x.Uint64()), true
	}
	abs := Neg(x)
	if !abs.IsUint64() || abs.Uint64() > 1<<63 {
		return 0, false
	}
	return -int64(abs.Uint64()-1) - 1, true
}

func IsNegative(x uint256.Int) bool {
	return x[3]>>63 == 1
}

// SShr is the arithmetic right shift. n >= 256 yields 0 or -1.
func SShr(n uint, x uint256.Int) uint256.Int {
	if n >= Bits {
		if IsNegative(x) {
			return Ones
		}
		return uint256.Int{}
	}
	var z uint256.Int
	z.SRsh(&x, n)
	return z
}

// SLt reports x < y as signed values.
func SLt(x, y uint256.Int) bool {
	return x.Slt(&y)
}

// SAdd returns x + y as signed values.
func SAdd(x, y uint256.Int) (uint256.Int, error) {
	var z uint256.Int
	z.Add(&x, &y)
	nx, ny, nz := IsNegative(x), IsNegative(y), IsNegative(z)
	switch {
	case !nx && !ny && nz:
		return uint256.Int{}, fmt.Errorf("signed add: %w", pkg.ErrOverflow)
	case nx && ny && !nz:
		return uint256.Int{}, fmt.Errorf("signed add: %w", pkg.ErrUnderflow)
	}
	return z, nil
}

// SSub returns x - y as signed values.
func SSub(x, y uint256.Int) (uint256.Int, error) {
	var z uint256.Int
	z.Sub(&x, &y)
	nx, ny, nz := IsNegative(x), IsNegative(y), IsNegative(z)
	switch {
	case !nx && ny && nz:
		return uint256.Int{}, fmt.Errorf("signed sub: %w", pkg.ErrOverflow)
	case nx && !ny && !nz:
		return uint256.Int{}, fmt.Errorf("signed sub: %w", pkg.ErrUnderflow)
	}
	return z, nil
}

// SMul returns x * y as signed values.
func SMul(x, y uint256.Int) (uint256.Int, error) {
	negative := IsNegative(x) != IsNegative(y)
	ax, ay := abs(x), abs(y)

	var p uint256.Int
	_, overflow := p.MulOverflow(&ax, &ay)
	switch {
	case overflow && negative:
		return uint256.Int{}, fmt.Errorf("signed mul: %w", pkg.ErrUnderflow)
	case overflow:
		return uint256.Int{}, fmt.Errorf("signed mul: %w", pkg.ErrOverflow)
	}

	if !negative {
		if IsNegative(p) {
			return uint256.Int{}, fmt.Errorf("signed mul: %w", pkg.ErrOverflow)
		}
		return p, nil
	}
	// |MinSigned| is the only magnitude with the top bit set that still fits.
	if p.Gt(&MinSigned) {
		return uint256.Int{}, fmt.Errorf("signed mul: %w", pkg.ErrUnderflow)
	}
	return Neg(p), nil
}

// abs returns the magnitude as an unsigned word; abs(MinSigned) is 2^255.
func abs(x uint256.Int) uint256.Int {
	if IsNegative(x) {
		return Neg(x)
	}
	return x
}
