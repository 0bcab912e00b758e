// Package ticklib converts between ticks, ratios and volumes.
//
// A tick t stands for the price 1.0001^t. A Ratio is a binary float with a
// 128-bit mantissa, value Mantissa * 2^-Exp. Every operation is exact
// integer arithmetic, so results match the on-chain library bit for bit.
package ticklib

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
	"github.com/yimingwow/ticklib/pkg"
	"github.com/yimingwow/ticklib/pkg/bitlib"
	"github.com/yimingwow/ticklib/pkg/word"
	"lukechampine.com/uint128"
)

// Ratio is Mantissa * 2^-Exp. Normalized ratios have bit 127 of the
// mantissa set, which makes the (Exp, Mantissa) ordering total.
type Ratio struct {
	Mantissa uint128.Uint128
	Exp      uint64
}

func (r Ratio) IsNormalized() bool {
	return r.Mantissa.Hi>>63 == 1
}

// Less reports r < o. Both must be normalized.
func (r Ratio) Less(o Ratio) bool {
	if r.Exp != o.Exp {
		return r.Exp > o.Exp
	}
	return r.Mantissa.Cmp(o.Mantissa) < 0
}

func (r Ratio) Cmp(o Ratio) int {
	switch {
	case r.Less(o):
		return -1
	case o.Less(r):
		return 1
	default:
		return 0
	}
}

// InRange reports MinRatio <= r <= MaxRatio.
func (r Ratio) InRange() bool {
	return !r.Less(MinRatio) && !MaxRatio.Less(r)
}

// Tick is TickFromNormalizedRatio(r.Mantissa, r.Exp).
func (r Ratio) Tick() (Tick, error) {
	return TickFromNormalizedRatio(r.Mantissa, r.Exp)
}

func (r Ratio) String() string {
	return fmt.Sprintf("%s * 2^-%d", r.Mantissa, r.Exp)
}

func (r Ratio) mantissaWord() uint256.Int {
	return uint256.Int{r.Mantissa.Lo, r.Mantissa.Hi, 0, 0}
}

// NormalizeRatio shifts mantissa until bit 127 is its highest set bit and
// adjusts exp to keep the value. A ratio needing a negative exponent is above
// MaxRatio and fails with ErrRatioTooHigh.
func NormalizeRatio(mantissa uint256.Int, exp int64) (Ratio, error) {
	if mantissa.IsZero() {
		return Ratio{}, fmt.Errorf("normalize: %w", pkg.ErrZeroMantissa)
	}
	shift := MantissaBitsMinusOne - int64(bitlib.Fls(mantissa))
	if shift > 0 && exp > math.MaxInt64-shift {
		return Ratio{}, fmt.Errorf("normalize: exponent %d: %w", exp, pkg.ErrRatioTooLow)
	}
	if shift < 0 {
		mantissa = word.Shr(uint(-shift), mantissa)
	} else {
		mantissa = word.Shl(uint(shift), mantissa)
	}
	exp += shift
	if exp < 0 {
		return Ratio{}, fmt.Errorf("normalize: negative exponent %d: %w", exp, pkg.ErrRatioTooHigh)
	}
	return Ratio{Mantissa: uint128.New(mantissa[0], mantissa[1]), Exp: uint64(exp)}, nil
}

// RatioFromTick returns 1.0001^tick as a normalized ratio, rounded down in
// the mantissa.
func RatioFromTick(tick Tick) (Ratio, error) {
	if !tick.InRange() {
		return Ratio{}, fmt.Errorf("tick %d: %w", tick, pkg.ErrTickOutOfRange)
	}
	absTick := uint64(tick)
	if tick < 0 {
		absTick = uint64(-tick)
	}

	// 1.0001^-|tick| by binary exponentiation in 128-bit fixed point
	man := fixedOne
	if absTick&1 != 0 {
		man = ratioTable[0]
	}
	var extraShift int64
	for i := 1; i < len(ratioTable); i++ {
		if absTick&(1<<i) == 0 {
			continue
		}
		prod, err := word.Mul(man, ratioTable[i])
		if err != nil {
			return Ratio{}, fmt.Errorf("ratio of tick %d: %w", tick, err)
		}
		man = word.Shr(MantissaBits, prod)
		extraShift += ratioShifts[i]
	}

	if tick > 0 {
		// invert: (2^256 - man) / man + 1 == floor(2^256 / man)
		q, err := word.Div(word.Neg(man), man)
		if err != nil {
			return Ratio{}, fmt.Errorf("invert ratio of tick %d: %w", tick, err)
		}
		if man, err = word.Add(q, word.One); err != nil {
			return Ratio{}, fmt.Errorf("invert ratio of tick %d: %w", tick, err)
		}
		extraShift = -extraShift
	}
	return NormalizeRatio(man, MantissaBits+extraShift)
}
