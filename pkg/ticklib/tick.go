package ticklib

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/yimingwow/ticklib/pkg"
	"github.com/yimingwow/ticklib/pkg/word"
	"lukechampine.com/uint128"
)

// Tick is the base-1.0001 logarithm of a price, rounded down.
type Tick int64

func (t Tick) InRange() bool {
	return t >= MinTick && t <= MaxTick
}

// TickFromNormalizedRatio returns the greatest tick whose ratio is at most
// mantissa * 2^-exp. The ratio must be normalized and within
// [MinRatio, MaxRatio]; outside that range the call fails with
// ErrRatioTooLow or ErrRatioTooHigh.
func TickFromNormalizedRatio(mantissa uint128.Uint128, exp uint64) (Tick, error) {
	r := Ratio{Mantissa: mantissa, Exp: exp}
	if r.Less(MinRatio) {
		return 0, fmt.Errorf("ratio %s: %w", r, pkg.ErrRatioTooLow)
	}
	if MaxRatio.Less(r) {
		return 0, fmt.Errorf("ratio %s: %w", r, pkg.ErrRatioTooHigh)
	}
	if !r.IsNormalized() {
		return 0, fmt.Errorf("ratio %s: %w", r, pkg.ErrNotNormalized)
	}

	// Integer part of log2 is 127-exp. The 13 bits after the point come from
	// squaring the mantissa: each square doubles log2, and an overflow past
	// bit 128 means the next bit is 1.
	log2Ratio := word.Shl(64, word.FromInt64(MantissaBitsMinusOne-int64(exp)))
	mpow := r.mantissaWord()
	for bit := uint(63); bit > 50; bit-- {
		sq, err := word.Mul(mpow, mpow)
		if err != nil {
			return 0, fmt.Errorf("log2 of %s: %w", r, err)
		}
		mpow = word.Shr(MantissaBitsMinusOne, sq)
		highBit := word.Shr(MantissaBits, mpow)
		log2Ratio = word.Or(log2Ratio, word.Shl(bit, highBit))
		mpow = word.Shr(uint(highBit[0]), mpow)
	}

	logBp, err := word.SMul(log2Ratio, logBp2x64)
	if err != nil {
		return 0, fmt.Errorf("log base 1.0001 of %s: %w", r, err)
	}
	low, err := word.SSub(logBp, errLow)
	if err != nil {
		return 0, err
	}
	high, err := word.SAdd(logBp, errHigh)
	if err != nil {
		return 0, err
	}
	tickLow, okLow := word.ToInt64(word.SShr(MantissaBits, low))
	tickHigh, okHigh := word.ToInt64(word.SShr(MantissaBits, high))
	if !okLow || !okHigh {
		return 0, fmt.Errorf("tick candidate of %s does not fit int64: %w", r, pkg.ErrOverflow)
	}

	if tickLow == tickHigh {
		return Tick(tickLow), nil
	}
	highRatio, err := RatioFromTick(Tick(tickHigh))
	if err != nil {
		return 0, err
	}
	if r.Less(highRatio) {
		return Tick(tickLow), nil
	}
	return Tick(tickHigh), nil
}

// TickFromRatio normalizes mantissa * 2^-exp first, then calls
// TickFromNormalizedRatio.
func TickFromRatio(mantissa uint256.Int, exp int64) (Tick, error) {
	r, err := NormalizeRatio(mantissa, exp)
	if err != nil {
		return 0, err
	}
	return r.Tick()
}

// Bin is a tick index in units of a market's tick spacing.
type Bin int64

// Tick returns bin * tickSpacing.
func (b Bin) Tick(tickSpacing uint64) (Tick, error) {
	if tickSpacing == 0 {
		return 0, fmt.Errorf("bin %d: %w", b, pkg.ErrZeroTickSpacing)
	}
	t := int64(b) * int64(tickSpacing)
	if tickSpacing > uint64(MaxTick) || t/int64(tickSpacing) != int64(b) {
		return 0, fmt.Errorf("bin %d spacing %d: %w", b, tickSpacing, pkg.ErrOverflow)
	}
	return Tick(t), nil
}

// NearestBin returns the bin whose tick is the smallest one not below tick,
// so an offer placed there never quotes a better price than requested.
func NearestBin(tick Tick, tickSpacing uint64) (Bin, error) {
	if tickSpacing == 0 {
		return 0, fmt.Errorf("nearest bin of tick %d: %w", tick, pkg.ErrZeroTickSpacing)
	}
	if tickSpacing > uint64(MaxTick) {
		return 0, fmt.Errorf("tick spacing %d: %w", tickSpacing, pkg.ErrOverflow)
	}
	spacing := int64(tickSpacing)
	bin := int64(tick) / spacing
	if tick > 0 && int64(tick)%spacing != 0 {
		bin++
	}
	return Bin(bin), nil
}
