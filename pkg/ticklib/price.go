package ticklib

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/yimingwow/ticklib/pkg"
)

// Decimal conversions are for display and config input. They are exact on
// the way out and floor on the way in, but allocate, so keep them off hot
// paths.

var five = big.NewInt(5)

// Decimal returns the exact decimal value of r: m / 2^e == m * 5^e / 10^e.
func (r Ratio) Decimal() decimal.Decimal {
	coef := r.Mantissa.Big()
	coef.Mul(coef, new(big.Int).Exp(five, new(big.Int).SetUint64(r.Exp), nil))
	return decimal.NewFromBigInt(coef, -int32(r.Exp))
}

// PriceFromTick returns 1.0001^tick as computed by RatioFromTick.
func PriceFromTick(tick Tick) (decimal.Decimal, error) {
	r, err := RatioFromTick(tick)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return r.Decimal(), nil
}

// RatioFromDecimal converts a positive decimal to a normalized ratio,
// rounding down.
func RatioFromDecimal(price decimal.Decimal) (Ratio, error) {
	switch price.Sign() {
	case 0:
		return Ratio{}, fmt.Errorf("price 0: %w", pkg.ErrZeroMantissa)
	case -1:
		return Ratio{}, fmt.Errorf("price %s: %w", price, pkg.ErrInvalidPrice)
	}
	coef := price.Coefficient()
	e := price.Exponent()
	if e >= 0 {
		coef.Mul(coef, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(e)), nil))
		if coef.BitLen() > 256 {
			return Ratio{}, fmt.Errorf("price %s: %w", price, pkg.ErrRatioTooHigh)
		}
		return NormalizeRatio(*uint256.MustFromBig(coef), 0)
	}

	// coef / 10^-e, scaled by 2^shift so the quotient keeps at least 128 bits
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(-int64(e)), nil)
	shift := MantissaBits + den.BitLen() - coef.BitLen() + 1
	if shift < 0 {
		shift = 0
	}
	q := new(big.Int).Lsh(coef, uint(shift))
	q.Quo(q, den)
	if q.BitLen() > 256 {
		return Ratio{}, fmt.Errorf("price %s: %w", price, pkg.ErrRatioTooHigh)
	}
	return NormalizeRatio(*uint256.MustFromBig(q), int64(shift))
}

// TickFromPrice returns the greatest tick whose price is at most price.
func TickFromPrice(price decimal.Decimal) (Tick, error) {
	r, err := RatioFromDecimal(price)
	if err != nil {
		return 0, err
	}
	return r.Tick()
}
