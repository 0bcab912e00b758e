package ticklib

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/yimingwow/ticklib/pkg"
	"github.com/yimingwow/ticklib/pkg/bitlib"
	"github.com/yimingwow/ticklib/pkg/word"
	"lukechampine.com/uint128"
)

func checkVolume(name string, v uint256.Int) error {
	if v[3] != 0 || v[2] != 0 || v[1]>>63 != 0 {
		return fmt.Errorf("%s volume %s exceeds max safe volume %s: %w", name, v.Dec(), MaxSafeVolume, pkg.ErrVolumeTooLarge)
	}
	return nil
}

// RatioFromVolumes returns inbound/outbound as a normalized ratio, rounded
// down. A zero outbound gives MaxRatio; otherwise a zero inbound gives
// MinRatio. Both volumes must be at most MaxSafeVolume.
func RatioFromVolumes(inbound, outbound uint256.Int) (Ratio, error) {
	if err := checkVolume("inbound", inbound); err != nil {
		return Ratio{}, err
	}
	if err := checkVolume("outbound", outbound); err != nil {
		return Ratio{}, err
	}
	if outbound.IsZero() {
		return MaxRatio, nil
	}
	if inbound.IsZero() {
		return MinRatio, nil
	}

	ratio, err := word.Div(word.Shl(MantissaBits, inbound), outbound)
	if err != nil {
		return Ratio{}, err
	}
	// ratio >= 2 since inbound >= 1 and outbound < 2^127
	log2 := bitlib.Fls(ratio)
	if log2 > MantissaBitsMinusOne {
		diff := log2 - MantissaBitsMinusOne
		ratio = word.Shr(diff, ratio)
		return Ratio{Mantissa: uint128.New(ratio[0], ratio[1]), Exp: uint64(MantissaBits - diff)}, nil
	}
	diff := MantissaBitsMinusOne - log2
	ratio = word.Shl(diff, ratio)
	return Ratio{Mantissa: uint128.New(ratio[0], ratio[1]), Exp: uint64(MantissaBits + diff)}, nil
}

// TickFromVolumes returns the greatest tick whose price is at most
// inbound/outbound.
func TickFromVolumes(inbound, outbound uint256.Int) (Tick, error) {
	r, err := RatioFromVolumes(inbound, outbound)
	if err != nil {
		return 0, err
	}
	return r.Tick()
}

// InboundFromOutbound returns outbound * 1.0001^tick, rounded down.
func InboundFromOutbound(tick Tick, outbound uint256.Int) (uint256.Int, error) {
	prod, exp, err := scaleByTick(tick, outbound)
	if err != nil {
		return uint256.Int{}, err
	}
	return word.Shr(uint(exp), prod), nil
}

// InboundFromOutboundUp returns outbound * 1.0001^tick, rounded up.
func InboundFromOutboundUp(tick Tick, outbound uint256.Int) (uint256.Int, error) {
	prod, exp, err := scaleByTick(tick, outbound)
	if err != nil {
		return uint256.Int{}, err
	}
	return divExpUp(prod, exp)
}

// OutboundFromInbound returns inbound * 1.0001^-tick, rounded down.
func OutboundFromInbound(tick Tick, inbound uint256.Int) (uint256.Int, error) {
	return InboundFromOutbound(-tick, inbound)
}

// OutboundFromInboundUp returns inbound * 1.0001^-tick, rounded up.
func OutboundFromInboundUp(tick Tick, inbound uint256.Int) (uint256.Int, error) {
	return InboundFromOutboundUp(-tick, inbound)
}

func scaleByTick(tick Tick, amount uint256.Int) (uint256.Int, uint64, error) {
	r, err := RatioFromTick(tick)
	if err != nil {
		return uint256.Int{}, 0, err
	}
	prod, err := word.Mul(r.mantissaWord(), amount)
	if err != nil {
		return uint256.Int{}, 0, fmt.Errorf("amount %s at tick %d: %w", amount.Dec(), tick, err)
	}
	return prod, r.Exp, nil
}

// divExpUp returns ceil(a / 2^exp).
func divExpUp(a uint256.Int, exp uint64) (uint256.Int, error) {
	if exp >= word.Bits {
		if a.IsZero() {
			return a, nil
		}
		return word.One, nil
	}
	q := word.Shr(uint(exp), a)
	// ~(ONES << exp) keeps the bits shifted out
	if rem := word.And(a, word.Not(word.Shl(uint(exp), word.Ones))); rem.IsZero() {
		return q, nil
	}
	return word.Add(q, word.One)
}
