// Package density encodes the minimum volume-per-gas an offer must carry as
// a 9-bit float: a 2-bit mantissa below an implicit leading one, and a 7-bit
// exponent. Values are decoded to 96.32 fixed point.
//
// Exponent 0 is subnormal: the packed bits are the value times 2^32. Exponent
// 1 never comes out of From96X32 and is rejected everywhere else.
package density

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/yimingwow/ticklib/pkg"
	"github.com/yimingwow/ticklib/pkg/bitlib"
	"github.com/yimingwow/ticklib/pkg/word"
)

const (
	MantissaBits = 2
	ExpBits      = 7
	Bits         = MantissaBits + ExpBits

	mantissaMask = 1<<MantissaBits - 1
	expMask      = 1<<ExpBits - 1
	mask         = 1<<Bits - 1

	// FractionalBits is the number of fractional bits of the decoded value.
	FractionalBits = 32
)

// Density is a packed 9-bit density. Build one with From96X32, Make or
// FromPacked; a bare conversion skips validation.
type Density uint16

// Make packs an explicit mantissa and exponent.
func Make(mantissa, exp uint64) (Density, error) {
	if mantissa > mantissaMask || exp > expMask {
		return 0, fmt.Errorf("mantissa %d exp %d: %w", mantissa, exp, pkg.ErrInvalidDensity)
	}
	return FromPacked(exp<<MantissaBits | mantissa)
}

// FromPacked validates a raw packed value.
func FromPacked(raw uint64) (Density, error) {
	d := Density(raw)
	if raw > mask {
		return 0, fmt.Errorf("packed value %#x: %w", raw, pkg.ErrInvalidDensity)
	}
	if err := d.validate(); err != nil {
		return 0, err
	}
	return d, nil
}

func (d Density) validate() error {
	if d > mask {
		return fmt.Errorf("packed value %#x: %w", uint16(d), pkg.ErrInvalidDensity)
	}
	if d.Exponent() == 1 {
		return fmt.Errorf("packed value %#x has exponent 1: %w", uint16(d), pkg.ErrInvalidDensity)
	}
	return nil
}

func (d Density) Mantissa() uint64 {
	return uint64(d) & mantissaMask
}

func (d Density) Exponent() uint64 {
	return uint64(d) >> MantissaBits & expMask
}

func (d Density) IsSubnormal() bool {
	return d.Exponent() < 2
}

// CheckDensity96X32 reports whether x fits the 96.32 representation.
func CheckDensity96X32(x uint256.Int) bool {
	return x[2] == 0 && x[3] == 0
}

// From96X32 packs a 96.32 value, rounding toward zero. The result is within
// 20% of x.
func From96X32(x uint256.Int) (Density, error) {
	if !CheckDensity96X32(x) {
		return 0, fmt.Errorf("value %s exceeds 128 bits: %w", x.Dec(), pkg.ErrInvalidDensity)
	}
	if x[0] <= mantissaMask && x[1] == 0 {
		return Density(x[0]), nil
	}
	exp := bitlib.Fls(x)
	m := word.Shr(exp-MantissaBits, x)[0] & mantissaMask
	return Density(uint64(exp)<<MantissaBits | m), nil
}

// To96X32 decodes d into 96.32 fixed point.
func (d Density) To96X32() (uint256.Int, error) {
	if err := d.validate(); err != nil {
		return uint256.Int{}, err
	}
	if d <= mantissaMask {
		return word.FromUint64(uint64(d)), nil
	}
	m := word.FromUint64(d.Mantissa() | 1<<MantissaBits)
	return word.Shl(uint(d.Exponent()-MantissaBits), m), nil
}

// Multiply returns floor(m * d).
func (d Density) Multiply(m uint256.Int) (uint256.Int, error) {
	part, err := d.mul(m)
	if err != nil {
		return uint256.Int{}, err
	}
	return word.Shr(FractionalBits, part), nil
}

// MultiplyUp returns ceil(m * d). It exceeds Multiply by at most 1.
func (d Density) MultiplyUp(m uint256.Int) (uint256.Int, error) {
	part, err := d.mul(m)
	if err != nil {
		return uint256.Int{}, err
	}
	q := word.Shr(FractionalBits, part)
	if rem := word.And(part, word.FromUint64(1<<FractionalBits-1)); rem.IsZero() {
		return q, nil
	}
	return word.Add(q, word.One)
}

func (d Density) mul(m uint256.Int) (uint256.Int, error) {
	v, err := d.To96X32()
	if err != nil {
		return uint256.Int{}, err
	}
	part, err := word.Mul(m, v)
	if err != nil {
		return uint256.Int{}, fmt.Errorf("density %s times %s: %w", d, m.Dec(), err)
	}
	return part, nil
}

// RequiredVolume is the smallest outbound volume an offer needing gasreq
// units of gas must promise.
func (d Density) RequiredVolume(gasreq uint64) (uint256.Int, error) {
	return d.MultiplyUp(word.FromUint64(gasreq))
}
