package density

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/yimingwow/ticklib/pkg"
	"github.com/yimingwow/ticklib/pkg/word"
)

// MaxDecimals is the largest token decimals value accepted by the params helpers.
const MaxDecimals = 255

var (
	mweiPerEth = word.FromUint64(1e12)
	fixedOne   = word.FromUint64(1 << FractionalBits)
)

// ParamsTo96X32 computes the 96.32 density that makes an offer's outbound
// volume worth coverFactor times the gas it burns, with prices given in
// hundredths of a USD:
//
//	coverFactor * gasprice * 10^decimals * ethPrice * 2^32 / (outboundPrice * 10^12)
func ParamsTo96X32(outboundDecimals, gaspriceInMwei, ethInCentiUSD, outboundDisplayInCentiUSD, coverFactor uint64) (uint256.Int, error) {
	num, err := gasCost(outboundDecimals, gaspriceInMwei, coverFactor)
	if err != nil {
		return uint256.Int{}, err
	}
	if num, err = word.Mul(num, word.FromUint64(ethInCentiUSD)); err != nil {
		return uint256.Int{}, fmt.Errorf("scale by eth price: %w", err)
	}
	den, err := word.Mul(word.FromUint64(outboundDisplayInCentiUSD), mweiPerEth)
	if err != nil {
		return uint256.Int{}, fmt.Errorf("outbound price in mwei: %w", err)
	}
	return toFixed(num, den)
}

// ParamsTo96X32Mwei is ParamsTo96X32 with the outbound token price already
// expressed in Mwei of the native token.
func ParamsTo96X32Mwei(outboundDecimals, gaspriceInMwei, outboundDisplayInMwei, coverFactor uint64) (uint256.Int, error) {
	num, err := gasCost(outboundDecimals, gaspriceInMwei, coverFactor)
	if err != nil {
		return uint256.Int{}, err
	}
	return toFixed(num, word.FromUint64(outboundDisplayInMwei))
}

// FromParams packs the result of ParamsTo96X32.
func FromParams(outboundDecimals, gaspriceInMwei, ethInCentiUSD, outboundDisplayInCentiUSD, coverFactor uint64) (Density, error) {
	v, err := ParamsTo96X32(outboundDecimals, gaspriceInMwei, ethInCentiUSD, outboundDisplayInCentiUSD, coverFactor)
	if err != nil {
		return 0, err
	}
	return From96X32(v)
}

func gasCost(outboundDecimals, gaspriceInMwei, coverFactor uint64) (uint256.Int, error) {
	if outboundDecimals > MaxDecimals {
		return uint256.Int{}, fmt.Errorf("outbound decimals %d: %w", outboundDecimals, pkg.ErrInvalidDecimals)
	}
	unit, err := word.Pow10(uint(outboundDecimals))
	if err != nil {
		return uint256.Int{}, fmt.Errorf("outbound unit: %w", err)
	}
	num, err := word.Mul(word.FromUint64(coverFactor), word.FromUint64(gaspriceInMwei))
	if err != nil {
		return uint256.Int{}, err
	}
	if num, err = word.Mul(num, unit); err != nil {
		return uint256.Int{}, fmt.Errorf("scale by outbound unit: %w", err)
	}
	return num, nil
}

func toFixed(num, den uint256.Int) (uint256.Int, error) {
	num, err := word.Mul(num, fixedOne)
	if err != nil {
		return uint256.Int{}, fmt.Errorf("to 96.32: %w", err)
	}
	return word.Div(num, den)
}
