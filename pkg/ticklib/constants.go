package ticklib

import (
	"github.com/holiman/uint256"
	"github.com/yimingwow/ticklib/pkg/word"
	"lukechampine.com/uint128"
)

const (
	// MinTick and MaxTick bound the ticks whose ratio is representable.
	MinTick Tick = -887272
	MaxTick Tick = 887272

	MantissaBits         = 128
	MantissaBitsMinusOne = 127

	// logBpShift is the fixed-point precision of logBp2x235.
	logBpShift = 235
)

var (
	// MinRatio is RatioFromTick(MinTick), MaxRatio is RatioFromTick(MaxTick).
	MinRatio = Ratio{Mantissa: mustUint128("170153974464283981435225617938057077692"), Exp: 255}
	MaxRatio = Ratio{Mantissa: mustUint128("340256786836388094050805785052946541084"), Exp: 0}

	// MaxSafeVolume is the largest amount RatioFromVolumes accepts, 2^127 - 1.
	// Any ratio of two such volumes stays within [MinRatio, MaxRatio].
	MaxSafeVolume = uint128.New(^uint64(0), ^uint64(0)>>1)

	// log_1.0001(2) * 2^235
	logBp2x235 = word.MustFromDecimal("382733217082594961806491056566382061424140926068392360945012727618364717537")
	// logBp2x235 scaled down to 64 fractional bits, the precision of the log2 loop.
	logBp2x64 = word.Shr(logBpShift-64, logBp2x235)

	// Error margins of the log approximation, in 128-bit fixed point.
	errLow  = word.MustFromDecimal("1701496478404567508395759362389778998")
	errHigh = word.MustFromDecimal("289637967442836606107396900709005211253")

	fixedOne = word.Shl(MantissaBits, word.One)
)

// ratioTable[i] is floor(1.0001^-(2^i) * 2^(128+ratioShifts[i])).
// Entries from bit 13 on are shifted left so they keep 128 significant bits.
var ratioTable = [20]uint256.Int{
	word.MustFromHex("0xfff97272373d413259a46990580e2139"),
	word.MustFromHex("0xfff2e50f5f656932ef12357cf3c7fdcb"),
	word.MustFromHex("0xffe5caca7e10e4e61c3624eaa0941ccf"),
	word.MustFromHex("0xffcb9843d60f6159c9db58835c926643"),
	word.MustFromHex("0xff973b41fa98c081472e6896dfb254bf"),
	word.MustFromHex("0xff2ea16466c96a3843ec78b326b52860"),
	word.MustFromHex("0xfe5dee046a99a2a811c461f1969c3052"),
	word.MustFromHex("0xfcbe86c7900a88aedcffc83b479aa3a3"),
	word.MustFromHex("0xf987a7253ac413176f2b074cf7815e53"),
	word.MustFromHex("0xf3392b0822b70005940c7a398e4b70f2"),
	word.MustFromHex("0xe7159475a2c29b7443b29c7fa6e889d8"),
	word.MustFromHex("0xd097f3bdfd2022b8845ad8f792aa5825"),
	word.MustFromHex("0xa9f746462d870fdf8a65dc1f90e061e4"),
	word.MustFromHex("0xe1b0d342ada5437121767bec575e65ed"),
	word.MustFromHex("0xc6f84d7e5f423f66048c541550bf3e96"),
	word.MustFromHex("0x9aa508b5b7a84e1c677de54f3e99bc8f"),
	word.MustFromHex("0xbad5f1bdb70232cd33865244bdcc089c"),
	word.MustFromHex("0x885b9613d7e87aa498106fb7fa5edd37"),
	word.MustFromHex("0x9142e0723efb884889d1f447715afacd"),
	word.MustFromHex("0xa4d9a773d61316918f140bd96e8e6814"),
}

var ratioShifts = [20]int64{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 2, 4, 9, 18, 37, 75,
}

func mustUint128(dec string) uint128.Uint128 {
	w := word.MustFromDecimal(dec)
	if w[2] != 0 || w[3] != 0 {
		panic("constant exceeds 128 bits: " + dec)
	}
	return uint128.New(w[0], w[1])
}
