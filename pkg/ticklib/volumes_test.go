package ticklib

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yimingwow/ticklib/pkg"
	"github.com/yimingwow/ticklib/pkg/word"
	"lukechampine.com/uint128"
)

func TestTickFromVolumes(t *testing.T) {
	e18 := uint64(1_000_000_000_000_000_000)
	tests := []struct {
		name              string
		inbound, outbound uint64
		want              Tick
	}{
		{"two to one", 2, 1, 6931},
		{"one to two", 1, 2, -6932},
		{"equal", 5, 5, 0},
		{"one third", e18, 3 * e18, -10987},
		{"odd amounts", 123456789, 987654321, -20796},
		{"zero outbound", 1, 0, MaxTick},
		{"zero inbound", 0, 1, MinTick},
		{"both zero", 0, 0, MaxTick},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TickFromVolumes(vol(tt.inbound), vol(tt.outbound))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRatioFromVolumes(t *testing.T) {
	r, err := RatioFromVolumes(vol(1_000_000_000_000_000_000), vol(3_000_000_000_000_000_000))
	require.NoError(t, err)
	assert.Equal(t, ratio("226854911280625642308916404954512140970", 129), r)

	r, err = RatioFromVolumes(word.Shl(100, word.One), vol(1))
	require.NoError(t, err)
	assert.Equal(t, Ratio{Mantissa: uint128.New(0, 1<<63), Exp: 27}, r)

	r, err = RatioFromVolumes(vol(0), vol(7))
	require.NoError(t, err)
	assert.Equal(t, MinRatio, r)
	r, err = RatioFromVolumes(vol(7), vol(0))
	require.NoError(t, err)
	assert.Equal(t, MaxRatio, r)
}

func TestVolumesLargeShifts(t *testing.T) {
	tick, err := TickFromVolumes(vol(1), word.Shl(100, word.One))
	require.NoError(t, err)
	assert.Equal(t, Tick(-693182), tick)

	tick, err = TickFromVolumes(word.Shl(100, word.One), vol(1))
	require.NoError(t, err)
	assert.Equal(t, Tick(693181), tick)
}

func TestMaxSafeVolumeStaysInTickRange(t *testing.T) {
	maxSafe := uint256.Int{MaxSafeVolume.Lo, MaxSafeVolume.Hi, 0, 0}
	assert.Equal(t, word.Shr(129, word.Ones), maxSafe)

	tick, err := TickFromVolumes(vol(1), maxSafe)
	require.NoError(t, err)
	assert.Equal(t, Tick(-880341), tick)

	tick, err = TickFromVolumes(maxSafe, vol(1))
	require.NoError(t, err)
	assert.Equal(t, Tick(880340), tick)

	tick, err = TickFromVolumes(maxSafe, maxSafe)
	require.NoError(t, err)
	assert.Equal(t, Tick(0), tick)
}

func TestVolumeTooLarge(t *testing.T) {
	tooLarge := word.Shl(127, word.One)

	_, err := RatioFromVolumes(tooLarge, vol(1))
	assert.ErrorIs(t, err, pkg.ErrVolumeTooLarge)
	_, err = RatioFromVolumes(vol(1), tooLarge)
	assert.ErrorIs(t, err, pkg.ErrVolumeTooLarge)
	// checked before the zero special cases
	_, err = TickFromVolumes(tooLarge, vol(0))
	assert.ErrorIs(t, err, pkg.ErrVolumeTooLarge)

	for _, v := range []uint256.Int{word.Shr(128, word.Ones), word.Shl(128, word.One), word.Ones} {
		_, err = TickFromVolumes(vol(1), v)
		assert.ErrorIs(t, err, pkg.ErrVolumeTooLarge, "volume %s", v.Dec())
	}
}

func TestAmountConversions(t *testing.T) {
	e18 := vol(1_000_000_000_000_000_000)
	tests := []struct {
		name           string
		tick           Tick
		amount         uint64
		useE18         bool
		inDown, inUp   string
		outDown, outUp string
	}{
		{"price two", 6931, 0, true, "1999836340196927629", "1999836340196927630", "500040918299108479", "500040918299108480"},
		{"price half", -6932, 0, true, "499990919207187760", "499990919207187761", "2000036323830947322", "2000036323830947323"},
		{"tick zero", 0, 12345, false, "12345", "12345", "12345", "12345"},
		{"tick one", 1, 10000, false, "10000", "10001", "9999", "10000"},
		{"tick one, unit amount", 1, 1, false, "1", "2", "0", "1"},
		{"tick minus one", -1, 10000, false, "9999", "10000", "10000", "10001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := vol(tt.amount)
			if tt.useE18 {
				amount = e18
			}
			check := func(want string, f func(Tick, uint256.Int) (uint256.Int, error)) {
				t.Helper()
				got, err := f(tt.tick, amount)
				require.NoError(t, err)
				assert.Equal(t, want, got.Dec())
			}
			check(tt.inDown, InboundFromOutbound)
			check(tt.inUp, InboundFromOutboundUp)
			check(tt.outDown, OutboundFromInbound)
			check(tt.outUp, OutboundFromInboundUp)
		})
	}
}

func TestAmountConversionErrors(t *testing.T) {
	_, err := InboundFromOutbound(MaxTick+1, vol(1))
	assert.ErrorIs(t, err, pkg.ErrTickOutOfRange)

	_, err = InboundFromOutboundUp(0, word.Ones)
	assert.ErrorIs(t, err, pkg.ErrOverflow)

	got, err := OutboundFromInboundUp(0, word.Zero)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestDivExpUp(t *testing.T) {
	got, err := divExpUp(vol(9), 3)
	require.NoError(t, err)
	assert.Equal(t, vol(2), got)

	got, err = divExpUp(vol(8), 3)
	require.NoError(t, err)
	assert.Equal(t, vol(1), got)

	got, err = divExpUp(word.Ones, 0)
	require.NoError(t, err)
	assert.Equal(t, word.Ones, got)

	got, err = divExpUp(vol(1), 300)
	require.NoError(t, err)
	assert.Equal(t, vol(1), got)
}
