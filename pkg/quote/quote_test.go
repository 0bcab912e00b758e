package quote

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yimingwow/ticklib/pkg"
	"github.com/yimingwow/ticklib/pkg/density"
	"github.com/yimingwow/ticklib/pkg/ticklib"
	"github.com/yimingwow/ticklib/pkg/word"
)

func TestWordConversion(t *testing.T) {
	w, err := ToWord(math.NewInt(12345))
	require.NoError(t, err)
	assert.Equal(t, word.FromUint64(12345), w)
	assert.True(t, FromWord(word.Ones).Equal(math.NewIntFromBigInt(word.Ones.ToBig())))

	_, err = ToWord(math.NewInt(-1))
	assert.ErrorIs(t, err, pkg.ErrUnderflow)

	_, err = ToWord(math.Int{})
	assert.ErrorIs(t, err, ErrNilAmount)
}

func TestInboundOutbound(t *testing.T) {
	e18, ok := math.NewIntFromString("1000000000000000000")
	require.True(t, ok)

	down, err := Inbound(6931, e18, pkg.RoundDown)
	require.NoError(t, err)
	assert.Equal(t, "1999836340196927629", down.String())

	up, err := Inbound(6931, e18, pkg.RoundUp)
	require.NoError(t, err)
	assert.Equal(t, "1999836340196927630", up.String())

	out, err := Outbound(-6932, e18, pkg.RoundDown)
	require.NoError(t, err)
	assert.Equal(t, "2000036323830947322", out.String())

	_, err = Outbound(ticklib.MaxTick+1, e18, pkg.RoundUp)
	assert.ErrorIs(t, err, pkg.ErrTickOutOfRange)
}

func TestTickFromAmounts(t *testing.T) {
	tick, err := TickFromAmounts(math.NewInt(2), math.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, ticklib.Tick(6931), tick)

	_, err = TickFromAmounts(math.NewInt(-2), math.NewInt(1))
	assert.ErrorIs(t, err, pkg.ErrUnderflow)
}

func TestMinVolume(t *testing.T) {
	d, err := density.FromParams(6, 250000, 100, 100000, 1000)
	require.NoError(t, err)
	v, err := MinVolume(d, 100_001)
	require.NoError(t, err)
	assert.Equal(t, int64(25_001), v.Int64())
}

func TestMarketOrder(t *testing.T) {
	offers := []Offer{
		{Tick: 6931, Gives: math.NewInt(1000)},
		{Tick: 0, Gives: math.NewInt(500)},
		{Tick: 100, Gives: math.NewInt(700)},
	}

	fill, err := MarketOrder(offers, math.NewInt(2000))
	require.NoError(t, err)
	assert.Equal(t, int64(1596), fill.Got.Int64())
	assert.Equal(t, int64(2000), fill.Gave.Int64())
	assert.Equal(t, 3, fill.Offers)

	// input order is left alone
	assert.Equal(t, ticklib.Tick(6931), offers[0].Tick)

	fill, err = MarketOrder(offers, math.NewInt(500))
	require.NoError(t, err)
	assert.Equal(t, int64(500), fill.Got.Int64())
	assert.Equal(t, int64(500), fill.Gave.Int64())
	assert.Equal(t, 1, fill.Offers)

	fill, err = MarketOrder(nil, math.NewInt(500))
	require.NoError(t, err)
	assert.True(t, fill.Got.IsZero())
}
