package density

import (
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yimingwow/ticklib/pkg"
	"github.com/yimingwow/ticklib/pkg/word"
)

func TestParamsLiteral(t *testing.T) {
	v, err := ParamsTo96X32(6, 250000, 100, 100000, 1000)
	require.NoError(t, err)
	assert.Equal(t, word.Shl(30, word.One), v)

	d, err := From96X32(v)
	require.NoError(t, err)
	assert.Equal(t, Density(120), d)
	assert.Equal(t, "1 * 2^-2", d.String())

	d2, err := FromParams(6, 250000, 100, 100000, 1000)
	require.NoError(t, err)
	assert.Equal(t, d, d2)
}

func TestParamsMwei(t *testing.T) {
	// 1000 * 250000 * 10^6 * 2^32 / 10^15 = 2^32 / 4
	v, err := ParamsTo96X32Mwei(6, 250000, 1_000_000_000_000_000, 1000)
	require.NoError(t, err)
	assert.Equal(t, word.Shl(30, word.One), v)

	_, err = ParamsTo96X32Mwei(6, 250000, 0, 1000)
	assert.ErrorIs(t, err, pkg.ErrDivisionByZero)
}

func TestParamsRejectDecimals(t *testing.T) {
	_, err := ParamsTo96X32(256, 1, 1, 1, 1)
	assert.ErrorIs(t, err, pkg.ErrInvalidDecimals)

	_, err = ParamsTo96X32Mwei(1000, 1, 1, 1)
	assert.ErrorIs(t, err, pkg.ErrInvalidDecimals)

	// in range but 10^255 does not fit a word
	_, err = ParamsTo96X32(255, 1, 1, 1, 1)
	assert.ErrorIs(t, err, pkg.ErrOverflow)
}

func TestSmallValuesAreExact(t *testing.T) {
	for x := uint64(0); x <= 3; x++ {
		d, err := From96X32(word.FromUint64(x))
		require.NoError(t, err)
		assert.Equal(t, Density(x), d)
		assert.True(t, d.IsSubnormal())

		v, err := d.To96X32()
		require.NoError(t, err)
		assert.Equal(t, word.FromUint64(x), v)
	}
}

func TestRoundTripBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	check := func(x uint256.Int) {
		d, err := From96X32(x)
		require.NoError(t, err)
		got, err := d.To96X32()
		require.NoError(t, err)

		assert.False(t, x.Lt(&got), "decoded value above input for %s", x.Dec())
		// 5 * got >= 4 * x
		lhs, err := word.Mul(got, word.FromUint64(5))
		require.NoError(t, err)
		rhs, err := word.Mul(x, word.FromUint64(4))
		require.NoError(t, err)
		assert.False(t, lhs.Lt(&rhs), "decoded value below 80%% for %s", x.Dec())
	}

	for i := uint(0); i < 128; i++ {
		check(word.Shl(i, word.One))
		check(word.Shr(128-i, word.Shr(128, word.Ones)))
	}
	for i := 0; i < 5000; i++ {
		x := uint256.Int{rng.Uint64(), rng.Uint64(), 0, 0}
		check(word.Shr(uint(rng.Intn(128)), x))
	}
}

func TestFromRejectsWideValues(t *testing.T) {
	_, err := From96X32(word.Shl(128, word.One))
	assert.ErrorIs(t, err, pkg.ErrInvalidDensity)
	assert.False(t, CheckDensity96X32(word.Shl(128, word.One)))
	assert.True(t, CheckDensity96X32(word.Shr(128, word.Ones)))
}

func TestMultiply(t *testing.T) {
	d, err := Make(1, 32) // 1.25
	require.NoError(t, err)

	down, err := d.Multiply(word.FromUint64(3))
	require.NoError(t, err)
	up, err := d.MultiplyUp(word.FromUint64(3))
	require.NoError(t, err)
	assert.Equal(t, word.FromUint64(3), down)
	assert.Equal(t, word.FromUint64(4), up)

	exact, err := d.MultiplyUp(word.FromUint64(4))
	require.NoError(t, err)
	assert.Equal(t, word.FromUint64(5), exact)

	_, err = d.Multiply(word.Ones)
	assert.ErrorIs(t, err, pkg.ErrOverflow)
}

func TestMultiplyUpExceedsByAtMostOne(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		d, err := Make(uint64(rng.Intn(4)), uint64(2+rng.Intn(100)))
		require.NoError(t, err)
		m := word.FromUint64(rng.Uint64() >> 8)

		down, err := d.Multiply(m)
		require.NoError(t, err)
		up, err := d.MultiplyUp(m)
		require.NoError(t, err)
		diff, err := word.Sub(up, down)
		require.NoError(t, err)
		assert.True(t, diff.IsUint64() && diff.Uint64() <= 1, "density %s m %s", d, m.Dec())
	}
}

func TestRequiredVolume(t *testing.T) {
	d, err := FromParams(6, 250000, 100, 100000, 1000)
	require.NoError(t, err)
	v, err := d.RequiredVolume(100_001)
	require.NoError(t, err)
	// 100001 / 4 rounded up
	assert.Equal(t, word.FromUint64(25_001), v)
}

func TestRejectsExponentOne(t *testing.T) {
	for raw := uint64(4); raw <= 7; raw++ {
		_, err := FromPacked(raw)
		assert.ErrorIs(t, err, pkg.ErrInvalidDensity)

		_, err = ToString(Density(raw))
		assert.ErrorIs(t, err, pkg.ErrInvalidDensity)

		_, err = Density(raw).To96X32()
		assert.ErrorIs(t, err, pkg.ErrInvalidDensity)
	}
	_, err := Make(0, 1)
	assert.ErrorIs(t, err, pkg.ErrInvalidDensity)
}

func TestRejectsOversizedPacked(t *testing.T) {
	_, err := FromPacked(512)
	assert.ErrorIs(t, err, pkg.ErrInvalidDensity)
	_, err = Density(1024).Multiply(word.One)
	assert.ErrorIs(t, err, pkg.ErrInvalidDensity)
	_, err = Make(4, 10)
	assert.ErrorIs(t, err, pkg.ErrInvalidDensity)
	_, err = Make(0, 128)
	assert.ErrorIs(t, err, pkg.ErrInvalidDensity)

	d, err := FromPacked(511)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), d.Mantissa())
	assert.Equal(t, uint64(127), d.Exponent())
}

func TestToString(t *testing.T) {
	tests := []struct {
		mantissa, exp uint64
		want          string
	}{
		{0, 0, "0 * 2^-32"},
		{3, 0, "3 * 2^-32"},
		{0, 2, "1 * 2^-30"},
		{1, 32, "1.25 * 2^0"},
		{2, 40, "1.5 * 2^8"},
		{3, 127, "1.75 * 2^95"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			d, err := Make(tt.mantissa, tt.exp)
			require.NoError(t, err)
			got, err := ToString(d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "invalid density 0x5", Density(5).String())
}

func TestCodec(t *testing.T) {
	d, err := Make(2, 40)
	require.NoError(t, err)
	data, err := d.Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xa2, 0x00}, data)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, d, got)

	_, err = Decode([]byte{0x05, 0x00})
	assert.ErrorIs(t, err, pkg.ErrInvalidDensity)
	_, err = Decode([]byte{0x00, 0x02})
	assert.ErrorIs(t, err, pkg.ErrInvalidDensity)
}
