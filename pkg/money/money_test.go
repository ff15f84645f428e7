package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robosite/storefront/pkg/e"
)

func TestParseToKurus(t *testing.T) {
	t.Run("WholeLira", func(t *testing.T) {
		v, err := ParseToKurus("600")
		require.NoError(t, err)
		assert.Equal(t, int64(60000), v)
	})

	t.Run("TwoDecimals", func(t *testing.T) {
		v, err := ParseToKurus("599.99")
		require.NoError(t, err)
		assert.Equal(t, int64(59999), v)
	})

	t.Run("OneDecimal", func(t *testing.T) {
		v, err := ParseToKurus("29.9")
		require.NoError(t, err)
		assert.Equal(t, int64(2990), v)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseToKurus("   ")
		require.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseToKurus("abc")
		require.ErrorIs(t, err, e.ErrInvalidPrice)
	})

	t.Run("Negative", func(t *testing.T) {
		_, err := ParseToKurus("-1")
		require.ErrorIs(t, err, e.ErrInvalidPrice)
	})

	t.Run("TooManyDecimals", func(t *testing.T) {
		_, err := ParseToKurus("9.999")
		require.ErrorIs(t, err, e.ErrPricePrecision)
	})

	t.Run("UpperBoundInLira", func(t *testing.T) {
		v, err := ParseToKurus("1000000000")
		require.NoError(t, err)
		assert.Equal(t, int64(100_000_000_000), v)

		_, err = ParseToKurus("1000000000.01")
		require.ErrorIs(t, err, e.ErrInvalidPrice)
	})
}

func TestFloatRoundTrip(t *testing.T) {
	assert.Equal(t, int64(29_90), FromFloat(29.90))
	assert.Equal(t, int64(500_00), FromFloat(500.0))
	assert.InDelta(t, 29.90, ToFloat(29_90), 1e-9)
	assert.InDelta(t, 5319.00, ToFloat(5_319_00), 1e-9)
}

func TestFormatTRY(t *testing.T) {
	cases := []struct {
		kurus int64
		want  string
	}{
		{531900, "5.319,00₺"},
		{22990, "229,90₺"},
		{2990, "29,90₺"},
		{0, "0,00₺"},
		{100000000, "1.000.000,00₺"},
		{-2990, "-29,90₺"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatTRY(tc.kurus), "kurus=%d", tc.kurus)
	}
}
