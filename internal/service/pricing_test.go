package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWashPrice_RoundsToNearestThousand(t *testing.T) {
	cases := []struct {
		name string
		base int64
		mult float64
		want int64
	}{
		{"small size keeps base", 35_000, 1.0, 35_000},
		{"medium rounds up", 35_000, 1.1, 39_000},
		{"large on premium", 50_000, 1.25, 63_000},
		{"extra large detailing", 150_000, 1.5, 225_000},
		{"half thousand rounds up", 35_000, 1.3, 46_000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, WashPrice(tc.base, tc.mult))
		})
	}
}

func TestBasePay_RoundsDownToHundred(t *testing.T) {
	require.Equal(t, int64(3_000_000), BasePay(150_000, 20, 1.0))
	require.Equal(t, int64(3_750_000), BasePay(150_000, 20, 1.25))
	require.Equal(t, int64(0), BasePay(150_000, 0, 1.0))
	// truncation, never rounding up
	require.Equal(t, int64(99_900), BasePay(33_333, 3, 1.0))
	require.Equal(t, int64(187_500), BasePay(125_000, 1, 1.5))
}

func TestNewSecretCode_Format(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := NewSecretCode()
		require.Len(t, code, 8)
		for _, c := range code {
			ok := (c >= 'A' && c <= 'F') || (c >= '0' && c <= '9')
			require.True(t, ok, "unexpected character %q in %s", c, code)
		}
		require.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}
