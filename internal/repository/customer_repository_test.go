package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePlate(t *testing.T) {
	require.Equal(t, "B 1234 XY", NormalizePlate("  b 1234 xy "))
	require.Equal(t, "AD 7 KL", NormalizePlate("ad 7 kl"))
	require.Equal(t, "", NormalizePlate("   "))
}
