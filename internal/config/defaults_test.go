package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSettings_Complete(t *testing.T) {
	defaults := DefaultSettings()
	for _, key := range []string{
		KeyWashPackages, KeyArrivalChecklist, KeyCompletionChecklist,
		KeyShopInfo, KeyCoffeeMenu, KeySizeMultipliers,
	} {
		require.Contains(t, defaults, key)
	}

	packages := defaults[KeyWashPackages].([]WashPackage)
	require.NotEmpty(t, packages)
	names := map[string]bool{}
	for _, p := range packages {
		require.Positive(t, p.Price)
		require.False(t, names[p.Name], "duplicate package %s", p.Name)
		names[p.Name] = true
	}

	multipliers := defaults[KeySizeMultipliers].(map[string]float64)
	require.Equal(t, 1.0, multipliers["S"])
	for size, m := range multipliers {
		require.GreaterOrEqual(t, m, 1.0, "size %s", size)
	}
}
