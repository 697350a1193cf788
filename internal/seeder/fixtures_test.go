package seeder

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var plateRe = regexp.MustCompile(`^(B|D|F|AB|AD|L) [1-9]\d{0,3} [A-Z]{2,3}$`)

func TestRandomPlate_Format(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		plate := randomPlate(rng)
		require.Regexp(t, plateRe, plate)
	}
}

// The batch insert runs inside one transaction, so generated plates must be
// distinct before they reach the database.
func TestUniquePlates_NoDuplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	plates := uniquePlates(rng, 500)
	require.Len(t, plates, 500)
	seen := map[string]bool{}
	for _, p := range plates {
		require.Regexp(t, plateRe, p)
		require.False(t, seen[p], "duplicate plate %s", p)
		seen[p] = true
	}
}

func TestRandomCafeItems_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		items := randomCafeItems(rng)
		require.LessOrEqual(t, len(items), 3)
		names := map[string]bool{}
		for _, item := range items {
			require.Positive(t, item.Qty)
			require.LessOrEqual(t, item.Qty, 2)
			require.Positive(t, item.UnitPrice)
			require.False(t, names[item.Name], "duplicate item %s", item.Name)
			names[item.Name] = true
		}
	}
}

func TestWeightedRating_RangeAndSkew(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	counts := map[int]int{}
	for i := 0; i < 5000; i++ {
		r := weightedRating(rng)
		require.GreaterOrEqual(t, r, 3)
		require.LessOrEqual(t, r, 5)
		counts[r]++
	}
	require.Greater(t, counts[5], counts[4])
	require.Greater(t, counts[4], counts[3])
}
