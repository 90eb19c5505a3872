package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/duelcore/resolver/rules"
)

func TestClamp(t *testing.T) {
	require.Equal(t, 15, rules.Clamp(0, 15, 95))
	require.Equal(t, 95, rules.Clamp(200, 15, 95))
	require.Equal(t, 50, rules.Clamp(50, 15, 95))
}

func TestHitChanceBounds(t *testing.T) {
	require.Equal(t, 15, rules.HitChance(0, 200))
	require.Equal(t, 95, rules.HitChance(200, 0))
	require.Equal(t, 75, rules.HitChance(10, 10))
}

func TestMitigate(t *testing.T) {
	require.Equal(t, 50, rules.Mitigate(100, 100))
	require.Equal(t, 100, rules.Mitigate(100, -5))
	require.Equal(t, 100, rules.Mitigate(100, 0))
}

func TestBaseDamage(t *testing.T) {
	require.Equal(t, 25, rules.BaseDamage(10, 2.4, 1))
}

func TestTruncProductTruncatesTowardZero(t *testing.T) {
	require.Equal(t, 2, rules.TruncProduct(5, 0.5))
	require.Equal(t, -2, rules.TruncProduct(-5, 0.5))
}
