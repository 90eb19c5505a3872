package combatlog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/duelcore/resolver/combatlog"
	"github.com/duelcore/resolver/model"
)

func TestTurnHeader(t *testing.T) {
	require.Equal(t, "Turn 3", combatlog.TurnHeader(3))
}

func TestCastLineWithAndWithoutWeapon(t *testing.T) {
	require.Equal(t, "p1 uses Quick Blade to cast Ambush.", combatlog.CastLine("p1", "Quick Blade", "Ambush"))
	require.Equal(t, "p1 casts Fireball.", combatlog.CastLine("p1", "", "Fireball"))
}

func TestFormatDamagePlain(t *testing.T) {
	require.Equal(t, "42 damage", combatlog.FormatDamage(combatlog.DamageInstance{HPDamage: 42}))
}

func TestFormatDamageCrit(t *testing.T) {
	require.Equal(t, "84 damage (Critical!)", combatlog.FormatDamage(combatlog.DamageInstance{HPDamage: 84, Crit: true}))
}

func TestFormatDamageImmune(t *testing.T) {
	require.Equal(t, "0 damage (Immune)", combatlog.FormatDamage(combatlog.DamageInstance{Immune: true}))
}

// The reported total is post-absorb hp damage plus the absorbed amount,
// with a per-layer annotation.
func TestFormatDamageAbsorbAnnotation(t *testing.T) {
	got := combatlog.FormatDamage(combatlog.DamageInstance{
		HPDamage: 10,
		Absorbed: 30,
		Breakdown: []model.AbsorbLayerBreakdown{
			{Name: "Ice Barrier", Consumed: 20},
			{Name: "Power Word: Shield", Consumed: 10},
		},
	})
	require.Equal(t, "40 damage (20 by Ice Barrier, 10 by Power Word: Shield absorbed)", got)
}

func TestSummaryTemplate(t *testing.T) {
	require.Equal(t,
		"Post-Combat Summary|FD:120|FH:45|ED:98|EH:0",
		combatlog.Summary(120, 45, 98, 0))
}
