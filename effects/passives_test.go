package effects_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/dice/mock"
	"github.com/duelcore/resolver/effects"
	"github.com/duelcore/resolver/model"
)

// passiveCatalog is testCatalog plus the on-hit/on-damage item passives
// these tests drive.
func passiveCatalog() *catalog.Catalog {
	cat := testCatalog()
	cat.Items["quick_blade"] = &catalog.Item{
		ID: "quick_blade", Name: "Quick Blade", Slot: "weapon",
		Passives: []catalog.Passive{{Type: "StrikeAgain", Trigger: catalog.TriggerOnHit, Chance: 25, ScaleBy: 0.5}},
	}
	cat.Items["wand_of_cataclysms"] = &catalog.Item{
		ID: "wand_of_cataclysms", Name: "Wand of Cataclysms", Slot: "weapon",
		Passives: []catalog.Passive{{Type: "Burn", Trigger: catalog.TriggerOnHit, Chance: 25, EffectID: "burn", Duration: 3, Amount: 18, School: "magic"}},
	}
	cat.Items["berserkers_call"] = &catalog.Item{
		ID: "berserkers_call", Name: "Berserker's Call", Slot: "trinket",
		Passives: []catalog.Passive{{Type: "DamageBonusBelowHP", Trigger: catalog.TriggerOnDamage, HPThreshold: 0.3, Multiplier: 1.5}},
	}
	cat.Items["seal_of_the_crusader"] = &catalog.Item{
		ID: "seal_of_the_crusader", Name: "Seal of the Crusader", Slot: "trinket",
		Passives: []catalog.Passive{{Type: "DamageBonusAboveHP", Trigger: catalog.TriggerOnDamage, HPThreshold: 0.7, Multiplier: 1.2}},
	}
	cat.Effects["burn"] = &catalog.EffectTemplate{
		ID: "burn", Type: "burn", Name: "Burning", Duration: 3, Category: "dot", School: "magic", Dispellable: true,
	}
	return cat
}

func withPassive(ps *model.PlayerState, itemID string) {
	ps.Effects = append(ps.Effects, &model.Effect{
		ID:         itemID + ":passive:0",
		Type:       model.EffectItemPassive,
		Duration:   model.PermanentDuration,
		SourceItem: itemID,
	})
}

func TestTriggerOnHitStrikeAgainProcs(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := mock.NewMockRoller(ctrl)

	cat := passiveCatalog()
	attacker, target := newPlayer("p1"), newPlayer("p2")
	withPassive(attacker, "quick_blade")

	// One chance roll per passive: 25 <= 25 procs.
	rng.EXPECT().Roll(100).Return(25, nil)

	res := effects.TriggerOnHitPassives(cat, attacker, target, 40, "physical", rng, nil)
	require.Equal(t, 20, res.BonusDamage, "StrikeAgain adds floor(40 * 0.5)")
	require.Len(t, res.Logs, 1)
}

func TestTriggerOnHitStrikeAgainMissesRoll(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := mock.NewMockRoller(ctrl)

	cat := passiveCatalog()
	attacker, target := newPlayer("p1"), newPlayer("p2")
	withPassive(attacker, "quick_blade")

	rng.EXPECT().Roll(100).Return(26, nil)

	res := effects.TriggerOnHitPassives(cat, attacker, target, 40, "physical", rng, nil)
	require.Zero(t, res.BonusDamage)
	require.Empty(t, res.Logs)
}

func TestTriggerOnHitBurnAppliesThenRefreshesWithMax(t *testing.T) {
	ctrl := gomock.NewController(t)
	rng := mock.NewMockRoller(ctrl)

	cat := passiveCatalog()
	attacker, target := newPlayer("p1"), newPlayer("p2")
	withPassive(attacker, "wand_of_cataclysms")

	rng.EXPECT().Roll(100).Return(1, nil).Times(2)

	effects.TriggerOnHitPassives(cat, attacker, target, 40, "magic", rng, nil)
	burn := target.GetEffect("burn")
	require.NotNil(t, burn)
	require.Equal(t, 3, burn.Duration)
	require.Equal(t, 18, burn.TickDamage)

	// A second proc refreshes in place: max(old, new), never a second stack.
	burn.Duration = 1
	effects.TriggerOnHitPassives(cat, attacker, target, 40, "magic", rng, nil)
	require.Equal(t, 3, burn.Duration)
	count := 0
	for _, e := range target.Effects {
		if e.ID == "burn" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestDamageMultiplierFromPassivesHPGates(t *testing.T) {
	cat := passiveCatalog()
	ps := newPlayer("p1")
	withPassive(ps, "berserkers_call")
	withPassive(ps, "seal_of_the_crusader")

	// Full hp: above-0.7 bonus applies, below-0.3 does not.
	require.InDelta(t, 1.2, effects.DamageMultiplierFromPassives(cat, ps), 1e-9)

	// At 25% hp: below-0.3 applies, above-0.7 does not.
	ps.Res.HP = 25
	require.InDelta(t, 1.5, effects.DamageMultiplierFromPassives(cat, ps), 1e-9)

	// In between: neither.
	ps.Res.HP = 50
	require.InDelta(t, 1.0, effects.DamageMultiplierFromPassives(cat, ps), 1e-9)
}
