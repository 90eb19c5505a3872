package effects_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/effects"
	"github.com/duelcore/resolver/model"
)

// testCatalog builds a minimal in-memory catalog for engine tests, so
// they don't depend on the embedded fixture content.
func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Abilities: map[string]*catalog.Ability{},
		Classes:   map[string]*catalog.Class{},
		Items:     map[string]*catalog.Item{},
		Pets:      map[string]*catalog.PetTemplate{},
		Effects: map[string]*catalog.EffectTemplate{
			"stunned": {
				ID: "stunned", Type: "status", Name: "Stunned", Duration: 1,
				Category: "debuff", Dispellable: true,
				Flags: map[string]bool{"stunned": true},
			},
			"stealth": {
				ID: "stealth", Type: "stealth", Name: "Stealth", Duration: 999,
				Category: "status", Flags: map[string]bool{"stealthed": true},
				BreakOnDamageOver: 10,
			},
			"barkskin": {
				ID: "barkskin", Type: "mitigation", Name: "Barkskin", Duration: 3,
				Category: "buff", Value: 0.35,
			},
			"shield_wall": {
				ID: "shield_wall", Type: "mitigation", Name: "Shield Wall", Duration: 2,
				Category: "buff", Value: 0.6,
			},
			"curse_of_weakness": {
				ID: "curse_of_weakness", Type: "stat_mods", Name: "Curse of Weakness",
				Duration: 3, Category: "debuff", School: "magical", Dispellable: true,
				Mods: map[string]int{"atk": -6},
			},
			"battle_shout": {
				ID: "battle_shout", Type: "stat_mods", Name: "Battle Shout",
				Duration: 3, Category: "buff", Dispellable: true,
				Mods: map[string]int{"atk": 8},
			},
			"cat_form": {
				ID: "cat_form", Type: "form", Name: "Cat Form", Duration: 999,
				Category: "buff", Mods: map[string]int{"spd": 10},
			},
			"bear_form": {
				ID: "bear_form", Type: "form", Name: "Bear Form", Duration: 999,
				Category: "buff", Mods: map[string]int{"def": 14},
			},
			"rip_ready": {
				ID: "rip_ready", Type: "status", Name: "Rip Ready", Duration: 2,
				Category: "buff", Flags: map[string]bool{"rip_ready": true},
			},
		},
	}
}

func newPlayer(sid string) *model.PlayerState {
	return &model.PlayerState{
		SID:   sid,
		Stats: map[string]int{"atk": 20, "def": 10, "crit": 5, "acc": 80, "eva": 5},
		Res:   model.Resources{HP: 100, HPMax: 100, MP: 50, MPMax: 50},
	}
}

func TestApplyEffectByIDCopiesTemplateAndOverlays(t *testing.T) {
	cat := testCatalog()
	ps := newPlayer("p1")

	e := effects.ApplyEffectByID(cat, ps, "stunned", map[string]any{"duration": 2, "source_sid": "p2"})
	require.Equal(t, 2, e.Duration)
	require.Equal(t, "p2", e.SourceSID)
	require.True(t, ps.HasFlag("stunned"))

	// The template itself must be untouched by the overlay.
	require.Equal(t, 1, cat.Effects["stunned"].Duration)
}

func TestModifyStatStacksFlatModsAdditively(t *testing.T) {
	cat := testCatalog()
	ps := newPlayer("p1")

	effects.ApplyEffectByID(cat, ps, "battle_shout", nil)
	effects.ApplyEffectByID(cat, ps, "battle_shout", nil)
	effects.ApplyEffectByID(cat, ps, "curse_of_weakness", nil)

	// 20 + 8 + 8 - 6: stat_mods records stack additively per-stat.
	require.Equal(t, 30, effects.ModifyStat(ps, "atk", ps.Stat("atk")))
}

func TestModifyStatMultiplicativeModsTruncate(t *testing.T) {
	ps := newPlayer("p1")
	ps.Effects = append(ps.Effects, &model.Effect{
		ID: "enrage", Duration: 2,
		Mods: map[string]int{"mult_atk": 50},
	})
	// floor(20 * 1.5) = 30; truncation toward zero at the composition step.
	require.Equal(t, 30, effects.ModifyStat(ps, "atk", 20))

	ps.Effects[0].Mods["mult_atk"] = 33
	require.Equal(t, 26, effects.ModifyStat(ps, "atk", 20))
}

func TestMitigationMultiplierSumsThenClamps(t *testing.T) {
	cat := testCatalog()
	ps := newPlayer("p1")

	require.InDelta(t, 1.0, effects.MitigationMultiplier(ps), 1e-9)

	effects.ApplyEffectByID(cat, ps, "barkskin", nil)
	require.InDelta(t, 0.65, effects.MitigationMultiplier(ps), 1e-9)

	// 0.35 + 0.6 = 0.95 sums past the cap; the sum clamps to 0.8, so
	// the multiplier floors at 0.2.
	effects.ApplyEffectByID(cat, ps, "shield_wall", nil)
	require.InDelta(t, 0.2, effects.MitigationMultiplier(ps), 1e-9)
}

func TestConsumeAbsorbsFIFOAndConservation(t *testing.T) {
	ps := newPlayer("p1")
	effects.AddAbsorb(ps, 30, "Ice Barrier", "ice_barrier")
	effects.AddAbsorb(ps, 20, "Power Word: Shield", "pw_shield")

	remaining, absorbed, breakdown := effects.ConsumeAbsorbs(ps, 40)
	require.Equal(t, 0, remaining)
	require.Equal(t, 40, absorbed)
	require.Len(t, breakdown, 2)
	require.Equal(t, "Ice Barrier", breakdown[0].Name)
	require.Equal(t, 30, breakdown[0].Consumed)
	require.Equal(t, "Power Word: Shield", breakdown[1].Name)
	require.Equal(t, 10, breakdown[1].Consumed)

	// First layer is exhausted and gone; second has 10 left.
	require.NotContains(t, ps.Res.Absorbs, "ice_barrier")
	require.Equal(t, 10, ps.Res.Absorbs["pw_shield"].Remaining)

	// Overkill: absorbed + remaining always equals the incoming amount.
	remaining, absorbed, _ = effects.ConsumeAbsorbs(ps, 25)
	require.Equal(t, 10, absorbed)
	require.Equal(t, 15, remaining)
	require.Empty(t, ps.Res.AbsorbOrder)
}

func TestRemoveEffectCleansUpAbsorbLayer(t *testing.T) {
	cat := testCatalog()
	ps := newPlayer("p1")
	effects.ApplyEffectByID(cat, ps, "barkskin", nil)
	effects.AddAbsorb(ps, 25, "Barkskin", "barkskin")

	effects.RemoveEffect(ps, "barkskin")
	require.False(t, ps.HasEffect("barkskin"))
	require.NotContains(t, ps.Res.Absorbs, "barkskin")
}

func TestBreakStealthOnDamageThreshold(t *testing.T) {
	cat := testCatalog()
	ps := newPlayer("p1")
	effects.ApplyEffectByID(cat, ps, "stealth", nil)

	// At or under the template's break_on_damage_over threshold (10),
	// stealth holds; zero-damage effects never break it.
	effects.BreakStealthOnDamage(cat, ps, 0)
	require.True(t, ps.HasEffect("stealth"))
	effects.BreakStealthOnDamage(cat, ps, 10)
	require.True(t, ps.HasEffect("stealth"))

	effects.BreakStealthOnDamage(cat, ps, 11)
	require.False(t, ps.HasEffect("stealth"))
}

func TestApplyFormClearsPriorFormStealthAndReadiness(t *testing.T) {
	cat := testCatalog()
	ps := newPlayer("p1")

	effects.ApplyEffectByID(cat, ps, "stealth", nil)
	effects.ApplyEffectByID(cat, ps, "rip_ready", nil)
	effects.ApplyForm(cat, ps, "cat_form", nil)

	require.False(t, ps.HasEffect("stealth"))
	require.False(t, ps.HasFlag("rip_ready"))
	require.Equal(t, "cat_form", effects.CurrentFormID(ps))

	effects.ApplyForm(cat, ps, "bear_form", nil)
	require.False(t, ps.HasEffect("cat_form"))
	require.Equal(t, "bear_form", effects.CurrentFormID(ps))
}

func TestRefreshDotEffectNeverDecreases(t *testing.T) {
	ps := newPlayer("p1")
	require.False(t, effects.RefreshDotEffect(ps, "corruption", 4, 12, "p2"))

	ps.Effects = append(ps.Effects, &model.Effect{
		ID: "corruption", Type: model.EffectDot, Duration: 4, TickDamage: 12, SourceSID: "p2",
	})

	require.True(t, effects.RefreshDotEffect(ps, "corruption", 2, 8, "p2"))
	e := ps.GetEffect("corruption")
	require.Equal(t, 4, e.Duration, "refresh must never decrease duration")
	require.Equal(t, 12, e.TickDamage)

	require.True(t, effects.RefreshDotEffect(ps, "corruption", 6, 15, "p2"))
	require.Equal(t, 6, e.Duration)
	require.Equal(t, 15, e.TickDamage)
}

func TestRefreshBurnEffectTakesMaxOfValueAndDuration(t *testing.T) {
	ps := newPlayer("p1")
	ps.Effects = append(ps.Effects, &model.Effect{
		ID: "burn", Type: model.EffectBurn, Duration: 3, Value: 0.5,
	})

	require.True(t, effects.RefreshBurnEffect(ps, "burn", 2, 0.8, "p2"))
	e := ps.GetEffect("burn")
	require.Equal(t, 3, e.Duration)
	require.InDelta(t, 0.8, e.Value, 1e-9)
	require.Equal(t, "p2", e.SourceSID)
}

func TestDispelEffectsFiltersByCategoryAndSchool(t *testing.T) {
	cat := testCatalog()
	ps := newPlayer("p1")
	effects.ApplyEffectByID(cat, ps, "stunned", nil)           // debuff, dispellable
	effects.ApplyEffectByID(cat, ps, "curse_of_weakness", nil) // debuff, magical, dispellable
	effects.ApplyEffectByID(cat, ps, "battle_shout", nil)      // buff, dispellable
	effects.ApplyEffectByID(cat, ps, "stealth", nil)           // not dispellable

	require.Equal(t, 1, effects.DispelEffects(ps, "debuff", "magical"))
	require.False(t, ps.HasEffect("curse_of_weakness"))
	require.True(t, ps.HasEffect("stunned"))

	require.Equal(t, 2, effects.DispelEffects(ps, "", ""))
	require.True(t, ps.HasEffect("stealth"), "non-dispellable effects survive an unfiltered dispel")
}

func TestIsImmunePerSchool(t *testing.T) {
	ps := newPlayer("p1")
	ps.Effects = append(ps.Effects, &model.Effect{
		ID: "spell_reflection", Duration: 2, Flags: map[string]bool{"immune_magic": true},
	})
	require.True(t, effects.IsImmune(ps, "magic"))
	require.False(t, effects.IsImmune(ps, "physical"))

	ps.Effects = append(ps.Effects, &model.Effect{
		ID: "divine_shield", Duration: 2, Flags: map[string]bool{"immune_all": true},
	})
	require.True(t, effects.IsImmune(ps, "physical"))
}
