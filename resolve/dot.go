package resolve

import (
	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/dice"
	"github.com/duelcore/resolver/effects"
	"github.com/duelcore/resolver/model"
	"github.com/duelcore/resolver/rules"
)

// applyDotBlock applies or refreshes ability's dot block on target.
// dealt is the HP damage the triggering
// hit actually dealt, used when from_dealt_damage derives
// tick_damage = max(1, floor(dealt/duration)).
func applyDotBlock(tc *TurnContext, casterSID string, caster *model.PlayerState, target *model.PlayerState, dot *catalog.DotSpec, dealt int) {
	tickDamage := computeDotTick(tc, caster, dot, dealt)

	if dot.Mode == "ramp" {
		if effects.RefreshDotEffect(target, dot.ID, dot.Duration, tickDamage, casterSID) {
			return
		}
		e := &model.Effect{
			ID: dot.ID, Type: model.EffectDot, Duration: dot.Duration,
			School: dot.School, TickDamage: tickDamage, DotMode: dot.Mode,
			SourceSID: casterSID, Category: model.CategoryDot, Dispellable: true,
			Mods: map[string]int{"ramp_step": tickDamage},
		}
		target.Effects = append(target.Effects, e)
		return
	}

	if effects.RefreshDotEffect(target, dot.ID, dot.Duration, tickDamage, casterSID) {
		return
	}
	target.Effects = append(target.Effects, &model.Effect{
		ID: dot.ID, Type: model.EffectDot, Duration: dot.Duration,
		School: dot.School, TickDamage: tickDamage, DotMode: dot.Mode,
		SourceSID: casterSID, Category: model.CategoryDot, Dispellable: true,
	})
}

func computeDotTick(tc *TurnContext, caster *model.PlayerState, dot *catalog.DotSpec, dealt int) int {
	if dot.FromDealtDamage {
		if dot.Duration <= 0 {
			return dealt
		}
		tick := dealt / dot.Duration
		if tick < 1 {
			tick = 1
		}
		return tick
	}
	tick := 0
	if dot.Scaling != "" {
		statVal := effects.ModifyStat(caster, dot.Scaling, caster.Stat(dot.Scaling))
		tick += rules.TruncProduct(statVal, dot.ScaleBy)
	}
	if dot.Dice != "" {
		pool, err := dice.ParseNotation(dot.Dice)
		if err == nil {
			power, _, _ := dice.RollPool(tc.RNG, pool)
			tick += power
		}
	}
	return tick
}
