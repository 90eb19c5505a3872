package effects

import (
	"fmt"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/model"
)

// EndOfTurnResult carries the log lines produced by steps (2)-(4) of
// one player's end-of-turn sub-pipeline:
// item-passive procs and per-effect regen.
type EndOfTurnResult struct {
	Logs []string
}

// CollectDotTicks gathers each dot-typed effect's pending tick without
// mutating hp — the pipeline routes the returned ticks through
// apply_damage itself, so absorbs and stealth-break apply to them. This
// MUST run, and its result MUST be applied to hp, before
// RunEndOfTurnPassives: DoT damage lands strictly before item-passive
// end-of-turn procs and the duration tick, so that an AbsorbSelf shield
// procced this same turn cannot retroactively soak this same turn's DoT
// tick, and a HealSelf proc lands only after the tick. The passives
// still run when the tick has taken hp to 0.
func CollectDotTicks(ps *model.PlayerState) []DotTick {
	var ticks []DotTick
	for _, e := range ps.Effects {
		if e.Type != model.EffectDot || e.TickDamage <= 0 {
			continue
		}
		ticks = append(ticks, DotTick{
			EffectID:     e.ID,
			SourceSID:    e.SourceSID,
			TickDamage:   e.TickDamage,
			School:       e.School,
			LifestealPct: e.LifestealPct,
		})
		// Ramp-mode DoTs (e.g. agony) grow every tick, not just on
		// refresh, so successive ticks stay monotonically non-decreasing.
		if e.DotMode == "ramp" {
			e.TickDamage += e.Mods["ramp_step"]
		}
	}
	return ticks
}

// RunEndOfTurnPassives runs the post-DoT end-of-turn steps:
// item-passive end-of-turn procs, per-effect regen, and the duration
// tick. The caller must have already applied this turn's DoT damage
// (step 1, via CollectDotTicks + apply_damage) before calling this.
func RunEndOfTurnPassives(cat *catalog.Catalog, ps *model.PlayerState, label string) *EndOfTurnResult {
	res := &EndOfTurnResult{}

	// (2) item-passive end-of-turn procs: heal_self, absorb_self.
	for _, e := range ps.Effects {
		if e.Type != model.EffectItemPassive {
			continue
		}
		applyEndOfTurnPassive(cat, ps, e, label, &res.Logs)
	}

	// (3) per-effect regen.
	for _, e := range ps.Effects {
		for pool, amount := range e.Regen {
			before := ps.Res.Get(pool)
			ps.Res.Add(pool, amount)
			if after := ps.Res.Get(pool); after != before && amount != 0 {
				res.Logs = append(res.Logs, fmt.Sprintf("%s regenerates %d %s from %s.", label, after-before, pool, e.Name))
			}
		}
	}

	// (4) duration tick: item-passive and burn effects are exempt.
	kept := ps.Effects[:0]
	for _, e := range ps.Effects {
		if e.IsPermanent() {
			kept = append(kept, e)
			continue
		}
		e.Duration--
		if e.Duration > 0 {
			kept = append(kept, e)
		} else {
			ps.Res.RemoveAbsorb(e.ID)
		}
	}
	ps.Effects = kept

	return res
}

// RegenVitals regenerates mp/energy by the catalog's per-turn defaults,
// clamped to max. The caller only invokes
// this when ps.Res.HP > 0 after DoT application.
func RegenVitals(cat *catalog.Catalog, ps *model.PlayerState) {
	ps.Res.Add(model.PoolMP, cat.Defaults.MPRegenPerTurn)
	ps.Res.Add(model.PoolEnergy, cat.Defaults.EnergyRegenPerTurn)
}

func applyEndOfTurnPassive(cat *catalog.Catalog, ps *model.PlayerState, e *model.Effect, label string, logs *[]string) {
	item := cat.Items[e.SourceItem]
	if item == nil {
		return
	}
	for _, p := range item.Passives {
		if p.Trigger != catalog.TriggerEndOfTurn {
			continue
		}
		switch p.Type {
		case "HealSelf":
			before := ps.Res.HP
			ps.Res.Add(model.PoolHP, p.Amount)
			if ps.Res.HP != before {
				*logs = append(*logs, fmt.Sprintf("%s is healed for %d by %s.", label, ps.Res.HP-before, item.Name))
			}
		case "AbsorbSelf":
			AddAbsorb(ps, p.Amount, item.Name, e.ID+":absorb_self")
			*logs = append(*logs, fmt.Sprintf("%s shields for %d from %s.", label, p.Amount, item.Name))
		}
	}
}
