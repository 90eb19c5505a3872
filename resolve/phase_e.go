package resolve

import (
	"context"
	"fmt"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/combatlog"
	"github.com/duelcore/resolver/dice"
	"github.com/duelcore/resolver/effects"
	"github.com/duelcore/resolver/model"
	"github.com/duelcore/resolver/rules"
	"github.com/duelcore/resolver/validate"
)

// critMultiplier is the fixed damage multiplier a critical hit applies.
const critMultiplier = 1.5

// phaseEDamage runs main damage resolution for every not-yet-resolved
// action in players order.
func phaseEDamage(_ context.Context, tc *TurnContext) error {
	for _, sid := range tc.Match.Players {
		act := tc.Actions[sid]
		if act == nil || act.Failed || act.Resolved || act.Kind != kindDamaging {
			continue
		}
		resolveDamaging(tc, sid, act)
	}
	return nil
}

func resolveDamaging(tc *TurnContext, sid string, act *action) {
	actor := tc.player(sid)
	oppSID := tc.Match.Opponent(sid)
	target := tc.player(oppSID)
	ability := act.Ability

	// Step 1: recheck stunned, including a same-turn incoming immediate
	// stun.
	stunned := tc.StunnedAtStart[sid] || tc.IncomingImmediateStun[sid]
	if stunned && !ability.AllowWhileStunned && !ability.PriorityDefensive {
		tc.log(fmt.Sprintf("%s tries to use %s but is stunned and cannot act.", sid, ability.Name))
		act.Failed = true
		return
	}

	// Step 2: consume costs.
	validate.ConsumeCosts(actor, ability)
	tc.log(combatlog.CastLine(sid, weaponNameFor(tc.Cat, actor), ability.Name))

	result := &actionResult{AbilityID: ability.ID, DamageType: string(ability.DamageType), AoE: ability.TargetMode == catalog.TargetAoEEnemy}

	// Step 3a: reachability — stealth and evasion misses abort the whole
	// action outright; neither is affected by this ability's own effects.
	if !result.AoE && tc.StealthedAtStart[oppSID] {
		tc.log(fmt.Sprintf("%s's %s finds no target in the shadows.", sid, ability.Name))
		actor.SetCooldown(ability.ID, ability.Cooldown, ability.SharedCooldownWith)
		breakStealthIfOffensive(tc, sid, actor, ability)
		act.Result = result
		act.Resolved = true
		return
	}
	if !result.AoE && ability.DamageType == catalog.DamagePhysical && effects.HasFlag(target, "evade_all") {
		tc.log(fmt.Sprintf("%s evades %s's %s entirely.", oppSID, sid, ability.Name))
		actor.SetCooldown(ability.ID, ability.Cooldown, ability.SharedCooldownWith)
		breakStealthIfOffensive(tc, sid, actor, ability)
		act.Result = result
		act.Resolved = true
		return
	}

	// Step 4: self/target effects. A landed control target-effect can
	// discard a pre-empted untargetable effect — the stun registers
	// before the blink is honored, and the blink fizzles — so the
	// untargetable reachability check below reads the flag as it stands
	// after this ability's own target effects have applied.
	selfEntries := effectApplications(ability.SelfEffects, ability.Effect)
	_, slogs := applyEffectList(tc.Cat, tc.RNG, actor, selfEntries)
	for _, l := range slogs {
		tc.log(l)
	}
	applyImmediateTargetEffects(tc, sid, actor, oppSID, target, ability)

	// Step 3b: untargetable reachability.
	if effects.HasFlag(target, "untargetable") {
		tc.log(fmt.Sprintf("%s cannot find %s.", sid, oppSID))
		actor.SetCooldown(ability.ID, ability.Cooldown, ability.SharedCooldownWith)
		breakStealthIfOffensive(tc, sid, actor, ability)
		act.Result = result
		act.Resolved = true
		return
	}

	// Step 5: hit loop.
	hits := ability.Hits
	if hits <= 0 {
		hits = 1
	}
	totalDealt := 0
	var firstHitDamage int
	for i := 0; i < hits; i++ {
		instance := resolveOneHit(tc, sid, actor, oppSID, target, ability)
		result.DamageInstances = append(result.DamageInstances, instance)
		result.Damage += instance.Raw
		totalDealt += instance.Raw
		if i == 0 {
			firstHitDamage = instance.Raw
		}

		// on_hit_effects: chance-rolled application to target, once per hit.
		for _, entry := range ability.OnHitEffects {
			if entry.Chance > 0 && !dice.Percent(tc.RNG, entry.Chance) {
				continue
			}
			effects.ApplyEffectByID(tc.Cat, target, entry.ID, overridesWithDuration(entry))
			if entry.Log != "" {
				result.ExtraLogs = append(result.ExtraLogs, entry.Log)
			}
		}
	}

	// stealth_on_hit_effects: extra riders granted only when the attack
	// was opened from stealth.
	if tc.StealthedAtStart[sid] {
		for _, entry := range ability.StealthOnHitEffects {
			if entry.Chance > 0 && !dice.Percent(tc.RNG, entry.Chance) {
				continue
			}
			effects.ApplyEffectByID(tc.Cat, target, entry.ID, overridesWithDuration(entry))
			if entry.Log != "" {
				result.ExtraLogs = append(result.ExtraLogs, entry.Log)
			}
		}
	}

	// heal_on_hit.
	if ability.HealOnHit != 0 || ability.HealScaling != "" || ability.HealDice != "" {
		result.Healing += computeHeal(tc, actor, ability)
	}

	// resource_gain.
	applyResourceGain(actor, ability, totalDealt)

	// trigger_on_hit_passives: called once per ability using the first
	// hit's damage. There is no additional per-hit call, so StrikeAgain
	// passives roll at most once per ability regardless of hits.
	onHit := effects.TriggerOnHitPassives(tc.Cat, actor, target, firstHitDamage, string(ability.DamageType), tc.RNG, ability)
	result.Damage += onHit.BonusDamage
	result.Healing += onHit.BonusHealing
	result.ExtraLogs = append(result.ExtraLogs, onHit.Logs...)

	// Step 8: consume_effect / transient empowerment.
	if ability.ConsumeEffect != "" {
		effects.RemoveEffect(actor, ability.ConsumeEffect)
	}
	effects.RemoveEffect(actor, "empower_next_offense")

	// Step 9: cooldown + stealth break.
	actor.SetCooldown(ability.ID, ability.Cooldown, ability.SharedCooldownWith)
	breakStealthIfOffensive(tc, sid, actor, ability)

	act.Result = result
	act.Resolved = true
}

func breakStealthIfOffensive(tc *TurnContext, sid string, actor *model.PlayerState, ability *catalog.Ability) {
	if tc.StealthedAtStart[sid] && isOffensive(ability) {
		effects.RemoveStealth(actor)
	}
}

// resolveOneHit performs one iteration of the damage formula and
// returns the raw damage dealt before absorb consumption, which
// happens later in Phase F.
func resolveOneHit(tc *TurnContext, sid string, actor *model.PlayerState, oppSID string, target *model.PlayerState, ability *catalog.Ability) damageInstanceResult {
	if effects.HasFlag(actor, "forced_miss") {
		tc.log(fmt.Sprintf("%s's %s misses entirely.", sid, ability.Name))
		return damageInstanceResult{LogIndex: -1}
	}
	if weapon := tc.Cat.Items[actor.Build.ItemIn(model.SlotWeapon)]; weapon != nil && weapon.MissChance > 0 {
		if dice.Percent(tc.RNG, weapon.MissChance) {
			tc.log(fmt.Sprintf("%s's weapon misfires.", sid))
			return damageInstanceResult{LogIndex: -1}
		}
	}
	acc := effects.ModifyStat(actor, model.StatAcc, actor.Stat(model.StatAcc))
	eva := effects.ModifyStat(target, model.StatEva, target.Stat(model.StatEva))
	if roll, _ := tc.RNG.Roll(100); roll > rules.HitChance(acc, eva) {
		tc.log(fmt.Sprintf("%s's %s misses %s.", sid, ability.Name, oppSID))
		return damageInstanceResult{LogIndex: -1}
	}

	raw := ability.FlatDamage
	if tc.StealthedAtStart[sid] {
		raw += stealthFlatBonus(ability)
	}
	for stat, factor := range ability.Scaling {
		statVal := effects.ModifyStat(actor, stat, actor.Stat(stat))
		raw += rules.TruncProduct(statVal, factor)
	}
	if ability.Dice != nil {
		pool, err := dice.ParseNotation(ability.Dice.Notation)
		if err == nil {
			power, _, _ := dice.RollPool(tc.RNG, pool)
			raw += power
		}
	}

	critChance := effects.ModifyStat(actor, model.StatCrit, actor.Stat(model.StatCrit))
	isCrit := ability.AlwaysCrit || dice.Percent(tc.RNG, critChance)
	if isCrit {
		raw = rules.TruncProduct(raw, critMultiplier)
	}

	defStat := effects.ModifyStat(target, model.StatDef, target.Stat(model.StatDef))
	raw = rules.Mitigate(raw, defStat)

	// School-specific resistance is a flat subtraction clamped at zero.
	// ignore_physical_reduction only suppresses the physical branch;
	// magic_resist always applies to magic damage.
	switch ability.DamageType {
	case catalog.DamagePhysical:
		if !ability.IgnorePhysicalReduction {
			raw -= effects.ModifyStat(target, model.StatPhysicalReduction, target.Stat(model.StatPhysicalReduction))
		}
	case catalog.DamageMagic:
		raw -= effects.ModifyStat(target, model.StatMagicResist, target.Stat(model.StatMagicResist))
	}
	if raw < 0 {
		raw = 0
	}

	raw = rules.TruncProduct(raw, effects.MitigationMultiplier(target))
	raw = rules.TruncProduct(raw, effects.DamageMultiplierFromPassives(tc.Cat, actor))

	if empower := effects.GetEffect(actor, "empower_next_offense"); empower != nil {
		if mult, ok := empower.Mods["mult_damage"]; ok {
			raw = rules.TruncProduct(raw, 1+float64(mult)/100.0)
		}
	}

	// Only Shadow Word: Death doubles against a sub-threshold target;
	// the warrior's Execute shares the gating field but never doubles.
	if ability.ID == "shadow_word_death" && raw > 0 {
		raw *= 2
	}

	immune := effects.IsImmune(target, string(ability.DamageType))
	if immune {
		tc.log(fmt.Sprintf("%s is immune to %s's %s.", oppSID, sid, ability.Name))
		if ability.TargetMode == catalog.TargetAoEEnemy {
			// The champion takes nothing, but the AoE fan-out in Phase F
			// still needs this hit's computed value for enemy pets.
			return damageInstanceResult{Raw: raw, Crit: isCrit, Immune: true, ChampionImmune: true, LogIndex: -1}
		}
		return damageInstanceResult{Immune: true, LogIndex: -1}
	}

	idx := len(tc.Match.Log)
	tc.log(fmt.Sprintf("%s's %s hits %s for __DMG__.", sid, ability.Name, oppSID))
	return damageInstanceResult{Raw: raw, Crit: isCrit, LogIndex: idx}
}

// stealthFlatBonus reads an ability's stealth_bonus block, which YAML
// decodes with untyped numeric values.
func stealthFlatBonus(a *catalog.Ability) int {
	switch n := a.StealthBonus["flat_damage"].(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

func computeHeal(tc *TurnContext, actor *model.PlayerState, ability *catalog.Ability) int {
	heal := ability.HealOnHit
	if ability.HealScaling != "" {
		statVal := effects.ModifyStat(actor, ability.HealScaling, actor.Stat(ability.HealScaling))
		heal += rules.TruncProduct(statVal, ability.HealScaleBy)
	}
	if ability.HealDice != "" {
		pool, err := dice.ParseNotation(ability.HealDice)
		if err == nil {
			power, _, _ := dice.RollPool(tc.RNG, pool)
			heal += power
		}
	}
	return heal
}

func applyResourceGain(actor *model.PlayerState, ability *catalog.Ability, dealt int) {
	for pool, gain := range ability.ResourceGain {
		switch gain.Kind {
		case "damage":
			actor.Res.Add(pool, dealt)
		case "damage_x3":
			actor.Res.Add(pool, dealt*3)
		default:
			actor.Res.Add(pool, gain.Flat)
		}
	}
}
