package resolve

import (
	"context"
	"fmt"
	"sort"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/combatlog"
	"github.com/duelcore/resolver/effects"
	"github.com/duelcore/resolver/model"
	"github.com/duelcore/resolver/rules"
)

// phaseFApply applies each side's computed damage to the other.
// Both players' damaging actions were computed
// independently in Phase E and are applied here in players order; since
// each targets the opponent, this is equivalent to "both resolve, both
// damage values are applied to post-resolution HP".
func phaseFApply(_ context.Context, tc *TurnContext) error {
	for _, sid := range tc.Match.Players {
		act := tc.Actions[sid]
		if act == nil || act.Failed || act.Kind != kindDamaging || act.Result == nil {
			continue
		}
		applyActionDamage(tc, sid, act)
	}
	return nil
}

func applyActionDamage(tc *TurnContext, sid string, act *action) {
	actor := tc.player(sid)
	oppSID := tc.Match.Opponent(sid)
	target := tc.player(oppSID)
	ability := act.Ability
	result := act.Result

	totalDealt := 0
	for i := range result.DamageInstances {
		inst := &result.DamageInstances[i]
		if inst.ChampionImmune {
			// Already logged as Immune in Phase E; the champion takes
			// nothing, but fanOutToPets below still reads inst.Raw.
			continue
		}
		if inst.LogIndex < 0 {
			continue
		}
		dealt := applyDamageInstance(tc, sid, actor, oppSID, target, inst.Raw, inst.Crit, string(ability.DamageType), inst.LogIndex)
		totalDealt += dealt
	}

	postDamageRules(tc, sid, actor, oppSID, target, ability, totalDealt)

	if result.AoE {
		fanOutToPets(tc, sid, actor, oppSID, result)
	}

	actor.CombatTotals.Damage += totalDealt
	actor.CombatTotals.Healing += result.Healing
	actor.Res.Add(model.PoolHP, result.Healing)

	for _, l := range result.ExtraLogs {
		tc.log(l)
	}
}

// applyDamageInstance applies one computed hit to its target:
// immunity/control checks, the mindgames heal-flip, absorb consumption,
// bear-form rage conversion, and log substitution. It returns the HP
// actually removed from target (post-absorb), which is what
// combat_totals.damage counts.
func applyDamageInstance(tc *TurnContext, sid string, actor *model.PlayerState, oppSID string, target *model.PlayerState, raw int, crit bool, damageType string, logIndex int) int {
	if effects.HasFlag(target, "immune_all") || effects.HasFlag(target, "cycloned") {
		tc.Match.Log[logIndex] = combatlog.FormatDamage(combatlog.DamageInstance{Immune: true})
		return 0
	}
	if damageType == string(catalog.DamageMagic) && effects.HasFlag(target, "cloak_of_shadows") {
		tc.Match.Log[logIndex] = combatlog.FormatDamage(combatlog.DamageInstance{Immune: true})
		return 0
	}

	if effects.HasEffect(target, "mindgames") {
		healAmt := raw
		before := target.Res.HP
		target.Res.Add(model.PoolHP, healAmt)
		tc.Match.Log[logIndex] = fmt.Sprintf("%s's mind twists %d damage into healing!", target.SID, target.Res.HP-before)
		effects.RemoveEffect(target, "mindgames")
		return 0
	}

	remaining, absorbed, breakdown := effects.ConsumeAbsorbs(target, raw)
	target.Res.HP -= remaining
	if target.Res.HP < 0 {
		target.Res.HP = 0
	}
	effects.BreakStealthOnDamage(tc.Cat, target, remaining+absorbed)

	if effects.CurrentFormID(target) == "bear_form" && remaining > 0 {
		target.Res.Add(model.PoolRage, remaining)
	}

	tc.Match.Log[logIndex] = combatlog.FormatDamage(combatlog.DamageInstance{HPDamage: remaining, Absorbed: absorbed, Breakdown: breakdown, Crit: crit})
	return remaining
}

// postDamageRules applies the fixed-order post-damage special rules:
// heal_from_dealt_damage, Shadow Word: Death backlash,
// heal_from_damage lifesteal, and the ability's dot block.
func postDamageRules(tc *TurnContext, sid string, actor *model.PlayerState, oppSID string, target *model.PlayerState, ability *catalog.Ability, dealt int) {
	if ability.HealFromDealtDamage {
		before := actor.Res.HP
		actor.Res.Add(model.PoolHP, dealt)
		tc.log(fmt.Sprintf("%s heals for %d from dealt damage.", sid, actor.Res.HP-before))
	}

	if ability.ID == "shadow_word_death" && target.Res.HP > 0 {
		before := actor.Res.HP
		actor.Res.HP -= dealt
		if actor.Res.HP < 0 {
			actor.Res.HP = 0
		}
		tc.log(fmt.Sprintf("%s recoils from Shadow Word: Death for %d.", sid, before-actor.Res.HP))
	}

	if ability.HealFromDamage > 0 {
		heal := rules.TruncProduct(dealt, ability.HealFromDamage)
		before := actor.Res.HP
		actor.Res.Add(model.PoolHP, heal)
		tc.log(fmt.Sprintf("%s drains %d life from %s.", sid, actor.Res.HP-before, oppSID))
	}

	if ability.Dot != nil {
		applyDotBlock(tc, sid, actor, target, ability.Dot, dealt)
		tc.log(fmt.Sprintf("%s's %s begins to wither %s.", sid, ability.Name, oppSID))
	}
}

// fanOutToPets subtracts the same computed incoming value (the sum of
// the landed and champion-immune hits' Raw) from each enemy pet's hp, in
// sorted id order. No per-pet defense, resistance, immunity or absorb
// is applied to that value. Dead pets are removed immediately.
func fanOutToPets(tc *TurnContext, sid string, actor *model.PlayerState, oppSID string, result *actionResult) {
	opponent := tc.player(oppSID)
	ids := sortedPetIDs(opponent.Pets)
	for _, id := range ids {
		pet := opponent.Pets[id]
		total := 0
		for _, inst := range result.DamageInstances {
			if inst.LogIndex < 0 && !inst.ChampionImmune {
				continue
			}
			total += inst.Raw
		}
		pet.HP -= total
		tc.log(fmt.Sprintf("%s's attack washes over %s for %d.", sid, pet.Name, total))
		if pet.IsDead() {
			delete(opponent.Pets, id)
			tc.log(fmt.Sprintf("%s is destroyed.", pet.Name))
		}
	}
}

func sortedPetIDs(pets map[string]*model.PetState) []string {
	ids := make([]string, 0, len(pets))
	for id := range pets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
