package resolve

import (
	"context"
	"fmt"

	"github.com/duelcore/resolver/effects"
	"github.com/duelcore/resolver/model"
)

// petBehavior is a hand-written pet AI action, keyed by a pet template's
// behavior_id.
type petBehavior func(tc *TurnContext, ownerSID string, pet *model.PetState, target *model.PlayerState) (dealt int, log string)

var petBehaviors = map[string]petBehavior{
	"imp_bolt":          impBolt,
	"shadowfiend_drain": shadowfiendDrain,
}

// phaseGSubphases runs pet AI, each player's end-of-turn sub-pipeline,
// and shield_of_vengeance detonation, in that order.
func phaseGSubphases(_ context.Context, tc *TurnContext) error {
	runPetAI(tc)
	for _, sid := range tc.Match.Players {
		runEndOfTurn(tc, sid)
	}
	for _, sid := range tc.Match.Players {
		detonateShieldOfVengeance(tc, sid)
	}
	return nil
}

// runPetAI has every living pet act against its owner's opponent, in
// owners-then-sorted-pet-id order.
func runPetAI(tc *TurnContext) {
	for _, ownerSID := range tc.Match.Players {
		owner := tc.player(ownerSID)
		oppSID := tc.Match.Opponent(ownerSID)
		target := tc.player(oppSID)
		for _, petID := range sortedPetIDs(owner.Pets) {
			pet := owner.Pets[petID]
			if pet.IsDead() {
				continue
			}
			actPet(tc, ownerSID, owner, pet, oppSID, target)
		}
	}
}

func actPet(tc *TurnContext, ownerSID string, owner *model.PlayerState, pet *model.PetState, oppSID string, target *model.PlayerState) {
	tmpl := tc.Cat.Pets[pet.TemplateID]
	if tmpl == nil {
		return
	}
	behavior, ok := petBehaviors[tmpl.BehaviorID]
	if !ok {
		return
	}
	if effects.HasFlag(target, "untargetable") || effects.HasFlag(target, "immune_all") {
		tc.log(fmt.Sprintf("%s's %s cannot find a target.", ownerSID, pet.Name))
		return
	}

	dealt, logLine := behavior(tc, ownerSID, pet, target)
	if logLine != "" {
		tc.log(logLine)
	}
	owner.CombatTotals.Damage += dealt
}

// impBolt is a flat magic bolt, the warlock imp's only attack.
func impBolt(tc *TurnContext, ownerSID string, pet *model.PetState, target *model.PlayerState) (int, string) {
	const boltDamage = 40
	if effects.IsImmune(target, "magic") {
		return 0, fmt.Sprintf("%s's bolt is absorbed harmlessly.", pet.Name)
	}
	remaining, absorbed, _ := effects.ConsumeAbsorbs(target, boltDamage)
	target.Res.HP -= remaining
	if target.Res.HP < 0 {
		target.Res.HP = 0
	}
	effects.BreakStealthOnDamage(tc.Cat, target, remaining+absorbed)
	return remaining, fmt.Sprintf("%s's %s bolts %s for %d.", ownerSID, pet.Name, target.SID, remaining)
}

// shadowfiendDrain deals flat shadow damage and returns a portion to its
// owner as mana, mirroring the priest shadowfiend's signature mechanic.
func shadowfiendDrain(tc *TurnContext, ownerSID string, pet *model.PetState, target *model.PlayerState) (int, string) {
	const drainDamage = 35
	if effects.IsImmune(target, "magic") {
		return 0, fmt.Sprintf("%s's drain is absorbed harmlessly.", pet.Name)
	}
	remaining, absorbed, _ := effects.ConsumeAbsorbs(target, drainDamage)
	target.Res.HP -= remaining
	if target.Res.HP < 0 {
		target.Res.HP = 0
	}
	effects.BreakStealthOnDamage(tc.Cat, target, remaining+absorbed)

	owner := tc.player(ownerSID)
	owner.Res.Add(model.PoolMP, remaining)
	return remaining, fmt.Sprintf("%s's %s drains %s for %d, returning mana.", ownerSID, pet.Name, target.SID, remaining)
}

// runEndOfTurn drives one player's end-of-turn sub-pipeline
// in its fixed step order: DoT damage is applied first, routed through
// apply_damage so absorbs and stealth-break apply to it, before item
// passives (e.g. an AbsorbSelf shield) or the duration tick run — an
// end-of-turn shield procced this same turn must not retroactively soak
// this same turn's DoT tick, and a HealSelf proc lands only after the
// tick. The passives run even when a tick took hp to 0, so a HealSelf
// proc can bring the player back above 0. mp/energy regen (step 5)
// runs last, only if hp is above 0 after those steps.
func runEndOfTurn(tc *TurnContext, sid string) {
	ps := tc.player(sid)
	if ps.Res.HP <= 0 {
		return
	}

	for _, tick := range effects.CollectDotTicks(ps) {
		remaining, absorbed, _ := effects.ConsumeAbsorbs(ps, tick.TickDamage)
		ps.Res.HP -= remaining
		if ps.Res.HP < 0 {
			ps.Res.HP = 0
		}
		effects.BreakStealthOnDamage(tc.Cat, ps, remaining+absorbed)
		tc.log(fmt.Sprintf("%s suffers %d damage from %s.", sid, remaining, tick.EffectID))

		if tick.LifestealPct > 0 && tick.SourceSID != "" {
			src := tc.player(tick.SourceSID)
			if src != nil {
				heal := int(float64(remaining) * tick.LifestealPct)
				before := src.Res.HP
				src.Res.Add(model.PoolHP, heal)
				if src.Res.HP != before {
					tc.log(fmt.Sprintf("%s drains %d life from %s's affliction.", tick.SourceSID, src.Res.HP-before, sid))
				}
			}
		}
	}

	result := effects.RunEndOfTurnPassives(tc.Cat, ps, sid)
	for _, l := range result.Logs {
		tc.log(l)
	}

	if ps.Res.HP > 0 {
		effects.RegenVitals(tc.Cat, ps)
	}
}

// detonateShieldOfVengeance implements the single-shot explosion rule:
// once shield_of_vengeance's absorb is empty, or its
// duration is about to end, it detonates to the enemy for its
// accumulated absorbed amount and is flagged exploded to prevent repeats.
func detonateShieldOfVengeance(tc *TurnContext, sid string) {
	ps := tc.player(sid)
	e := ps.GetEffect("shield_of_vengeance")
	if e == nil || e.Exploded {
		return
	}
	layer, ok := ps.Res.Absorbs["shield_of_vengeance"]
	empty := !ok || layer.Remaining <= 0
	endingNextTurn := e.Duration <= 1
	if !empty && !endingNextTurn {
		return
	}

	accumulated := 0
	if ok {
		accumulated = layer.Max - layer.Remaining
	}
	e.Exploded = true
	effects.RemoveEffect(ps, "shield_of_vengeance")

	if accumulated <= 0 {
		return
	}
	oppSID := tc.Match.Opponent(sid)
	target := tc.player(oppSID)
	if effects.HasFlag(target, "immune_all") {
		tc.log(fmt.Sprintf("%s's Shield of Vengeance detonates, but %s is immune.", sid, oppSID))
		return
	}
	remaining, absorbed, _ := effects.ConsumeAbsorbs(target, accumulated)
	target.Res.HP -= remaining
	if target.Res.HP < 0 {
		target.Res.HP = 0
	}
	effects.BreakStealthOnDamage(tc.Cat, target, remaining+absorbed)
	ps.CombatTotals.Damage += remaining
	tc.log(fmt.Sprintf("%s's Shield of Vengeance detonates on %s for %d.", sid, oppSID, remaining))
}
