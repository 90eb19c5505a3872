package resolve

import (
	"context"
	"fmt"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/combatlog"
	"github.com/duelcore/resolver/dice"
	"github.com/duelcore/resolver/effects"
	"github.com/duelcore/resolver/model"
	"github.com/duelcore/resolver/validate"
)

// phaseDImmediate resolves every immediate-only ability (defensive or
// control) in players order, after pre-emption.
func phaseDImmediate(_ context.Context, tc *TurnContext) error {
	for _, sid := range tc.Match.Players {
		act := tc.Actions[sid]
		if act == nil || act.Failed || (act.Kind != kindImmediateDefensive && act.Kind != kindImmediateControl) {
			continue
		}
		resolveImmediate(tc, sid, act)
	}
	return nil
}

func resolveImmediate(tc *TurnContext, sid string, act *action) {
	actor := tc.player(sid)
	oppSID := tc.Match.Opponent(sid)
	opponent := tc.player(oppSID)
	ability := act.Ability

	validate.ConsumeCosts(actor, ability)
	tc.log(combatlog.CastLine(sid, weaponNameFor(tc.Cat, actor), ability.Name))

	if !tryHandleSpecial(tc, sid, actor, opponent, ability) {
		// Apply remaining self-effects (skip what pre-emption already applied).
		selfEntries := effectApplications(ability.SelfEffects, ability.Effect)
		var remaining []catalog.EffectApplication
		for _, e := range selfEntries {
			if tc.PreEmptedEffects[sid] != nil && tc.PreEmptedEffects[sid][e.ID] {
				continue
			}
			remaining = append(remaining, e)
		}
		_, logs := applyEffectList(tc.Cat, tc.RNG, actor, remaining)
		for _, l := range logs {
			tc.log(l)
		}

		applyImmediateTargetEffects(tc, sid, actor, oppSID, opponent, ability)

		if ability.Dot != nil && !effects.HasFlag(opponent, "immune_all") {
			applyDotBlock(tc, sid, actor, opponent, ability.Dot, 0)
			tc.log(fmt.Sprintf("%s's %s begins to wither %s.", sid, ability.Name, oppSID))
		}

		if ability.ConsumeEffect != "" {
			effects.RemoveEffect(actor, ability.ConsumeEffect)
		}
	}

	actor.SetCooldown(ability.ID, ability.Cooldown, ability.SharedCooldownWith)

	if tc.StealthedAtStart[sid] && isOffensive(ability) {
		effects.RemoveStealth(actor)
	}

	act.Resolved = true
}

// applyImmediateTargetEffects applies ability's target_effects to
// opponent, honoring target-effect gating and the
// stun-vs-blink/immunity priority rules.
func applyImmediateTargetEffects(tc *TurnContext, sid string, actor *model.PlayerState, oppSID string, opponent *model.PlayerState, ability *catalog.Ability) {
	for _, entry := range ability.TargetEffects {
		if effects.HasFlag(opponent, "immune_all") {
			tc.log(fmt.Sprintf("%s is immune to %s's effect.", oppSID, ability.Name))
			continue
		}
		if isControlEffect(tc.Cat, entry.ID) && tc.StealthedAtStart[oppSID] {
			tc.log(fmt.Sprintf("%s cannot find a stealthed target for %s.", sid, ability.Name))
			continue
		}
		if isHarmfulMagical(tc.Cat, entry.ID) && effects.HasFlag(opponent, "cloak_of_shadows") {
			tc.log(fmt.Sprintf("%s's %s is cloaked from harmful magic.", oppSID, ability.Name))
			continue
		}
		if entry.Chance > 0 && !dice.Percent(tc.RNG, entry.Chance) {
			continue
		}

		effects.ApplyEffectByID(tc.Cat, opponent, entry.ID, overridesWithDuration(entry))
		if entry.Log != "" {
			tc.log(entry.Log)
		}

		if isControlEffect(tc.Cat, entry.ID) {
			tc.IncomingImmediateStun[oppSID] = true
			discardPreemptedUntargetable(tc, oppSID)
		}
	}
}

func overridesWithDuration(entry catalog.EffectApplication) map[string]any {
	if entry.Duration <= 0 {
		return entry.Overrides
	}
	merged := make(map[string]any, len(entry.Overrides)+1)
	for k, v := range entry.Overrides {
		merged[k] = v
	}
	merged["duration"] = entry.Duration
	return merged
}

// discardPreemptedUntargetable makes a pre-empted untargetable (but
// non-immune) effect fizzle when a same-turn control effect lands
// anyway: only true immunities pre-empt control, which is what
// separates blink from divine shield and ice block.
func discardPreemptedUntargetable(tc *TurnContext, sid string) {
	applied := tc.PreEmptedEffects[sid]
	if applied == nil {
		return
	}
	ps := tc.player(sid)
	for id := range applied {
		tmpl := tc.Cat.Effects[id]
		if tmpl == nil || tmpl.Flags["immune_all"] {
			continue
		}
		if tmpl.Flags["untargetable"] {
			effects.RemoveEffect(ps, id)
			tc.BlinkDiscarded[sid] = true
			tc.log(fmt.Sprintf("%s's %s fizzles as the stun registers.", sid, tmpl.Name))
		}
	}
}

func isControlEffect(cat *catalog.Catalog, id string) bool {
	t := cat.Effects[id]
	if t == nil {
		return false
	}
	return t.Flags["stunned"] || t.Flags["feared"] || t.Flags["frozen"]
}

func isHarmfulMagical(cat *catalog.Catalog, id string) bool {
	t := cat.Effects[id]
	if t == nil {
		return false
	}
	return t.School == "magical" && t.Category == string(model.CategoryDebuff)
}

func isOffensive(a *catalog.Ability) bool {
	return len(a.TargetEffects) > 0 || a.HasTag("attack") || a.HasTag("control")
}

func weaponNameFor(cat *catalog.Catalog, ps *model.PlayerState) string {
	id := ps.Build.ItemIn(model.SlotWeapon)
	if id == "" {
		return ""
	}
	if item := cat.Items[id]; item != nil {
		return item.Name
	}
	return ""
}
