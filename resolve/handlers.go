package resolve

import (
	"fmt"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/effects"
	"github.com/duelcore/resolver/model"
	"github.com/duelcore/resolver/rules"
)

// specialHandler is a hand-written behavior for an ability that does
// not fit the generic self/target-effect + damage pipeline; the
// registry below keys each one by ability id.
type specialHandler func(tc *TurnContext, sid string, actor, opponent *model.PlayerState, ability *catalog.Ability)

var specialHandlers = map[string]specialHandler{
	"lay_on_hands":        castLayOnHands,
	"healthstone":         castHealthstone,
	"summon_imp":          castSummonImp,
	"shadowfiend":         castShadowfiend,
	"ice_barrier":         castIceBarrier,
	"wild_growth":         castWildGrowth,
	"mass_dispel":         castMassDispel,
	"shield_of_vengeance": castShieldOfVengeance,
	"bear_form":           castBearForm,
	"cat_form":            castCatForm,
}

// tryHandleSpecial runs a registered scripted handler for ability.ID,
// if one exists, and reports whether it ran.
func tryHandleSpecial(tc *TurnContext, sid string, actor, opponent *model.PlayerState, ability *catalog.Ability) bool {
	h, ok := specialHandlers[ability.ID]
	if !ok {
		return false
	}
	h(tc, sid, actor, opponent, ability)
	return true
}

// castLayOnHands fully heals the caster, unless the caster carries
// mindgames, in which case the heal is twisted into equal self-damage
// instead.
func castLayOnHands(tc *TurnContext, sid string, actor, _ *model.PlayerState, _ *catalog.Ability) {
	amount := actor.Res.HPMax - actor.Res.HP
	if effects.HasEffect(actor, "mindgames") {
		before := actor.Res.HP
		actor.Res.HP -= amount
		if actor.Res.HP < 0 {
			actor.Res.HP = 0
		}
		tc.log(fmt.Sprintf("%s's mind is twisted! Lay on Hands backfires for %d damage.", sid, before-actor.Res.HP))
		effects.RemoveEffect(actor, "mindgames")
		return
	}
	actor.Res.HP = actor.Res.HPMax
	tc.log(fmt.Sprintf("%s is fully healed by Lay on Hands.", sid))
}

// castHealthstone sacrifices a fraction of the caster's current HP to
// grant an absorb shield, per the ability's hp_sacrifice and
// grant_absorb_from_sacrifice blocks.
func castHealthstone(tc *TurnContext, sid string, actor, _ *model.PlayerState, ability *catalog.Ability) {
	if ability.HPSacrifice == nil || ability.GrantAbsorbFromSacrifice == nil {
		return
	}
	sac := rules.TruncProduct(actor.Res.HP, ability.HPSacrifice.Pct)
	if actor.Res.HP-sac < ability.HPSacrifice.MinHPLeave {
		sac = actor.Res.HP - ability.HPSacrifice.MinHPLeave
	}
	if sac < 0 {
		sac = 0
	}
	actor.Res.HP -= sac
	grant := ability.GrantAbsorbFromSacrifice
	amount := rules.TruncProduct(sac, grant.Mult)
	effects.AddAbsorb(actor, amount, ability.Name, grant.EffectID)
	tc.log(fmt.Sprintf("%s channels %s, sacrificing %d hp for a %d shield.", sid, ability.Name, sac, amount))
}

// castSummonImp summons an imp pet for the caster, honoring the pet
// template's max_count (summonPet checks it at cast time).
func castSummonImp(tc *TurnContext, sid string, actor, _ *model.PlayerState, ability *catalog.Ability) {
	summonPet(tc, sid, actor, "imp")
}

// castShadowfiend summons a timed shadowfiend pet for the caster.
func castShadowfiend(tc *TurnContext, sid string, actor, _ *model.PlayerState, ability *catalog.Ability) {
	summonPet(tc, sid, actor, "shadowfiend")
}

func summonPet(tc *TurnContext, sid string, actor *model.PlayerState, templateID string) {
	tmpl := tc.Cat.Pets[templateID]
	if tmpl == nil {
		return
	}
	count := 0
	for _, p := range actor.Pets {
		if p.TemplateID == templateID {
			count++
		}
	}
	if tmpl.MaxCount > 0 && count >= tmpl.MaxCount {
		tc.log(fmt.Sprintf("%s already has the maximum number of %s summoned.", sid, tmpl.Name))
		return
	}
	id := fmt.Sprintf("%s:%s:%d", sid, templateID, count+1)
	pet := &model.PetState{
		ID: id, TemplateID: templateID, OwnerSID: sid, Name: tmpl.Name,
		HP: tmpl.HP, HPMax: tmpl.HP,
	}
	if tmpl.Duration > 0 {
		d := tmpl.Duration
		pet.Duration = &d
	}
	actor.Pets[id] = pet
	tc.log(fmt.Sprintf("%s summons %s.", sid, tmpl.Name))
}

// castIceBarrier grants the caster an absorb shield sized by the
// ability's absorb block (flat plus an optional stat scaling). Without
// an absorb block the shield amount is 0.
func castIceBarrier(tc *TurnContext, sid string, actor, _ *model.PlayerState, ability *catalog.Ability) {
	amount := 0
	if ability.Absorb != nil {
		amount = ability.Absorb.Flat
		if ability.Absorb.Scaling != "" {
			statVal := effects.ModifyStat(actor, ability.Absorb.Scaling, actor.Stat(ability.Absorb.Scaling))
			amount += rules.TruncProduct(statVal, ability.Absorb.ScaleBy)
		}
	}
	effectID := "ice_barrier"
	name := ability.Name
	if ability.Absorb != nil && ability.Absorb.EffectID != "" {
		effectID = ability.Absorb.EffectID
	}
	if ability.Absorb != nil && ability.Absorb.SourceName != "" {
		name = ability.Absorb.SourceName
	}
	effects.AddAbsorb(actor, amount, name, effectID)
	tc.log(fmt.Sprintf("%s shields with %s for %d.", sid, ability.Name, amount))
}

// castWildGrowth heals the caster (the only valid target in a 1v1
// duel) using the ability's heal fields.
func castWildGrowth(tc *TurnContext, sid string, actor, _ *model.PlayerState, ability *catalog.Ability) {
	healed := computeHeal(tc, actor, ability)
	before := actor.Res.HP
	actor.Res.Add(model.PoolHP, healed)
	tc.log(fmt.Sprintf("%s's Wild Growth heals for %d.", sid, actor.Res.HP-before))
}

// castMassDispel sweeps both sides: the caster's own dispellable
// debuffs and DoTs come off, and the opponent loses dispellable buffs.
func castMassDispel(tc *TurnContext, sid string, actor, opponent *model.PlayerState, ability *catalog.Ability) {
	own := effects.DispelEffects(actor, string(model.CategoryDebuff), "")
	own += effects.DispelEffects(actor, string(model.CategoryDot), "")
	enemy := effects.DispelEffects(opponent, string(model.CategoryBuff), "")
	tc.log(fmt.Sprintf("%s's Mass Dispel cleanses %d effect(s) and strips %d from %s.", sid, own, enemy, opponent.SID))
}

// castShieldOfVengeance grants an absorb shield and tracks it with its
// own effect record (unlike ice_barrier, which only needs the absorb
// layer) because Phase G's detonation needs to read its duration and
// mark it exploded once it pays out.
func castShieldOfVengeance(tc *TurnContext, sid string, actor, _ *model.PlayerState, ability *catalog.Ability) {
	if ability.Absorb == nil {
		return
	}
	amount := ability.Absorb.Flat
	if ability.Absorb.Scaling != "" {
		statVal := effects.ModifyStat(actor, ability.Absorb.Scaling, actor.Stat(ability.Absorb.Scaling))
		amount += rules.TruncProduct(statVal, ability.Absorb.ScaleBy)
	}
	effects.AddAbsorb(actor, amount, ability.Name, "shield_of_vengeance")
	actor.Effects = append(actor.Effects, &model.Effect{
		ID: "shield_of_vengeance", Type: model.EffectAbsorb, Name: ability.Name,
		Duration: 2, Category: model.CategoryBuff, School: "holy",
	})
	tc.log(fmt.Sprintf("%s raises %s, storing %d vengeance.", sid, ability.Name, amount))
}

// castBearForm and castCatForm route through effects.ApplyForm rather
// than a plain self-effect, so the previous form, stealth, and stale
// readiness flags are cleared on switch.
func castBearForm(tc *TurnContext, sid string, actor, _ *model.PlayerState, _ *catalog.Ability) {
	effects.ApplyForm(tc.Cat, actor, "bear_form", nil)
	tc.log(fmt.Sprintf("%s shifts into Bear Form.", sid))
}

func castCatForm(tc *TurnContext, sid string, actor, _ *model.PlayerState, _ *catalog.Ability) {
	effects.ApplyForm(tc.Cat, actor, "cat_form", nil)
	tc.log(fmt.Sprintf("%s shifts into Cat Form.", sid))
}

