// Package validate implements intent validation: for
// each submitted intent, gate class, cooldown/charge, required form/
// effect/weapon, execute thresholds, and resource sufficiency before
// the resolution pipeline is allowed to act on it. Stackability checks
// exist as separate helpers (CheckTargetStackability,
// CheckPetStackability); Validate does not call them.
package validate

import (
	"fmt"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/effects"
	"github.com/duelcore/resolver/model"
	"github.com/duelcore/resolver/rpgerr"
)

// Result is a successful validation: the resolved ability record, ready
// for the resolution pipeline to classify and act on.
type Result struct {
	Ability *catalog.Ability
}

// Validate checks actor's submitted ability against cat and actor's
// current state, returning the resolved ability on success or a
// structured *rpgerr.Error the caller logs and skips on failure.
// Validation never mutates actor: it does not consume
// resources or advance cooldowns itself.
func Validate(cat *catalog.Catalog, actor *model.PlayerState, abilityID string) (*Result, error) {
	ability := cat.Abilities[abilityID]
	if ability == nil {
		return nil, rpgerr.New(rpgerr.CodeUnknownAbility, fmt.Sprintf("%s fumbles (unknown ability).", actor.SID))
	}

	if !ability.ClassGateOK(actor.Build.ClassID) {
		return nil, rpgerr.New(rpgerr.CodeClassGated, fmt.Sprintf("%s cannot use %s: wrong class.", actor.SID, ability.Name))
	}

	if actor.IsOnCooldown(abilityID, ability.ChargesOrDefault()) {
		return nil, rpgerr.New(rpgerr.CodeCooldownActive, fmt.Sprintf("%s tries to use %s but it is still on cooldown.", actor.SID, ability.Name))
	}

	if ability.RequiresForm != "" && effects.CurrentFormID(actor) != ability.RequiresForm {
		return nil, rpgerr.New(rpgerr.CodeFormRequired, fmt.Sprintf("%s cannot use %s: requires %s form.", actor.SID, ability.Name, ability.RequiresForm))
	}

	if ability.RequiresEffect != "" && !effects.HasEffect(actor, ability.RequiresEffect) {
		return nil, rpgerr.New(rpgerr.CodeEffectRequired, fmt.Sprintf("%s cannot use %s: requires %s.", actor.SID, ability.Name, ability.RequiresEffect))
	}

	if ability.RequiresWeapon != "" && actor.Build.ItemIn(model.SlotWeapon) != ability.RequiresWeapon {
		return nil, rpgerr.New(rpgerr.CodeWeaponRequired, fmt.Sprintf("%s cannot use %s: wrong weapon equipped.", actor.SID, ability.Name))
	}

	if ability.RequiresCircle && !effects.HasFlag(actor, "demonic_circle") {
		return nil, rpgerr.New(rpgerr.CodeCircleRequired, fmt.Sprintf("%s cannot use %s: no Demonic Circle placed.", actor.SID, ability.Name))
	}

	if err := checkResources(actor, ability); err != nil {
		return nil, err
	}

	if stunned(actor) && !ability.AllowWhileStunned && !ability.PriorityDefensive {
		return nil, rpgerr.New(rpgerr.CodeStunned, fmt.Sprintf("%s tries to use %s but is stunned and cannot act.", actor.SID, ability.Name))
	}

	return &Result{Ability: ability}, nil
}

// ValidateTargeted additionally checks requires_target_hp_below, which
// needs the target's state and so cannot be checked by Validate alone.
func ValidateTargeted(cat *catalog.Catalog, actor, target *model.PlayerState, abilityID string) (*Result, error) {
	res, err := Validate(cat, actor, abilityID)
	if err != nil {
		return nil, err
	}
	ability := res.Ability
	if ability.RequiresTargetHPBelow > 0 {
		frac := 1.0
		if target.Res.HPMax > 0 {
			frac = float64(target.Res.HP) / float64(target.Res.HPMax)
		}
		if frac >= ability.RequiresTargetHPBelow {
			return nil, rpgerr.New(rpgerr.CodeThresholdNotMet, fmt.Sprintf("%s tries to use %s but the target is not low enough.", actor.SID, ability.Name))
		}
	}
	return res, nil
}

func stunned(actor *model.PlayerState) bool {
	return effects.HasFlag(actor, "stunned") || effects.HasFlag(actor, "feared") || effects.HasFlag(actor, "frozen")
}

// CheckTargetStackability rejects a debuff/DoT application that would
// stack onto a target that already carries it.
func CheckTargetStackability(target *model.PlayerState, effectID string, stackable bool) error {
	if stackable {
		return nil
	}
	if effects.HasEffect(target, effectID) {
		return rpgerr.New(rpgerr.CodeStackabilityViolated, fmt.Sprintf("%s already has %s.", target.SID, effectID))
	}
	return nil
}

// CheckPetStackability rejects a summon beyond the pet template's
// max_count.
func CheckPetStackability(owner *model.PlayerState, templateID string, maxCount int) error {
	count := 0
	for _, p := range owner.Pets {
		if p.TemplateID == templateID {
			count++
		}
	}
	if count >= maxCount {
		return rpgerr.New(rpgerr.CodeStackabilityViolated, fmt.Sprintf("%s already has the maximum number of %s summoned.", owner.SID, templateID))
	}
	return nil
}

func checkResources(actor *model.PlayerState, ability *catalog.Ability) error {
	for pool, cost := range ability.Cost {
		if actor.Res.Get(pool) < cost {
			if pool == model.PoolRage {
				return rpgerr.New(rpgerr.CodeResourceExhausted, fmt.Sprintf("%s tries to use %s but lacks enough rage.", actor.SID, ability.Name))
			}
			return rpgerr.New(rpgerr.CodeResourceExhausted, fmt.Sprintf("%s tries to use %s but lacks resources.", actor.SID, ability.Name))
		}
	}
	return nil
}

// ConsumeCosts subtracts ability's resource costs from actor. Only
// called after Validate succeeds.
func ConsumeCosts(actor *model.PlayerState, ability *catalog.Ability) {
	for pool, cost := range ability.Cost {
		actor.Res.Spend(pool, cost)
	}
}
