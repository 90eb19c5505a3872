package effects

import (
	"fmt"

	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/dice"
	"github.com/duelcore/resolver/model"
	"github.com/duelcore/resolver/rules"
)

// OnHitResult is what TriggerOnHitPassives reports back to the
// resolution pipeline: bonus damage already computed against the
// target, any extra log lines, and any bonus healing the attacker
// received.
type OnHitResult struct {
	BonusDamage  int
	Logs         []string
	BonusHealing int
}

// itemPassivesOf walks attacker's item-passive effects whose source item
// carries a passive with the given trigger, yielding (effect, passive)
// pairs in effect-list order.
func itemPassivesOf(cat *catalog.Catalog, attacker *model.PlayerState, trigger string) []struct {
	Effect  *model.Effect
	Passive catalog.Passive
} {
	var out []struct {
		Effect  *model.Effect
		Passive catalog.Passive
	}
	for _, e := range attacker.Effects {
		if e.Type != model.EffectItemPassive {
			continue
		}
		item := cat.Items[e.SourceItem]
		if item == nil {
			continue
		}
		for _, p := range item.Passives {
			if p.Trigger == trigger {
				out = append(out, struct {
					Effect  *model.Effect
					Passive catalog.Passive
				}{e, p})
			}
		}
	}
	return out
}

// TriggerOnHitPassives iterates attacker's on_hit item-passive effects
// and evaluates each subtype against an independent chance roll drawn
// from rng, returning the accumulated bonus damage/healing and log
// lines. ability is the ability
// record that landed, used by DuplicateOffensiveSpell to know what to
// duplicate.
func TriggerOnHitPassives(cat *catalog.Catalog, attacker, target *model.PlayerState, baseDamage int, damageType string, rng dice.Roller, ability *catalog.Ability) OnHitResult {
	var res OnHitResult
	for _, pair := range itemPassivesOf(cat, attacker, catalog.TriggerOnHit) {
		e, p := pair.Effect, pair.Passive
		if !dice.Percent(rng, p.Chance) {
			continue
		}
		item := cat.Items[e.SourceItem]
		switch p.Type {
		case "Burn":
			burnApplyOrRefresh(cat, target, p, attacker.SID)
			res.Logs = append(res.Logs, fmt.Sprintf("%s's %s sets %s ablaze!", attacker.SID, item.Name, target.SID))
		case "StrikeAgain":
			bonus := rules.TruncProduct(baseDamage, p.ScaleBy)
			res.BonusDamage += bonus
			res.Logs = append(res.Logs, fmt.Sprintf("%s's %s strikes again for %d.", attacker.SID, item.Name, bonus))
		case "VoidBlade":
			bonus := p.Amount
			res.BonusDamage += bonus
			res.Logs = append(res.Logs, fmt.Sprintf("%s's %s lashes with void energy for %d.", attacker.SID, item.Name, bonus))
		case "LightningBlast":
			bonus := p.Amount
			res.BonusDamage += bonus
			res.Logs = append(res.Logs, fmt.Sprintf("%s's %s calls down lightning for %d.", attacker.SID, item.Name, bonus))
		case "HealOnHit":
			heal := p.Amount
			before := attacker.Res.HP
			attacker.Res.Add(model.PoolHP, heal)
			res.BonusHealing += attacker.Res.HP - before
			res.Logs = append(res.Logs, fmt.Sprintf("%s's %s heals for %d.", attacker.SID, item.Name, attacker.Res.HP-before))
		case "EmpowerNextOffense":
			ApplyEffectByID(cat, attacker, p.EffectID, map[string]any{
				"duration": p.Duration,
				"mods":     map[string]int{"mult_damage": int(p.Multiplier * 100)},
			})
			res.Logs = append(res.Logs, fmt.Sprintf("%s's %s empowers their next attack.", attacker.SID, item.Name))
		case "DuplicateOffensiveSpell":
			if ability != nil && ability.HasTag("spell") {
				dup := rules.TruncProduct(baseDamage, p.ScaleBy)
				res.BonusDamage += dup
				res.Logs = append(res.Logs, fmt.Sprintf("%s's %s duplicates the spell for %d.", attacker.SID, item.Name, dup))
			}
		}
	}
	return res
}

// burnApplyOrRefresh applies a Burn item-passive proc, taking max(old,
// new) on refresh.
func burnApplyOrRefresh(cat *catalog.Catalog, target *model.PlayerState, p catalog.Passive, sourceSID string) {
	if RefreshBurnEffect(target, p.EffectID, p.Duration, p.ScaleBy, sourceSID) {
		return
	}
	ApplyEffectByID(cat, target, p.EffectID, map[string]any{
		"duration":      p.Duration,
		"value":         p.ScaleBy,
		"school":        p.School,
		"source_sid":    sourceSID,
		"tick_damage":   p.Amount,
	})
}

// DamageMultiplierFromPassives applies on_damage conditional multipliers
// (DamageBonusAboveHP/DamageBonusBelowHP) from attacker's item passives
// against its own current hp fraction.
func DamageMultiplierFromPassives(cat *catalog.Catalog, attacker *model.PlayerState) float64 {
	mult := 1.0
	hpFrac := 1.0
	if attacker.Res.HPMax > 0 {
		hpFrac = float64(attacker.Res.HP) / float64(attacker.Res.HPMax)
	}
	for _, pair := range itemPassivesOf(cat, attacker, catalog.TriggerOnDamage) {
		p := pair.Passive
		switch p.Type {
		case "DamageBonusAboveHP":
			if hpFrac >= p.HPThreshold {
				mult *= p.Multiplier
			}
		case "DamageBonusBelowHP":
			if hpFrac <= p.HPThreshold {
				mult *= p.Multiplier
			}
		}
	}
	return mult
}
