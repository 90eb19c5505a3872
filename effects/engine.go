package effects

import (
	"github.com/duelcore/resolver/catalog"
	"github.com/duelcore/resolver/model"
	"github.com/duelcore/resolver/rules"
)

// formReadinessFlags lists flags that only make sense while a particular form is
// active and must be cleared whenever the form changes.
var formReadinessFlags = []string{"rip_ready", "starfire_ready"}

// ApplyEffectByID instantiates an effect record from cat's template and
// appends it to target's effect list, applying overrides on top of the
// template defaults.
func ApplyEffectByID(cat *catalog.Catalog, target *model.PlayerState, id string, overrides map[string]any) *model.Effect {
	tmpl := cat.Effects[id]
	e := fromTemplate(id, tmpl)
	applyOverrides(e, overrides)
	target.Effects = append(target.Effects, e)
	return e
}

// ApplyEffectByIDToPet is ApplyEffectByID for a pet target.
func ApplyEffectByIDToPet(cat *catalog.Catalog, target *model.PetState, id string, overrides map[string]any) *model.Effect {
	tmpl := cat.Effects[id]
	e := fromTemplate(id, tmpl)
	applyOverrides(e, overrides)
	target.Effects = append(target.Effects, e)
	return e
}

func fromTemplate(id string, tmpl *catalog.EffectTemplate) *model.Effect {
	e := &model.Effect{ID: id}
	if tmpl == nil {
		return e
	}
	e.Type = model.EffectType(tmpl.Type)
	e.Name = tmpl.Name
	e.Duration = tmpl.Duration
	e.Category = model.EffectCategory(tmpl.Category)
	e.Value = tmpl.Value
	e.Dispellable = tmpl.Dispellable
	e.School = tmpl.School
	e.DotMode = tmpl.DotMode
	if len(tmpl.Flags) > 0 {
		e.Flags = make(map[string]bool, len(tmpl.Flags))
		for k, v := range tmpl.Flags {
			e.Flags[k] = v
		}
	}
	if len(tmpl.Mods) > 0 {
		e.Mods = make(map[string]int, len(tmpl.Mods))
		for k, v := range tmpl.Mods {
			e.Mods[k] = v
		}
	}
	if len(tmpl.Regen) > 0 {
		e.Regen = make(map[string]int, len(tmpl.Regen))
		for k, v := range tmpl.Regen {
			e.Regen[k] = v
		}
	}
	return e
}

// applyOverrides overlays a catalog EffectApplication.Overrides map onto
// an instantiated effect record. Only the keys the content catalogs
// actually use are recognized; unknown keys are ignored rather than
// erroring, since catalogs are trusted, author-controlled data.
func applyOverrides(e *model.Effect, overrides map[string]any) {
	for k, v := range overrides {
		switch k {
		case "duration":
			if n, ok := toInt(v); ok {
				e.Duration = n
			}
		case "value":
			if f, ok := toFloat(v); ok {
				e.Value = f
			}
		case "tick_damage":
			if n, ok := toInt(v); ok {
				e.TickDamage = n
			}
		case "school":
			if s, ok := v.(string); ok {
				e.School = s
			}
		case "source_sid":
			if s, ok := v.(string); ok {
				e.SourceSID = s
			}
		case "source_item":
			if s, ok := v.(string); ok {
				e.SourceItem = s
			}
		case "lifesteal_pct":
			if f, ok := toFloat(v); ok {
				e.LifestealPct = f
			}
		case "dot_mode":
			if s, ok := v.(string); ok {
				e.DotMode = s
			}
		case "flags":
			if m, ok := v.(map[string]bool); ok {
				if e.Flags == nil {
					e.Flags = make(map[string]bool, len(m))
				}
				for fk, fv := range m {
					e.Flags[fk] = fv
				}
			}
		case "mods":
			if m, ok := v.(map[string]int); ok {
				if e.Mods == nil {
					e.Mods = make(map[string]int, len(m))
				}
				for mk, mv := range m {
					e.Mods[mk] = mv
				}
			}
		}
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// ApplyForm clears every form effect, stealth, and form-gated readiness
// flag before applying the new form and its stat mods.
func ApplyForm(cat *catalog.Catalog, target *model.PlayerState, formID string, overrides map[string]any) {
	for _, e := range append([]*model.Effect(nil), target.Effects...) {
		if e.Type == model.EffectForm {
			target.RemoveEffect(e.ID)
		}
	}
	RemoveStealth(target)
	for _, flag := range formReadinessFlags {
		clearFlagSource(target, flag)
	}
	ApplyEffectByID(cat, target, formID, overrides)
}

// clearFlagSource removes the flag from whichever effect currently
// carries it, so stale readiness flags don't survive a form switch.
func clearFlagSource(target *model.PlayerState, flag string) {
	for _, e := range target.Effects {
		if e.HasFlag(flag) {
			delete(e.Flags, flag)
		}
	}
}

// HasEffect reports whether target currently carries effect id.
func HasEffect(target *model.PlayerState, id string) bool { return target.HasEffect(id) }

// HasFlag reports whether any effect on target sets flag.
func HasFlag(target *model.PlayerState, flag string) bool { return target.HasFlag(flag) }

// GetEffect returns target's effect record with the given id, or nil.
func GetEffect(target *model.PlayerState, id string) *model.Effect { return target.GetEffect(id) }

// RemoveEffect removes target's effect record with the given id,
// cleaning up any absorb layer it backed.
func RemoveEffect(target *model.PlayerState, id string) {
	target.RemoveEffect(id)
	target.Res.RemoveAbsorb(id)
}

// RemoveStealth removes the stealth effect, if present.
func RemoveStealth(target *model.PlayerState) {
	target.RemoveEffect("stealth")
}

// BreakStealthOnDamage removes stealth if damage exceeds the stealth
// template's break_on_damage_over threshold; zero/low damage leaves it
// intact.
func BreakStealthOnDamage(cat *catalog.Catalog, target *model.PlayerState, damage int) {
	e := target.GetEffect("stealth")
	if e == nil {
		return
	}
	threshold := 0
	if tmpl := cat.Effects["stealth"]; tmpl != nil {
		threshold = tmpl.BreakOnDamageOver
	}
	if damage > threshold {
		RemoveStealth(target)
	}
}

// ModifyStat sums flat mods from target's effects onto base, then
// multiplies by any multiplicative mods, supporting both single-stat
// and map-of-stats mod records.
func ModifyStat(target *model.PlayerState, stat string, base int) int {
	flat := base
	mult := 1.0
	for _, e := range target.Effects {
		if e.Mods == nil {
			continue
		}
		if delta, ok := e.Mods[stat]; ok {
			flat += delta
		}
		if m, ok := e.Mods["mult_"+stat]; ok {
			mult *= 1.0 + float64(m)/100.0
		}
	}
	return rules.TruncProduct(flat, mult)
}

// MitigationMultiplier sums every mitigation.value effect on target,
// clamps the sum to [0, 0.8], and returns 1 - capped_sum.
func MitigationMultiplier(target *model.PlayerState) float64 {
	sum := 0.0
	for _, e := range target.Effects {
		if e.Type == model.EffectMitigation {
			sum += e.Value
		}
	}
	sum = rules.ClampFloat(sum, 0, 0.8)
	return 1 - sum
}

// AddAbsorb appends or refreshes an absorb layer on target, keyed by
// effectID.
func AddAbsorb(target *model.PlayerState, amount int, sourceName, effectID string) {
	target.Res.AddAbsorb(amount, sourceName, effectID)
}

// ConsumeAbsorbs consumes target's absorb layers FIFO against an
// incoming hit, returning the hp damage remaining after absorption, the
// total absorbed, and a per-layer breakdown for log substitution.
func ConsumeAbsorbs(target *model.PlayerState, incoming int) (remaining, absorbed int, breakdown []model.AbsorbLayerBreakdown) {
	remaining = incoming
	for _, id := range append([]string(nil), target.Res.AbsorbOrder...) {
		if remaining <= 0 {
			break
		}
		layer := target.Res.Absorbs[id]
		if layer == nil || layer.Remaining <= 0 {
			continue
		}
		take := remaining
		if take > layer.Remaining {
			take = layer.Remaining
		}
		layer.Remaining -= take
		remaining -= take
		absorbed += take
		breakdown = append(breakdown, model.AbsorbLayerBreakdown{Name: layer.Name, Consumed: take})
		if layer.Remaining <= 0 {
			target.Res.RemoveAbsorb(id)
		}
	}
	return remaining, absorbed, breakdown
}

// RefreshDotEffect updates an existing DoT instance in place, taking
// the larger of old/new tick damage and duration, and reports whether
// an existing instance was found. A false return signals the caller to
// apply the DoT fresh instead.
func RefreshDotEffect(target *model.PlayerState, id string, duration, tickDamage int, sourceSID string) bool {
	e := target.GetEffect(id)
	if e == nil {
		return false
	}
	if duration > e.Duration {
		e.Duration = duration
	}
	if tickDamage > e.TickDamage {
		e.TickDamage = tickDamage
	}
	e.SourceSID = sourceSID
	return true
}

// RefreshBurnEffect is RefreshDotEffect's burn-specific sibling: burn
// refresh takes max(old, new) for both value and duration.
func RefreshBurnEffect(target *model.PlayerState, id string, duration int, value float64, sourceSID string) bool {
	e := target.GetEffect(id)
	if e == nil {
		return false
	}
	if duration > e.Duration {
		e.Duration = duration
	}
	if value > e.Value {
		e.Value = value
	}
	e.SourceSID = sourceSID
	return true
}

// DispelEffects removes dispellable effects matching category and/or
// school (either may be empty to mean "any") and returns how many were
// removed.
func DispelEffects(target *model.PlayerState, category, school string) int {
	removed := 0
	kept := target.Effects[:0]
	for _, e := range target.Effects {
		match := e.Dispellable &&
			(category == "" || string(e.Category) == category) &&
			(school == "" || e.School == school)
		if match {
			removed++
			target.Res.RemoveAbsorb(e.ID)
			continue
		}
		kept = append(kept, e)
	}
	target.Effects = kept
	return removed
}

// IsImmune reports whether target is immune to damageType given its
// current flags (immune_all, immune_physical, immune_magic).
func IsImmune(target *model.PlayerState, damageType string) bool {
	if HasFlag(target, "immune_all") {
		return true
	}
	if damageType == string(catalog.DamagePhysical) && HasFlag(target, "immune_physical") {
		return true
	}
	if damageType == string(catalog.DamageMagic) && HasFlag(target, "immune_magic") {
		return true
	}
	return false
}

// DotTick describes one DoT-tick outcome for the end-of-turn pipeline,
// before it is routed through apply_damage so absorbs apply to DoT
// ticks too.
type DotTick struct {
	EffectID     string
	SourceSID    string
	TickDamage   int
	School       string
	LifestealPct float64
}
